package biometric

import (
	"encoding/json"

	"facepass.io/entities"
	"facepass.io/infrastructure/biometric/types"
	"facepass.io/infrastructure/logger"
	"facepass.io/infrastructure/network"
)

// Detection confidence below this floor is rejected at enrollment; a weak
// reference descriptor would degrade every later gate comparison.
const minDetectionConfidence = 0.7

// FaceVectorService talks to the local descriptor-extraction model over HTTP.
// It is the strategy that exposes raw distances; tier classification happens
// locally against the configured thresholds.
type FaceVectorService struct {
	Network    *network.NetworkController
	Thresholds Thresholds
}

type detectRequest struct {
	Image string `json:"image"`
}

type detectResponse struct {
	FaceDetected bool      `json:"face_detected"`
	Descriptor   []float64 `json:"descriptor"`
	Confidence   float64   `json:"confidence"`
	Error        *string   `json:"error"`
}

func (fv *FaceVectorService) detect(image *string) (*detectResponse, error) {
	response, statusCode, err := fv.Network.Post("/detect", &map[string]string{}, detectRequest{Image: *image})
	if err != nil {
		logger.Error("error reaching descriptor extraction service", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, entities.ErrServiceUnavailable
	}
	if statusCode == nil || *statusCode != 200 {
		logger.Error("descriptor extraction failed with status code", logger.LoggerOptions{
			Key:  "status_code",
			Data: statusCode,
		})
		return nil, entities.ErrServiceUnavailable
	}
	var result detectResponse
	if err := json.Unmarshal(*response, &result); err != nil {
		logger.Error("error unmarshaling descriptor extraction response", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, entities.ErrServiceUnavailable
	}
	return &result, nil
}

func (fv *FaceVectorService) ValidateEnrollment(image *string) (*types.EnrollmentValidation, error) {
	detection, err := fv.detect(image)
	if err != nil {
		return nil, err
	}
	if !detection.FaceDetected || len(detection.Descriptor) == 0 {
		return &types.EnrollmentValidation{
			Valid:        false,
			FaceDetected: false,
			Reason:       "no face detected in the capture",
		}, nil
	}
	if detection.Confidence < minDetectionConfidence {
		return &types.EnrollmentValidation{
			Valid:        false,
			FaceDetected: true,
			Reason:       "face detected with low confidence, improve lighting and retry",
		}, nil
	}
	return &types.EnrollmentValidation{
		Valid:        true,
		FaceDetected: true,
		Reason:       "face detected successfully",
		Descriptor:   entities.FaceDescriptor(detection.Descriptor),
	}, nil
}

func (fv *FaceVectorService) Verify(payload types.VerifyRequest) (*types.VerifyResult, error) {
	detection, err := fv.detect(&payload.CaptureImage)
	if err != nil {
		return nil, err
	}
	if !detection.FaceDetected || len(detection.Descriptor) == 0 {
		return &types.VerifyResult{
			Matched:      false,
			FaceDetected: false,
			Tier:         types.TierNoMatch,
		}, nil
	}
	distance, err := CompareDescriptors(entities.FaceDescriptor(detection.Descriptor), payload.ReferenceDescriptor)
	if err != nil {
		return nil, err
	}
	tier := fv.Thresholds.Classify(distance)
	return &types.VerifyResult{
		Matched:      tier.Match(),
		FaceDetected: true,
		Tier:         tier,
		Distance:     &distance,
	}, nil
}
