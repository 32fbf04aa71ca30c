package biometric

import (
	"encoding/json"
	"os"

	"facepass.io/entities"
	"facepass.io/infrastructure/biometric/types"
	"facepass.io/infrastructure/logger"
	"facepass.io/infrastructure/network"
)

// VisionJudgeService is the remote multimodal judge strategy. The judge never
// exposes a raw distance; it returns a direct verdict with a qualitative
// confidence tier, which is normalized into the shared MatchTier set.
type VisionJudgeService struct {
	Network *network.NetworkController
}

type judgeVerifyRequest struct {
	TargetImage       string `json:"target_image"`
	ReferenceImageURL string `json:"reference_image_url"`
}

type judgeVerifyResponse struct {
	MatchFound   bool    `json:"match_found"`
	FaceDetected bool    `json:"face_detected"`
	Confidence   string  `json:"confidence"`
	Error        *string `json:"error"`
}

type judgeValidateRequest struct {
	Image string `json:"image"`
}

type judgeValidateResponse struct {
	IsValid      bool    `json:"is_valid"`
	FaceDetected bool    `json:"face_detected"`
	Reason       string  `json:"reason"`
	Error        *string `json:"error"`
}

func (vj *VisionJudgeService) headers() *map[string]string {
	return &map[string]string{
		"Authorization": "Bearer " + os.Getenv("VISION_JUDGE_API_KEY"),
	}
}

func (vj *VisionJudgeService) ValidateEnrollment(image *string) (*types.EnrollmentValidation, error) {
	response, statusCode, err := vj.Network.Post("/validate-face", vj.headers(), judgeValidateRequest{Image: *image})
	if err != nil {
		logger.Error("error reaching vision judge for enrollment validation", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, entities.ErrServiceUnavailable
	}
	if statusCode == nil || *statusCode != 200 {
		logger.Error("vision judge enrollment validation failed with status code", logger.LoggerOptions{
			Key:  "status_code",
			Data: statusCode,
		})
		return nil, entities.ErrServiceUnavailable
	}
	var result judgeValidateResponse
	if err := json.Unmarshal(*response, &result); err != nil {
		logger.Error("error unmarshaling vision judge validation response", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, entities.ErrServiceUnavailable
	}
	return &types.EnrollmentValidation{
		Valid:        result.IsValid,
		FaceDetected: result.FaceDetected,
		Reason:       result.Reason,
	}, nil
}

func (vj *VisionJudgeService) Verify(payload types.VerifyRequest) (*types.VerifyResult, error) {
	if payload.ReferenceImageURL == "" {
		// A judge comparison needs a readable reference capture; a ticket
		// enrolled by the descriptor strategy cannot be judged remotely.
		return nil, entities.ErrIncompatibleDescriptor
	}
	response, statusCode, err := vj.Network.Post("/verify-face", vj.headers(), judgeVerifyRequest{
		TargetImage:       payload.CaptureImage,
		ReferenceImageURL: payload.ReferenceImageURL,
	})
	if err != nil {
		logger.Error("error reaching vision judge for verification", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, entities.ErrServiceUnavailable
	}
	if statusCode == nil || *statusCode != 200 {
		logger.Error("vision judge verification failed with status code", logger.LoggerOptions{
			Key:  "status_code",
			Data: statusCode,
		})
		return nil, entities.ErrServiceUnavailable
	}
	var result judgeVerifyResponse
	if err := json.Unmarshal(*response, &result); err != nil {
		logger.Error("error unmarshaling vision judge verification response", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, entities.ErrServiceUnavailable
	}
	tier := normalizeJudgeTier(result.Confidence, result.MatchFound)
	return &types.VerifyResult{
		Matched:      result.MatchFound && tier.Match(),
		FaceDetected: result.FaceDetected,
		Tier:         tier,
	}, nil
}

// normalizeJudgeTier maps the judge's free-form confidence string onto the
// shared tier set, failing closed on anything unrecognized.
func normalizeJudgeTier(confidence string, matched bool) types.MatchTier {
	if !matched {
		return types.TierNoMatch
	}
	switch confidence {
	case "High":
		return types.TierHigh
	case "Medium":
		return types.TierMedium
	case "Low":
		return types.TierLow
	default:
		return types.TierNoMatch
	}
}
