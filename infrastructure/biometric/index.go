package biometric

import (
	"os"
	"strconv"
	"time"

	"facepass.io/infrastructure/biometric/types"
	"facepass.io/infrastructure/logger"
	"facepass.io/infrastructure/network"
)

// FaceVerifier is the configured biometric backend. Core logic only ever sees
// the FaceVerifierType interface; the strategy is fixed at startup.
var FaceVerifier types.FaceVerifierType

func InitialiseBiometricService() {
	timeout := 10 * time.Second
	if raw := os.Getenv("BIOMETRIC_TIMEOUT_SECONDS"); raw != "" {
		if seconds, err := strconv.Atoi(raw); err == nil && seconds > 0 {
			timeout = time.Duration(seconds) * time.Second
		}
	}
	provider := os.Getenv("BIOMETRIC_PROVIDER")
	switch provider {
	case "visionjudge":
		FaceVerifier = &VisionJudgeService{
			Network: &network.NetworkController{
				BaseUrl: os.Getenv("VISION_JUDGE_URL"),
				Timeout: timeout,
			},
		}
	default:
		provider = "facevector"
		FaceVerifier = &FaceVectorService{
			Network: &network.NetworkController{
				BaseUrl: os.Getenv("FACE_VECTOR_URL"),
				Timeout: timeout,
			},
			Thresholds: ThresholdsFromEnv(),
		}
	}
	logger.Info("biometric service initialised", logger.LoggerOptions{
		Key:  "provider",
		Data: provider,
	})
}
