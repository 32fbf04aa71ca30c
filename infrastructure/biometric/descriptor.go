package biometric

import (
	"math"
	"os"
	"strconv"

	"facepass.io/entities"
	"facepass.io/infrastructure/biometric/types"
)

// Distance thresholds are strict upper bounds: a distance qualifies for a tier
// only when it is strictly below the bound. Defaults follow face-api.js
// benchmarks for 128-float descriptors.
const (
	defaultThresholdHigh   = 0.40
	defaultThresholdMedium = 0.50
	defaultThresholdLow    = 0.60
)

type Thresholds struct {
	High   float64
	Medium float64
	Low    float64
}

// ThresholdsFromEnv reads FACE_THRESHOLD_{HIGH,MEDIUM,LOW}, falling back to
// the defaults for anything unset or unparseable.
func ThresholdsFromEnv() Thresholds {
	return Thresholds{
		High:   envFloat("FACE_THRESHOLD_HIGH", defaultThresholdHigh),
		Medium: envFloat("FACE_THRESHOLD_MEDIUM", defaultThresholdMedium),
		Low:    envFloat("FACE_THRESHOLD_LOW", defaultThresholdLow),
	}
}

func envFloat(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return value
}

// CompareDescriptors returns the euclidean distance between two descriptors.
// Descriptors of different lengths (or empty ones) are not comparable.
func CompareDescriptors(a entities.FaceDescriptor, b entities.FaceDescriptor) (float64, error) {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0, entities.ErrIncompatibleDescriptor
	}
	var sum float64
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return math.Sqrt(sum), nil
}

// Classify maps a distance to its confidence tier. Total over all
// non-negative distances and monotonic: a smaller distance never yields a
// weaker tier.
func (t Thresholds) Classify(distance float64) types.MatchTier {
	switch {
	case distance < t.High:
		return types.TierHigh
	case distance < t.Medium:
		return types.TierMedium
	case distance < t.Low:
		return types.TierLow
	default:
		return types.TierNoMatch
	}
}
