package biometric

import (
	"testing"

	"facepass.io/infrastructure/biometric/types"
)

func TestNormalizeJudgeTier(t *testing.T) {
	tests := []struct {
		name       string
		confidence string
		matched    bool
		want       types.MatchTier
	}{
		{"high confidence match", "High", true, types.TierHigh},
		{"medium confidence match", "Medium", true, types.TierMedium},
		{"low confidence match", "Low", true, types.TierLow},
		{"no match overrides confidence", "High", false, types.TierNoMatch},
		{"unrecognized confidence fails closed", "Definitely", true, types.TierNoMatch},
		{"empty confidence fails closed", "", true, types.TierNoMatch},
		{"lowercase is not accepted", "high", true, types.TierNoMatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeJudgeTier(tt.confidence, tt.matched); got != tt.want {
				t.Errorf("normalizeJudgeTier(%q, %v) = %q, want %q", tt.confidence, tt.matched, got, tt.want)
			}
		})
	}
}
