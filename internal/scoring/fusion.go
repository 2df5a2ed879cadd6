package scoring

import "math"

// Verdict is the authoritative classification returned to callers.
type Verdict string

const (
	VerdictSafe       Verdict = "SAFE"
	VerdictSuspicious Verdict = "SUSPICIOUS"
	VerdictPhishing   Verdict = "PHISHING"
)

// Fusion policy.
const (
	HeuristicWeight = 0.45
	GenAIWeight     = 0.55

	PhishingThreshold   = 75.0
	SuspiciousThreshold = 45.0

	// NeutralGenAIScore stands in when the GenAI reply omits its score.
	NeutralGenAIScore = 50.0

	MaxReasons = 6
)

// Decision is the fused outcome of a scan.
type Decision struct {
	RiskScore float64  `json:"risk_score"`
	Verdict   Verdict  `json:"verdict"`
	Reasons   []string `json:"reasons"`
}

// Fuse blends the heuristic score with the GenAI score and merges reasons.
// The GenAI verdict label is not an input.
func Fuse(ml HeuristicResult, genaiScore float64, genaiReasons []string) Decision {
	risk := Round2(HeuristicWeight*ml.Score + GenAIWeight*genaiScore)
	return Decision{
		RiskScore: risk,
		Verdict:   VerdictFor(risk),
		Reasons:   MergeReasons(ml.Reasons, genaiReasons),
	}
}

// VerdictFor maps a fused score onto the three verdict bands.
func VerdictFor(score float64) Verdict {
	switch {
	case score >= PhishingThreshold:
		return VerdictPhishing
	case score >= SuspiciousThreshold:
		return VerdictSuspicious
	default:
		return VerdictSafe
	}
}

// MergeReasons concatenates heuristic then GenAI reasons, keeping at most
// MaxReasons entries. Duplicates are kept.
func MergeReasons(ml, genai []string) []string {
	merged := make([]string, 0, MaxReasons)
	for _, list := range [][]string{ml, genai} {
		for _, reason := range list {
			if len(merged) == MaxReasons {
				return merged
			}
			merged = append(merged, reason)
		}
	}
	return merged
}

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
