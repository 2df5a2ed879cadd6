package scoring

import "phishguard/backend/internal/features"

// Heuristic rule weights and limits.
const (
	WeightIPHost        = 20
	WeightSuspiciousTLD = 15
	WeightLongURL       = 10
	WeightHyphens       = 10
	WeightNoHTTPS       = 10

	LongURLThreshold  = 70
	HyphenThreshold   = 3
	MaxHeuristicScore = 100
)

const (
	ReasonIPHost        = "IP address used instead of domain"
	ReasonSuspiciousTLD = "Suspicious TLD detected"
	ReasonLongURL       = "Unusually long URL"
	ReasonHyphens       = "Too many hyphens in domain"
	ReasonNoHTTPS       = "HTTPS not used"
)

// HeuristicResult is the rule-based half of a scan.
type HeuristicResult struct {
	Score   float64  `json:"score"`
	Reasons []string `json:"reasons"`
}

type heuristicRule struct {
	weight  int
	reason  string
	matches func(features.FeatureSet) bool
}

// heuristicRules is evaluated in order; reasons keep that order.
var heuristicRules = []heuristicRule{
	{WeightIPHost, ReasonIPHost, func(f features.FeatureSet) bool { return f.LooksLikeIP }},
	{WeightSuspiciousTLD, ReasonSuspiciousTLD, func(f features.FeatureSet) bool { return f.SuspiciousTLD }},
	{WeightLongURL, ReasonLongURL, func(f features.FeatureSet) bool { return f.URLLength > LongURLThreshold }},
	{WeightHyphens, ReasonHyphens, func(f features.FeatureSet) bool { return f.NumHyphens >= HyphenThreshold }},
	{WeightNoHTTPS, ReasonNoHTTPS, func(f features.FeatureSet) bool { return !f.HasHTTPS }},
}

// ScoreHeuristics applies the weighted lexical rules to a feature set.
func ScoreHeuristics(f features.FeatureSet) HeuristicResult {
	score := 0
	reasons := []string{}
	for _, rule := range heuristicRules {
		if !rule.matches(f) {
			continue
		}
		score += rule.weight
		reasons = append(reasons, rule.reason)
	}
	if score > MaxHeuristicScore {
		score = MaxHeuristicScore
	}
	return HeuristicResult{Score: float64(score), Reasons: reasons}
}
