package ai

import (
	"phishguard/backend/internal/features"
	"phishguard/backend/internal/scoring"
)

// Input describes what the GenAI analyst sees for a single scan.
type Input struct {
	URL         string
	Features    features.FeatureSet
	PageTitle   *string
	PageSnippet *string
	Brand       *string
	UserContext *string
}

// Assessment is the structured reply of the GenAI analyst. Raw keeps the
// decoded object as returned so callers can echo it untouched.
type Assessment struct {
	Score      *float64 `json:"genai_score"`
	Verdict    string   `json:"verdict"`
	TopReasons []string `json:"top_reasons"`
	Notes      string   `json:"notes"`

	Raw map[string]any `json:"-"`
}

// ScoreOrNeutral returns the reported score, or the neutral midpoint when the
// reply carried none.
func (a Assessment) ScoreOrNeutral() float64 {
	if a.Score == nil {
		return scoring.NeutralGenAIScore
	}
	return *a.Score
}
