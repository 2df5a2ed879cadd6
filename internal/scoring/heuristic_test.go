package scoring

import (
	"reflect"
	"testing"

	"phishguard/backend/internal/features"
)

func TestScoreHeuristics(t *testing.T) {
	tests := []struct {
		name          string
		features      features.FeatureSet
		expectScore   float64
		expectReasons []string
	}{
		{
			name: "every rule fires",
			features: features.FeatureSet{
				LooksLikeIP:   true,
				SuspiciousTLD: true,
				URLLength:     80,
				NumHyphens:    4,
				HasHTTPS:      false,
			},
			expectScore:   65,
			expectReasons: []string{ReasonIPHost, ReasonSuspiciousTLD, ReasonLongURL, ReasonHyphens, ReasonNoHTTPS},
		},
		{
			name:          "clean https",
			features:      features.FeatureSet{Host: "example.com", URLLength: 20, NumDots: 1, HasHTTPS: true},
			expectScore:   0,
			expectReasons: []string{},
		},
		{
			name:          "length limit is exclusive",
			features:      features.FeatureSet{URLLength: 70, HasHTTPS: true},
			expectScore:   0,
			expectReasons: []string{},
		},
		{
			name:          "hyphen limit is inclusive",
			features:      features.FeatureSet{NumHyphens: 3, HasHTTPS: true},
			expectScore:   10,
			expectReasons: []string{ReasonHyphens},
		},
		{
			name:          "plain http only",
			features:      features.FeatureSet{URLLength: 30},
			expectScore:   10,
			expectReasons: []string{ReasonNoHTTPS},
		},
		{
			name:          "ip over https",
			features:      features.FeatureSet{LooksLikeIP: true, HasHTTPS: true},
			expectScore:   20,
			expectReasons: []string{ReasonIPHost},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := ScoreHeuristics(tc.features)
			if result.Score != tc.expectScore {
				t.Fatalf("expected score %v got %v", tc.expectScore, result.Score)
			}
			if !reflect.DeepEqual(result.Reasons, tc.expectReasons) {
				t.Fatalf("expected reasons %v got %v", tc.expectReasons, result.Reasons)
			}
		})
	}
}

func TestScoreHeuristicsIsBoundedAndMonotonic(t *testing.T) {
	// Walk every combination of the five rule triggers.
	for mask := 0; mask < 32; mask++ {
		base := featuresFromMask(mask)
		result := ScoreHeuristics(base)
		if result.Score < 0 || result.Score > MaxHeuristicScore {
			t.Fatalf("mask %05b: score %v out of range", mask, result.Score)
		}
		for bit := 0; bit < 5; bit++ {
			if mask&(1<<bit) != 0 {
				continue
			}
			more := ScoreHeuristics(featuresFromMask(mask | 1<<bit))
			if more.Score < result.Score {
				t.Fatalf("mask %05b + bit %d: score dropped from %v to %v", mask, bit, result.Score, more.Score)
			}
		}
	}
}

func featuresFromMask(mask int) features.FeatureSet {
	f := features.FeatureSet{URLLength: 10, HasHTTPS: true}
	if mask&1 != 0 {
		f.LooksLikeIP = true
	}
	if mask&2 != 0 {
		f.SuspiciousTLD = true
	}
	if mask&4 != 0 {
		f.URLLength = 120
	}
	if mask&8 != 0 {
		f.NumHyphens = 5
	}
	if mask&16 != 0 {
		f.HasHTTPS = false
	}
	return f
}

func TestScoreHeuristicsFromExtractedURL(t *testing.T) {
	result := ScoreHeuristics(features.Extract("http://192.168.1.999/login"))
	expected := []string{ReasonIPHost, ReasonNoHTTPS}
	if result.Score != 30 {
		t.Fatalf("expected 30 got %v", result.Score)
	}
	if !reflect.DeepEqual(result.Reasons, expected) {
		t.Fatalf("expected %v got %v", expected, result.Reasons)
	}
}
