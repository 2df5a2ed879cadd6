package scoring

import (
	"reflect"
	"testing"
)

func TestFuse(t *testing.T) {
	ml := HeuristicResult{Score: 65, Reasons: []string{ReasonIPHost, ReasonNoHTTPS}}
	decision := Fuse(ml, 80, []string{"Brand mismatch"})
	if decision.RiskScore != 73.25 {
		t.Fatalf("expected 73.25 got %v", decision.RiskScore)
	}
	if decision.Verdict != VerdictSuspicious {
		t.Fatalf("expected %s got %s", VerdictSuspicious, decision.Verdict)
	}
	expected := []string{ReasonIPHost, ReasonNoHTTPS, "Brand mismatch"}
	if !reflect.DeepEqual(decision.Reasons, expected) {
		t.Fatalf("expected %v got %v", expected, decision.Reasons)
	}
}

func TestFuseRoundsToTwoDecimals(t *testing.T) {
	decision := Fuse(HeuristicResult{Score: 10}, 33.333, nil)
	// 4.5 + 18.33315
	if decision.RiskScore != 22.83 {
		t.Fatalf("expected 22.83 got %v", decision.RiskScore)
	}
	if decision.Verdict != VerdictSafe {
		t.Fatalf("expected SAFE got %s", decision.Verdict)
	}
}

func TestFuseUsesRoundedScoreForVerdict(t *testing.T) {
	tests := []struct {
		name     string
		genai    float64
		risk     float64
		expected Verdict
	}{
		// 45 + 29.99601 rounds up onto the threshold
		{"rounds up to phishing", 54.5382, 75, VerdictPhishing},
		// 45 + 29.9915
		{"stays suspicious", 54.53, 74.99, VerdictSuspicious},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			decision := Fuse(HeuristicResult{Score: 100}, tc.genai, nil)
			if decision.RiskScore != tc.risk {
				t.Fatalf("expected %v got %v", tc.risk, decision.RiskScore)
			}
			if decision.Verdict != tc.expected {
				t.Fatalf("expected %s got %s", tc.expected, decision.Verdict)
			}
		})
	}
}

func TestFuseDoesNotClampGenAIScore(t *testing.T) {
	decision := Fuse(HeuristicResult{Score: 100}, 150, nil)
	if decision.RiskScore != 127.5 {
		t.Fatalf("expected 127.5 got %v", decision.RiskScore)
	}
	if decision.Verdict != VerdictPhishing {
		t.Fatalf("expected PHISHING got %s", decision.Verdict)
	}
}

func TestVerdictFor(t *testing.T) {
	tests := []struct {
		name     string
		score    float64
		expected Verdict
	}{
		{"phishing boundary", 75, VerdictPhishing},
		{"phishing high", 99.5, VerdictPhishing},
		{"just below phishing", 74.99, VerdictSuspicious},
		{"suspicious boundary", 45, VerdictSuspicious},
		{"just below suspicious", 44.99, VerdictSafe},
		{"zero", 0, VerdictSafe},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := VerdictFor(tc.score); got != tc.expected {
				t.Fatalf("expected %s got %s", tc.expected, got)
			}
		})
	}
}

func TestMergeReasons(t *testing.T) {
	ml := []string{"a", "b", "c", "d", "e"}
	genai := []string{"x", "y", "a"}

	merged := MergeReasons(ml, genai)
	expected := []string{"a", "b", "c", "d", "e", "x"}
	if !reflect.DeepEqual(merged, expected) {
		t.Fatalf("expected %v got %v", expected, merged)
	}

	dupes := MergeReasons([]string{"same"}, []string{"same"})
	if !reflect.DeepEqual(dupes, []string{"same", "same"}) {
		t.Fatalf("expected duplicates to be kept, got %v", dupes)
	}

	empty := MergeReasons(nil, nil)
	if empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil slice got %#v", empty)
	}
}
