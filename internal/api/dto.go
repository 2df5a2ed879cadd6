package api

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"phishguard/backend/internal/ai"
	"phishguard/backend/internal/features"
	"phishguard/backend/internal/scoring"
)

// ScanRequest is the body accepted by POST /scan.
type ScanRequest struct {
	URL             string  `json:"url"`
	PageTitle       *string `json:"page_title"`
	PageTextSnippet *string `json:"page_text_snippet"`
	BrandClaimed    *string `json:"brand_claimed"`
	UserContext     *string `json:"user_context"`
}

// Validate checks that the URL is an absolute http(s) URL with a host and
// rewrites it into canonical form: lowercase scheme and host, no default
// port, and "/" for an empty path.
func (r *ScanRequest) Validate() error {
	r.URL = strings.TrimSpace(r.URL)
	if r.URL == "" {
		return errors.New("url is required")
	}
	u, err := url.Parse(r.URL)
	if err != nil {
		return fmt.Errorf("url is invalid: %w", err)
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return errors.New("url scheme must be http or https")
	}
	if u.Hostname() == "" {
		return errors.New("url host is required")
	}
	r.URL = canonicalURL(u, scheme)
	return nil
}

func canonicalURL(u *url.URL, scheme string) string {
	u.Scheme = scheme
	host := strings.ToLower(u.Hostname())
	if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}
	if port := u.Port(); port != "" && !(scheme == "http" && port == "80") && !(scheme == "https" && port == "443") {
		host += ":" + port
	}
	u.Host = host
	if u.Path == "" && u.RawPath == "" {
		u.Path = "/"
	}
	return u.String()
}

// Signals groups the local evidence behind a verdict.
type Signals struct {
	Features features.FeatureSet `json:"features"`
}

// ScanResponse is the body returned by POST /scan.
type ScanResponse struct {
	URL          string          `json:"url"`
	Verdict      scoring.Verdict `json:"verdict"`
	RiskScore    float64         `json:"risk_score"`
	MLScore      float64         `json:"ml_score"`
	GenAIScore   float64         `json:"genai_score"`
	Reasons      []string        `json:"reasons"`
	Signals      Signals         `json:"signals"`
	GenAISummary map[string]any  `json:"genai_summary"`
}

func (r ScanRequest) analysisInput(f features.FeatureSet) ai.Input {
	return ai.Input{
		URL:         r.URL,
		Features:    f,
		PageTitle:   r.PageTitle,
		PageSnippet: r.PageTextSnippet,
		Brand:       r.BrandClaimed,
		UserContext: r.UserContext,
	}
}

func buildResponse(req ScanRequest, f features.FeatureSet, ml scoring.HeuristicResult, assessment ai.Assessment) ScanResponse {
	genaiScore := assessment.ScoreOrNeutral()
	decision := scoring.Fuse(ml, genaiScore, assessment.TopReasons)

	summary := assessment.Raw
	if summary == nil {
		summary = map[string]any{}
	}
	return ScanResponse{
		URL:          req.URL,
		Verdict:      decision.Verdict,
		RiskScore:    decision.RiskScore,
		MLScore:      ml.Score,
		GenAIScore:   genaiScore,
		Reasons:      decision.Reasons,
		Signals:      Signals{Features: f},
		GenAISummary: summary,
	}
}
