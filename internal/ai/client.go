package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"phishguard/backend/internal/features"
)

// Analyzer exposes GenAI-backed phishing assessments.
type Analyzer interface {
	Enabled() bool
	Analyze(ctx context.Context, input Input) (Assessment, error)
}

// Config holds the GenAI provider settings.
type Config struct {
	APIKey      string
	Model       string
	BaseURL     string
	Temperature *float64 // nil selects DefaultTemperature
	Timeout     time.Duration
}

const (
	DefaultModel       = "llama-3.1-70b-versatile"
	DefaultBaseURL     = "https://api.groq.com/openai/v1"
	DefaultTemperature = 0.2
	DefaultTimeout     = 30 * time.Second
)

// SystemPrompt instructs the model to act as a phishing analyst and reply
// with a bare JSON object.
const SystemPrompt = `You are a phishing detection expert.
Return ONLY valid JSON:

{
  "genai_score": number,
  "verdict": "SAFE" | "SUSPICIOUS" | "PHISHING",
  "top_reasons": [string],
  "notes": string
}`

var (
	// ErrDisabled is returned when no credential is configured.
	ErrDisabled = errors.New("genai analyzer disabled")
	// ErrUnavailable covers transport failures, timeouts and non-2xx replies.
	ErrUnavailable = errors.New("genai service unavailable")
	// ErrContract is returned when the reply does not have the agreed shape.
	ErrContract = errors.New("genai reply violates contract")
)

// Client implements Analyzer against an OpenAI-compatible chat completions API.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	model       string
	baseURL     string
	temperature float64
}

// NewClient constructs a Client if the supplied configuration is valid.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrDisabled
	}
	cfg.Model = strings.TrimSpace(cfg.Model)
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	temp := DefaultTemperature
	if cfg.Temperature != nil {
		if *cfg.Temperature < 0 {
			return nil, fmt.Errorf("temperature must not be negative: %v", *cfg.Temperature)
		}
		temp = *cfg.Temperature
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		apiKey:      strings.TrimSpace(cfg.APIKey),
		model:       cfg.Model,
		baseURL:     cfg.BaseURL,
		temperature: temp,
	}, nil
}

// Enabled reports whether the client can make outbound calls.
func (c *Client) Enabled() bool {
	return c != nil && c.apiKey != ""
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	if c == nil {
		return ""
	}
	return c.model
}

// Analyze asks the model for a phishing assessment of the supplied URL.
func (c *Client) Analyze(ctx context.Context, input Input) (Assessment, error) {
	if !c.Enabled() {
		return Assessment{}, ErrDisabled
	}

	payload, err := c.buildPayload(input)
	if err != nil {
		return Assessment{}, err
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return Assessment{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return Assessment{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Assessment{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr map[string]any
		_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&apiErr)
		return Assessment{}, fmt.Errorf("%w: status %d: %v", ErrUnavailable, resp.StatusCode, apiErr)
	}

	var decoded chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return Assessment{}, fmt.Errorf("%w: decode completion: %v", ErrContract, err)
	}
	if len(decoded.Choices) == 0 {
		return Assessment{}, fmt.Errorf("%w: empty choices", ErrContract)
	}

	return ParseAssessment(decoded.Choices[0].Message.Content)
}

// ParseAssessment decodes the model's reply text. The text must hold a single
// JSON object whose known keys have the agreed types; a missing genai_score
// is allowed and resolved later by ScoreOrNeutral.
func ParseAssessment(content string) (Assessment, error) {
	block := normalizeJSONBlock(content)
	if block == "" {
		return Assessment{}, fmt.Errorf("%w: empty reply", ErrContract)
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(block), &raw); err != nil {
		return Assessment{}, fmt.Errorf("%w: %v", ErrContract, err)
	}
	if raw == nil {
		return Assessment{}, fmt.Errorf("%w: reply is not an object", ErrContract)
	}

	var assessment Assessment
	if err := json.Unmarshal([]byte(block), &assessment); err != nil {
		return Assessment{}, fmt.Errorf("%w: %v", ErrContract, err)
	}
	assessment.Raw = raw
	if assessment.TopReasons == nil {
		assessment.TopReasons = []string{}
	}
	return assessment, nil
}

// normalizeJSONBlock strips a surrounding markdown code fence from a reply.
// Anything else around the JSON is left in place for the decoder to reject.
func normalizeJSONBlock(input string) string {
	trimmed := strings.TrimSpace(input)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.IndexRune(trimmed, '\n'); idx >= 0 {
		trimmed = trimmed[idx+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(trimmed), "```"))
}

type userPayload struct {
	URL      string              `json:"url"`
	Features features.FeatureSet `json:"features"`
	Title    *string             `json:"title"`
	Snippet  *string             `json:"snippet"`
	Brand    *string             `json:"brand"`
	Context  *string             `json:"context"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	Messages    []chatMessage `json:"messages"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *Client) buildPayload(input Input) (chatCompletionRequest, error) {
	user, err := json.Marshal(userPayload{
		URL:      input.URL,
		Features: input.Features,
		Title:    input.PageTitle,
		Snippet:  input.PageSnippet,
		Brand:    input.Brand,
		Context:  input.UserContext,
	})
	if err != nil {
		return chatCompletionRequest{}, fmt.Errorf("marshal user payload: %w", err)
	}
	return chatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		Messages: []chatMessage{
			{Role: "system", Content: SystemPrompt},
			{Role: "user", Content: string(user)},
		},
	}, nil
}
