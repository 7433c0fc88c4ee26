// Package ai talks to the Gemini generateContent API to find deals and draft e-mails.
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
)

const (
	DefaultModel      = "gemini-2.5-flash"
	DefaultBaseURL    = "https://generativelanguage.googleapis.com/v1beta"
	DefaultTimeout    = 60 * time.Second
	MaxRetries        = 3
	InitialBackoff    = 1 * time.Second
	MaxBackoff        = 30 * time.Second
	BackoffMultiplier = 2.0
)

// ErrEmptyResponse is returned when the model produced no text
var ErrEmptyResponse = errors.New("empty response from model")

// GeminiClient handles communication with the Gemini API
type GeminiClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client

	maxRetries     int
	initialBackoff time.Duration
}

// Part is a piece of message content
type Part struct {
	Text string `json:"text,omitempty"`
}

// Content is a single turn of the conversation
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// Tool enables a server-side capability such as Google Search grounding
type Tool struct {
	GoogleSearch *struct{} `json:"google_search,omitempty"`
}

// GenerationConfig tunes the model output
type GenerationConfig struct {
	Temperature      float64        `json:"temperature,omitempty"`
	MaxOutputTokens  int            `json:"maxOutputTokens,omitempty"`
	ResponseMIMEType string         `json:"responseMimeType,omitempty"`
	ResponseSchema   map[string]any `json:"responseSchema,omitempty"`
}

// GenerateRequest is the body of a generateContent call
type GenerateRequest struct {
	Contents         []Content         `json:"contents"`
	Tools            []Tool            `json:"tools,omitempty"`
	GenerationConfig *GenerationConfig `json:"generationConfig,omitempty"`
}

// GenerateResponse is the body returned by generateContent
type GenerateResponse struct {
	Candidates []struct {
		Content      Content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
}

type geminiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// NewGeminiClient creates a new Gemini API client. Empty model or baseURL use the defaults.
func NewGeminiClient(apiKey, model, baseURL string) *GeminiClient {
	if model == "" {
		model = DefaultModel
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &GeminiClient{
		apiKey:         apiKey,
		model:          model,
		baseURL:        strings.TrimRight(baseURL, "/"),
		httpClient:     &http.Client{Timeout: DefaultTimeout},
		maxRetries:     MaxRetries,
		initialBackoff: InitialBackoff,
	}
}

// SetRetryPolicy overrides the number of retries and the first backoff delay
func (c *GeminiClient) SetRetryPolicy(maxRetries int, initialBackoff time.Duration) {
	c.maxRetries = maxRetries
	c.initialBackoff = initialBackoff
}

// Configured reports whether an API key is set
func (c *GeminiClient) Configured() bool {
	return c.apiKey != ""
}

// Generate sends a generateContent request with retry on rate limits and server errors
func (c *GeminiClient) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	if !c.Configured() {
		return nil, errors.New("gemini API key is not configured")
	}

	var lastErr error
	backoff := c.initialBackoff

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			backoff = time.Duration(float64(backoff) * BackoffMultiplier)
			if backoff > MaxBackoff {
				backoff = MaxBackoff
			}
		}

		resp, err := c.doRequest(ctx, req)
		if err == nil {
			return resp, nil
		}

		lastErr = err
		if !isRetryableError(err) {
			return nil, err
		}
	}

	return nil, fmt.Errorf("failed after %d retries: %w", c.maxRetries, lastErr)
}

// GenerateText sends a single-turn prompt and returns the text of the first candidate
func (c *GeminiClient) GenerateText(ctx context.Context, prompt string, tools []Tool, cfg *GenerationConfig) (string, error) {
	resp, err := c.Generate(ctx, &GenerateRequest{
		Contents:         []Content{{Role: "user", Parts: []Part{{Text: prompt}}}},
		Tools:            tools,
		GenerationConfig: cfg,
	})
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func (c *GeminiClient) doRequest(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
		var gErr geminiError
		if err := json.Unmarshal(respBody, &gErr); err == nil && gErr.Error.Message != "" {
			apiErr.Message = gErr.Error.Message
			apiErr.Status = gErr.Error.Status
		}
		return nil, apiErr
	}

	var out GenerateResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return &out, nil
}

// Text joins the text parts of the first candidate
func (r *GenerateResponse) Text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String()
}

// APIError is a non-200 reply from the Gemini API
type APIError struct {
	StatusCode int
	Message    string
	Status     string
}

func (e *APIError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("Gemini API error (%d): %s - %s", e.StatusCode, e.Status, e.Message)
	}
	return fmt.Sprintf("Gemini API error (%d): %s", e.StatusCode, e.Message)
}

// IsRateLimitError checks if the error is a rate limit error
func (e *APIError) IsRateLimitError() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// IsServerError checks if the error is a server error
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500
}

func isRetryableError(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.IsRateLimitError() || apiErr.IsServerError()
	}
	return false
}
