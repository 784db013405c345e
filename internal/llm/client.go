package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL     = "https://openrouter.ai/api/v1"
	defaultModel       = "meta-llama/llama-3.3-70b-instruct"
	defaultTemperature = 0.3
	defaultTimeout     = 60 * time.Second
)

// GenerationError reports a failed generation attempt: transport failure,
// non-200 status, or output that is not a JSON object. Callers do not retry.
type GenerationError struct {
	Op     string
	Status int
	Err    error
}

func (e *GenerationError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("generate: %s: API status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("generate: %s: %v", e.Op, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Client generates structured JSON completions via the OpenRouter API
type Client struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	model       string
	temperature float64
}

// ClientOption configures the Client
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithModel sets the generation model
func WithModel(model string) ClientOption {
	return func(c *Client) {
		c.model = model
	}
}

// WithTemperature sets the sampling temperature
func WithTemperature(t float64) ClientOption {
	return func(c *Client) {
		c.temperature = t
	}
}

// WithTimeout sets the HTTP client timeout
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// NewClient creates a new generation client
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		baseURL:     defaultBaseURL,
		apiKey:      apiKey,
		model:       defaultModel,
		temperature: defaultTemperature,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Model returns the configured generation model
func (c *Client) Model() string {
	return c.model
}

type chatRequest struct {
	Model          string          `json:"model"`
	MaxTokens      int             `json:"max_tokens"`
	Temperature    float64         `json:"temperature"`
	Messages       []chatMessage   `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// GenerateStructured sends the prompt and returns the model's output as a raw
// JSON object. The model is asked for strict JSON; code fences around the
// object are tolerated and stripped.
func (c *Client) GenerateStructured(ctx context.Context, prompt string, maxTokens int) (json.RawMessage, error) {
	reqBody := chatRequest{
		Model:          c.model,
		MaxTokens:      maxTokens,
		Temperature:    c.temperature,
		Messages:       []chatMessage{{Role: "user", Content: prompt}},
		ResponseFormat: &responseFormat{Type: "json_object"},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, &GenerationError{Op: "marshal request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, &GenerationError{Op: "create request", Err: err}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &GenerationError{Op: "do request", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &GenerationError{Op: "read response", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &GenerationError{Op: "chat completion", Status: resp.StatusCode}
	}

	var cr chatResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return nil, &GenerationError{Op: "unmarshal response", Err: err}
	}

	if len(cr.Choices) == 0 {
		return nil, &GenerationError{Op: "chat completion", Err: fmt.Errorf("empty choices")}
	}

	content := stripCodeFences(cr.Choices[0].Message.Content)
	if !json.Valid([]byte(content)) {
		return nil, &GenerationError{Op: "parse output", Err: fmt.Errorf("model output is not valid JSON")}
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &probe); err != nil {
		return nil, &GenerationError{Op: "parse output", Err: fmt.Errorf("model output is not a JSON object: %w", err)}
	}

	return json.RawMessage(content), nil
}

// stripCodeFences removes a surrounding markdown code fence, which some
// models emit even when asked for bare JSON
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
