package service

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

// TextGenerator produces free text from a system and a user prompt.
type TextGenerator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// Message is one entry of a chat completion request
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is the body sent to an OpenAI-compatible chat completion endpoint
type Request struct {
	Model          string            `json:"model"`
	Messages       []Message         `json:"messages"`
	Temperature    float64           `json:"temperature"`
	Stream         bool              `json:"stream"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
}

// ChatClient talks to an OpenAI-compatible chat completion API. The default
// base URL points at a local Ollama server.
type ChatClient struct {
	baseURL     string
	model       string
	apiKey      string
	temperature float64
	jsonMode    bool
	httpClient  *http.Client
}

// ChatOption configures a ChatClient.
type ChatOption func(*ChatClient)

// WithHTTPClient replaces the HTTP client used for requests.
func WithHTTPClient(c *http.Client) ChatOption {
	return func(cc *ChatClient) { cc.httpClient = c }
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) ChatOption {
	return func(cc *ChatClient) { cc.temperature = t }
}

// WithJSONMode asks the server to constrain output to a JSON object.
// Not every local server supports response_format.
func WithJSONMode() ChatOption {
	return func(cc *ChatClient) { cc.jsonMode = true }
}

// NewChatClient creates a ChatClient for baseURL (without the
// /chat/completions suffix).
func NewChatClient(baseURL, model, apiKey string, timeout time.Duration, opts ...ChatOption) *ChatClient {
	c := &ChatClient{
		baseURL:     strings.TrimRight(baseURL, "/"),
		model:       model,
		apiKey:      apiKey,
		temperature: 0.7,
		httpClient:  &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Generate sends a single-turn chat request and returns the first choice.
func (c *ChatClient) Generate(ctx context.Context, system, prompt string) (string, error) {
	reqBody := Request{
		Model: c.model,
		Messages: []Message{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
		Temperature: c.temperature,
	}
	if c.jsonMode {
		reqBody.ResponseFormat = map[string]string{"type": "json_object"}
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: failed to send request: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", fmt.Errorf("%w: failed to read response: %v", ErrUpstream, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: model server returned %d: %s", ErrUpstream, resp.StatusCode, snippet(body))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("%w: failed to decode response envelope: %v", ErrUpstream, err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", ErrUpstream)
	}

	return result.Choices[0].Message.Content, nil
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		return s[:200] + "..."
	}
	return s
}
