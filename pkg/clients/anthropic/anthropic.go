package anthropic

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	defaultBaseURL = "https://api.anthropic.com"
	apiVersion     = "2023-06-01"
	defaultModel   = "claude-3-5-haiku-latest"
	maxTokens      = 2048
)

// Client defines the interface for AI text generation.
type Client interface {
	// Complete returns the model's reply to a single user prompt.
	Complete(ctx context.Context, system, prompt string) (string, error)
	// CompleteJSON prefills the reply with "{" so the model answers with a JSON object,
	// and returns the reconstructed object text.
	CompleteJSON(ctx context.Context, system, prompt string) (string, error)
}

// APIError carries the HTTP status of a failed Messages API call.
type APIError struct {
	StatusCode int
	Type       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("anthropic api error: status=%d type=%s message=%s", e.StatusCode, e.Type, e.Message)
}

type anthropicClient struct {
	httpClient *resty.Client
	model      string
}

// Option customizes the client.
type Option func(*anthropicClient)

// WithBaseURL points the client at another host, e.g. a test server.
func WithBaseURL(url string) Option {
	return func(c *anthropicClient) { c.httpClient.SetBaseURL(strings.TrimSuffix(url, "/")) }
}

// WithModel overrides the model name.
func WithModel(model string) Option {
	return func(c *anthropicClient) {
		if model != "" {
			c.model = model
		}
	}
}

// NewClient creates a configured Anthropic client.
func NewClient(apiKey string, opts ...Option) Client {
	client := resty.New().
		SetBaseURL(defaultBaseURL).
		SetHeader("x-api-key", apiKey).
		SetHeader("anthropic-version", apiVersion).
		SetHeader("content-type", "application/json").
		SetTimeout(60 * time.Second)

	c := &anthropicClient{httpClient: client, model: defaultModel}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type messageRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Messages  []Message `json:"messages"`
}

// Message is one turn of a Messages API conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messageResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

type errorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *anthropicClient) Complete(ctx context.Context, system, prompt string) (string, error) {
	return c.send(ctx, system, []Message{{Role: "user", Content: prompt}})
}

func (c *anthropicClient) CompleteJSON(ctx context.Context, system, prompt string) (string, error) {
	// Prefill the assistant response to force JSON
	text, err := c.send(ctx, system, []Message{
		{Role: "user", Content: prompt},
		{Role: "assistant", Content: "{"},
	})
	if err != nil {
		return "", err
	}
	// Reconstruct the full JSON since we prefilled the opening brace
	return "{" + text, nil
}

func (c *anthropicClient) send(ctx context.Context, system string, messages []Message) (string, error) {
	reqBody := messageRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		System:    system,
		Messages:  messages,
	}

	var respBody messageResponse
	var errBody errorResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(reqBody).
		SetResult(&respBody).
		SetError(&errBody).
		Post("/v1/messages")

	if err != nil {
		return "", fmt.Errorf("anthropic api call: %w", err)
	}
	if resp.IsError() {
		msg := errBody.Error.Message
		if msg == "" {
			msg = resp.String()
		}
		return "", &APIError{StatusCode: resp.StatusCode(), Type: errBody.Error.Type, Message: msg}
	}
	if len(respBody.Content) == 0 {
		return "", fmt.Errorf("empty response from ai")
	}

	var sb strings.Builder
	for _, block := range respBody.Content {
		sb.WriteString(block.Text)
	}
	return sb.String(), nil
}
