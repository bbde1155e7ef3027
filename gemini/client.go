package gemini

import (
	"context"
	"fmt"
	"strings"

	voice "github.com/eathindhar/murf-voice-agents"
	"google.golang.org/genai"
)

// Interface compliance check.
var _ voice.Responder = (*Client)(nil)

// Client implements [voice.Responder] for the Google Gemini API.
type Client struct {
	client *genai.Client
	model  string
}

// Option configures a [Client].
type Option func(*Client)

// WithModel sets the model ID. Default is gemini-2.0-flash-exp.
func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// New creates a new Gemini [Client] with the given API key and options.
// An empty key skips SDK construction entirely and yields a client that
// reports itself unavailable.
func New(ctx context.Context, apiKey string, opts ...Option) (*Client, error) {
	c := &Client{model: defaultModel}
	for _, o := range opts {
		o(c)
	}
	if apiKey == "" {
		return c, nil
	}
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	c.client = gc
	return c, nil
}

// Available reports whether the SDK client was constructed.
func (c *Client) Available() bool { return c.client != nil }

// Name identifies the provider.
func (c *Client) Name() string { return "gemini" }

// Reply sends the prompt as a single user turn and returns the model's
// text with surrounding whitespace trimmed.
func (c *Client) Reply(ctx context.Context, prompt string) (string, error) {
	if !c.Available() {
		return "", fmt.Errorf("gemini: %w", voice.ErrNotConfigured)
	}

	budget := int32(0)
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ThinkingConfig: &genai.ThinkingConfig{ThinkingBudget: &budget},
	})
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	return strings.TrimSpace(resp.Text()), nil
}
