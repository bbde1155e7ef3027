package murf

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	voice "github.com/eathindhar/murf-voice-agents"
)

// Interface compliance check.
var _ voice.Synthesizer = (*Client)(nil)

// Client implements [voice.Synthesizer] for the Murf AI API.
type Client struct {
	apiKey     string
	voice      string
	baseURL    string
	httpClient *http.Client
}

// Option configures a [Client].
type Option func(*Client)

// WithBaseURL sets the API base URL. Useful for testing with httptest.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithVoice sets the voice used when a request does not name one. Default
// is en-US-natalie.
func WithVoice(voiceID string) Option {
	return func(c *Client) {
		if voiceID != "" {
			c.voice = voiceID
		}
	}
}

// New creates a new Murf [Client] with the given API key and options.
// An empty key yields a client that reports itself unavailable.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		voice:      defaultVoice,
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Available reports whether an API key is configured.
func (c *Client) Available() bool { return c.apiKey != "" }

// Name identifies the provider.
func (c *Client) Name() string { return "murf" }

// Synthesize renders req.Text as speech and returns the provider-hosted
// URL of the audio.
func (c *Client) Synthesize(ctx context.Context, req voice.SpeechRequest) (string, error) {
	if !c.Available() {
		return "", fmt.Errorf("murf: %w", voice.ErrNotConfigured)
	}

	voiceID := req.Voice
	if voiceID == "" {
		voiceID = c.voice
	}
	body, err := json.Marshal(apiGenerateRequest{Text: req.Text, VoiceID: voiceID})
	if err != nil {
		return "", fmt.Errorf("murf: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+generatePath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("murf: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("murf: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", parseHTTPError(resp)
	}

	var out apiGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("murf: decode response: %w", err)
	}
	if out.AudioFile == "" {
		return "", fmt.Errorf("murf: response missing audioFile")
	}
	return out.AudioFile, nil
}

func parseHTTPError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("murf: HTTP %d (failed to read body: %w)", resp.StatusCode, err)
	}
	var apiErr apiErrorResponse
	if err := json.Unmarshal(body, &apiErr); err != nil || apiErr.ErrorMessage == "" {
		return fmt.Errorf("murf: HTTP %d: %s", resp.StatusCode, string(body))
	}
	return fmt.Errorf("murf: %s", apiErr.ErrorMessage)
}
