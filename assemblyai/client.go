package assemblyai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	voice "github.com/eathindhar/murf-voice-agents"
)

// Interface compliance check.
var _ voice.Transcriber = (*Client)(nil)

// Client implements [voice.Transcriber] for the AssemblyAI API.
type Client struct {
	apiKey       string
	baseURL      string
	httpClient   *http.Client
	pollInterval time.Duration
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

// WithPollInterval sets how often a transcript job is polled.
func WithPollInterval(d time.Duration) Option {
	return func(c *Client) { c.pollInterval = d }
}

// New creates a new AssemblyAI [Client] with the given API key and options.
// An empty key yields a client that reports itself unavailable.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:       apiKey,
		baseURL:      defaultBaseURL,
		httpClient:   http.DefaultClient,
		pollInterval: defaultPollInterval,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Available reports whether an API key is configured.
func (c *Client) Available() bool { return c.apiKey != "" }

// Name identifies the provider.
func (c *Client) Name() string { return "assemblyai" }

// Transcribe uploads audio, creates a transcript job and polls it to
// completion. A completed job with no text returns an empty transcript and
// a nil error: silence is a valid answer, not a failure.
func (c *Client) Transcribe(ctx context.Context, audio []byte) (voice.Transcript, error) {
	if !c.Available() {
		return voice.Transcript{}, fmt.Errorf("assemblyai: %w", voice.ErrNotConfigured)
	}
	audioURL, err := c.upload(ctx, audio)
	if err != nil {
		return voice.Transcript{}, err
	}
	id, err := c.createTranscript(ctx, audioURL)
	if err != nil {
		return voice.Transcript{}, err
	}
	return c.await(ctx, id)
}

// upload stores the raw audio with the provider and returns its private
// URL. The reader is built fresh from the byte slice, so a retried call
// always sends the whole recording from byte zero.
func (c *Client) upload(ctx context.Context, audio []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+uploadPath, bytes.NewReader(audio))
	if err != nil {
		return "", fmt.Errorf("assemblyai: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("assemblyai: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", parseHTTPError(resp)
	}

	var body apiUploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("assemblyai: decode upload response: %w", err)
	}
	if body.UploadURL == "" {
		return "", fmt.Errorf("assemblyai: upload response missing upload_url")
	}
	return body.UploadURL, nil
}

// createTranscript starts a transcript job for the uploaded audio and
// returns the job id.
func (c *Client) createTranscript(ctx context.Context, audioURL string) (string, error) {
	body, err := json.Marshal(apiTranscriptRequest{AudioURL: audioURL})
	if err != nil {
		return "", fmt.Errorf("assemblyai: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+transcriptPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("assemblyai: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("assemblyai: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", parseHTTPError(resp)
	}

	var t apiTranscript
	if err := json.NewDecoder(resp.Body).Decode(&t); err != nil {
		return "", fmt.Errorf("assemblyai: decode transcript response: %w", err)
	}
	if t.ID == "" {
		return "", fmt.Errorf("assemblyai: transcript response missing id")
	}
	return t.ID, nil
}

// await polls the transcript job until the provider finishes with it.
func (c *Client) await(ctx context.Context, id string) (voice.Transcript, error) {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()
	for {
		t, err := c.transcript(ctx, id)
		if err != nil {
			return voice.Transcript{}, err
		}
		switch t.Status {
		case statusCompleted:
			return voice.Transcript{Text: t.Text, Confidence: t.Confidence}, nil
		case statusError:
			return voice.Transcript{}, fmt.Errorf("assemblyai: transcription failed: %s", t.Error)
		}

		select {
		case <-ctx.Done():
			return voice.Transcript{}, fmt.Errorf("assemblyai: %w", ctx.Err())
		case <-ticker.C:
		}
	}
}

// transcript fetches the current state of a transcript job.
func (c *Client) transcript(ctx context.Context, id string) (apiTranscript, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+transcriptPath+"/"+id, nil)
	if err != nil {
		return apiTranscript{}, fmt.Errorf("assemblyai: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apiTranscript{}, fmt.Errorf("assemblyai: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return apiTranscript{}, parseHTTPError(resp)
	}

	var t apiTranscript
	if err := json.NewDecoder(resp.Body).Decode(&t); err != nil {
		return apiTranscript{}, fmt.Errorf("assemblyai: decode transcript state: %w", err)
	}
	return t, nil
}

func parseHTTPError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("assemblyai: HTTP %d (failed to read body: %w)", resp.StatusCode, err)
	}
	var apiErr apiErrorResponse
	if err := json.Unmarshal(body, &apiErr); err != nil || apiErr.Error == "" {
		return fmt.Errorf("assemblyai: HTTP %d: %s", resp.StatusCode, string(body))
	}
	return fmt.Errorf("assemblyai: %s", apiErr.Error)
}
