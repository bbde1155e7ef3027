package polly

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/polly"
	pollytypes "github.com/aws/aws-sdk-go-v2/service/polly/types"
	"github.com/aws/smithy-go"
	voice "github.com/eathindhar/murf-voice-agents"
)

// Interface compliance check.
var _ voice.Synthesizer = (*Client)(nil)

// synthClient is the slice of the Polly SDK this package uses, split out
// so tests can fake it.
type synthClient interface {
	SynthesizeSpeech(ctx context.Context, params *polly.SynthesizeSpeechInput, optFns ...func(*polly.Options)) (*polly.SynthesizeSpeechOutput, error)
}

// Client implements [voice.Synthesizer] over Amazon Polly.
type Client struct {
	client synthClient
	clips  voice.ClipStore
	voice  string
	base   string
}

// Option configures a [Client].
type Option func(*Client)

// WithVoice sets the voice used when a request does not name one. Default
// is Joanna.
func WithVoice(voiceID string) Option {
	return func(c *Client) {
		if voiceID != "" {
			c.voice = voiceID
		}
	}
}

// New creates a Polly [Client] in the given region. Rendered clips are
// stored in clips and addressed under baseURL.
func New(ctx context.Context, region string, clips voice.ClipStore, baseURL string, opts ...Option) (*Client, error) {
	if region == "" {
		region = defaultRegion
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("polly: load aws config: %w", err)
	}
	return NewWithClient(polly.NewFromConfig(awsCfg), clips, baseURL, opts...), nil
}

// NewWithClient creates a [Client] over an existing SDK client. Tests use
// it to fake the SDK.
func NewWithClient(client synthClient, clips voice.ClipStore, baseURL string, opts ...Option) *Client {
	c := &Client{
		client: client,
		clips:  clips,
		voice:  defaultVoice,
		base:   strings.TrimSuffix(baseURL, "/"),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Available reports whether an SDK client and a clip store are wired in.
func (c *Client) Available() bool { return c.client != nil && c.clips != nil }

// Name identifies the provider.
func (c *Client) Name() string { return "polly" }

// Synthesize renders req.Text with Polly, stores the audio as a clip and
// returns the local URL serving it.
func (c *Client) Synthesize(ctx context.Context, req voice.SpeechRequest) (string, error) {
	if !c.Available() {
		return "", fmt.Errorf("polly: %w", voice.ErrNotConfigured)
	}

	voiceID := req.Voice
	if voiceID == "" {
		voiceID = c.voice
	}
	out, err := c.client.SynthesizeSpeech(ctx, &polly.SynthesizeSpeechInput{
		Engine:       pollytypes.EngineNeural,
		OutputFormat: pollytypes.OutputFormatMp3,
		Text:         &req.Text,
		TextType:     pollytypes.TextTypeText,
		VoiceId:      pollytypes.VoiceId(voiceID),
	})
	if err != nil {
		return "", classifyError(err)
	}
	if out == nil || out.AudioStream == nil {
		return "", fmt.Errorf("polly: response missing audio stream")
	}
	defer out.AudioStream.Close()

	data, err := io.ReadAll(out.AudioStream)
	if err != nil {
		return "", fmt.Errorf("polly: read audio stream: %w", err)
	}
	clip, err := c.clips.Put(data, contentType)
	if err != nil {
		return "", fmt.Errorf("polly: store clip: %w", err)
	}
	return c.base + audioRoute + clip.ID, nil
}

// classifyError keeps the AWS error code visible in the message so stage
// logs say which limit or validation rule was hit.
func classifyError(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("polly: %s: %s", apiErr.ErrorCode(), apiErr.ErrorMessage())
	}
	return fmt.Errorf("polly: %w", err)
}
