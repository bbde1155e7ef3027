package voice

import "context"

// Transcript is the result of a speech-to-text call.
type Transcript struct {
	Text       string
	Confidence float64 // 0 when the provider does not report one
}

// SpeechRequest carries the input of a text-to-speech call. An empty Voice
// means the synthesizer uses its configured default; voice identifiers are
// provider-specific and not portable between synthesizers.
type SpeechRequest struct {
	Text  string
	Voice string
}

// Transcriber is a strategy interface for speech-to-text providers.
// Transcribe returns the transcript verbatim: an empty Text with a nil
// error is a valid result meaning the audio contained no speech, and
// classifying it is the caller's concern.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (Transcript, error)

	// Available reports whether the provider is configured with the
	// credentials it needs. Calls made while unavailable fail with
	// ErrNotConfigured.
	Available() bool

	// Name identifies the provider for logs and health reporting.
	Name() string
}

// Responder is a strategy interface for language-model providers. Reply
// takes a fully formatted prompt and returns the model's reply text with
// surrounding whitespace trimmed.
type Responder interface {
	Reply(ctx context.Context, prompt string) (string, error)
	Available() bool
	Name() string
}

// Synthesizer is a strategy interface for text-to-speech providers.
// Synthesize returns a URL where the rendered audio can be fetched.
type Synthesizer interface {
	Synthesize(ctx context.Context, req SpeechRequest) (string, error)
	Available() bool
	Name() string
}
