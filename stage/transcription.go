package stage

import (
	"context"

	voice "github.com/eathindhar/murf-voice-agents"
)

// Transcription turns caller audio into text. Provider errors are retried;
// a blank transcript is not, because it means the audio held no speech and
// no retry can change that. Failure aborts the pipeline: without a
// transcript there is nothing to reply to.
type Transcription struct {
	provider voice.Transcriber
	run      runner
}

// NewTranscription builds the transcription stage around provider.
func NewTranscription(provider voice.Transcriber, opts ...Option) *Transcription {
	r := newRunner("transcription", voice.ReasonSTTError, provider.Available, opts)
	r.blankReason = voice.ReasonEmptyTranscription
	return &Transcription{provider: provider, run: r}
}

// Run transcribes audio. The success value is the transcript text.
func (s *Transcription) Run(ctx context.Context, audio []byte) voice.Outcome {
	return s.run.do(ctx, func(ctx context.Context) (string, error) {
		t, err := s.provider.Transcribe(ctx, audio)
		if err != nil {
			return "", err
		}
		return t.Text, nil
	})
}
