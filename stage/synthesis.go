package stage

import (
	"context"

	voice "github.com/eathindhar/murf-voice-agents"
)

// Synthesis renders reply text as audio. Unlike the text stages it
// degrades instead of aborting, even when the provider is not configured
// at all: a reply the user can read is still worth returning when the
// voice for it cannot be produced.
type Synthesis struct {
	provider voice.Synthesizer
	run      runner
}

// NewSynthesis builds the synthesis stage around provider.
func NewSynthesis(provider voice.Synthesizer, opts ...Option) *Synthesis {
	r := newRunner("synthesis", voice.ReasonTTSError, provider.Available, opts)
	r.degrade = true
	return &Synthesis{provider: provider, run: r}
}

// Run synthesizes speech for req. The success value is the URL of the
// rendered audio.
func (s *Synthesis) Run(ctx context.Context, req voice.SpeechRequest) voice.Outcome {
	return s.run.do(ctx, func(ctx context.Context) (string, error) {
		return s.provider.Synthesize(ctx, req)
	})
}
