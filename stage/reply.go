package stage

import (
	"context"

	voice "github.com/eathindhar/murf-voice-agents"
)

// Reply generates the assistant's answer from a formatted prompt. A blank
// reply consumes an attempt like an error does: models occasionally return
// nothing and a retry is worth it. Failure aborts the pipeline.
type Reply struct {
	provider voice.Responder
	run      runner
}

// NewReply builds the reply stage around provider.
func NewReply(provider voice.Responder, opts ...Option) *Reply {
	return &Reply{
		provider: provider,
		run:      newRunner("reply", voice.ReasonLLMError, provider.Available, opts),
	}
}

// Run generates a reply to prompt. The success value is the reply text.
func (s *Reply) Run(ctx context.Context, prompt string) voice.Outcome {
	return s.run.do(ctx, func(ctx context.Context) (string, error) {
		return s.provider.Reply(ctx, prompt)
	})
}
