package mock

import (
	"context"

	voice "github.com/eathindhar/murf-voice-agents"
)

// Interface compliance check.
var _ voice.Agent = (*Agent)(nil)

// Agent is a test double for voice.Agent.
// Set the function fields for the methods you need.
type Agent struct {
	ConverseFn func(ctx context.Context, sessionID string, audio []byte) voice.Result
	SpeakFn    func(ctx context.Context, req voice.SpeechRequest) voice.Outcome
}

// Converse delegates to ConverseFn.
func (a *Agent) Converse(ctx context.Context, sessionID string, audio []byte) voice.Result {
	return a.ConverseFn(ctx, sessionID, audio)
}

// Speak delegates to SpeakFn.
func (a *Agent) Speak(ctx context.Context, req voice.SpeechRequest) voice.Outcome {
	return a.SpeakFn(ctx, req)
}
