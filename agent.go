package voice

import "context"

// Agent runs the conversational pipeline. It never returns an error:
// every failure mode is absorbed into the Result (or Outcome) so callers
// always have a structured, user-presentable payload.
type Agent interface {
	// Converse runs one audio utterance through
	// transcription → reply → synthesis for the given session.
	Converse(ctx context.Context, sessionID string, audio []byte) Result

	// Speak synthesizes arbitrary text through the synthesis stage,
	// bypassing transcription and the language model.
	Speak(ctx context.Context, req SpeechRequest) Outcome
}
