// Package mock provides test doubles for voice interfaces using function fields.
package mock

import (
	"context"

	voice "github.com/eathindhar/murf-voice-agents"
)

// Interface compliance checks.
var (
	_ voice.Transcriber = (*Transcriber)(nil)
	_ voice.Responder   = (*Responder)(nil)
	_ voice.Synthesizer = (*Synthesizer)(nil)
)

// Transcriber is a test double for voice.Transcriber.
// Set the function fields for the methods you need.
type Transcriber struct {
	TranscribeFn func(ctx context.Context, audio []byte) (voice.Transcript, error)
	AvailableFn  func() bool
	NameFn       func() string
}

// Transcribe delegates to TranscribeFn.
func (t *Transcriber) Transcribe(ctx context.Context, audio []byte) (voice.Transcript, error) {
	return t.TranscribeFn(ctx, audio)
}

// Available delegates to AvailableFn.
func (t *Transcriber) Available() bool {
	return t.AvailableFn()
}

// Name delegates to NameFn.
func (t *Transcriber) Name() string {
	return t.NameFn()
}

// Responder is a test double for voice.Responder.
// Set the function fields for the methods you need.
type Responder struct {
	ReplyFn     func(ctx context.Context, prompt string) (string, error)
	AvailableFn func() bool
	NameFn      func() string
}

// Reply delegates to ReplyFn.
func (r *Responder) Reply(ctx context.Context, prompt string) (string, error) {
	return r.ReplyFn(ctx, prompt)
}

// Available delegates to AvailableFn.
func (r *Responder) Available() bool {
	return r.AvailableFn()
}

// Name delegates to NameFn.
func (r *Responder) Name() string {
	return r.NameFn()
}

// Synthesizer is a test double for voice.Synthesizer.
// Set the function fields for the methods you need.
type Synthesizer struct {
	SynthesizeFn func(ctx context.Context, req voice.SpeechRequest) (string, error)
	AvailableFn  func() bool
	NameFn       func() string
}

// Synthesize delegates to SynthesizeFn.
func (s *Synthesizer) Synthesize(ctx context.Context, req voice.SpeechRequest) (string, error) {
	return s.SynthesizeFn(ctx, req)
}

// Available delegates to AvailableFn.
func (s *Synthesizer) Available() bool {
	return s.AvailableFn()
}

// Name delegates to NameFn.
func (s *Synthesizer) Name() string {
	return s.NameFn()
}
