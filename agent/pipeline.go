// Package agent orchestrates a conversation turn: audio in, transcript,
// generated reply and synthesized speech out, with per-session history in
// between. Stage failures turn into degraded or error results carrying
// catalog fallback text; they never escape as errors or panics.
package agent

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	voice "github.com/eathindhar/murf-voice-agents"
	"github.com/eathindhar/murf-voice-agents/plaintext"
	"github.com/eathindhar/murf-voice-agents/prompt"
	"github.com/eathindhar/murf-voice-agents/stage"
)

// Interface compliance check.
var _ voice.Agent = (*Pipeline)(nil)

// fallbackVoiceTimeout bounds the single-shot synthesis of fallback text
// on error paths.
const fallbackVoiceTimeout = 15 * time.Second

// Pipeline runs the three stages in order against a session store.
// Construction wires each provider into its stage; the raw synthesizers
// are kept as well for single-shot fallback voicing.
type Pipeline struct {
	transcription *stage.Transcription
	reply         *stage.Reply
	synthesis     *stage.Synthesis

	synth    voice.Synthesizer
	backup   voice.Synthesizer
	sessions voice.SessionStore
	logger   *slog.Logger

	stageOpts []stage.Option
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithBackupSynthesizer adds a second synthesizer consulted when voicing
// fallback text after the primary has failed. It gets one attempt, never a
// retry loop.
func WithBackupSynthesizer(s voice.Synthesizer) Option {
	return func(p *Pipeline) { p.backup = s }
}

// WithLogger sets the logger for turn-level events. Stages inherit it
// unless WithStageOptions overrides.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = logger }
}

// WithStageOptions passes options through to all three stages, for tuning
// retry budgets and attempt timeouts.
func WithStageOptions(opts ...stage.Option) Option {
	return func(p *Pipeline) { p.stageOpts = append(p.stageOpts, opts...) }
}

// New builds a Pipeline over the three providers and a session store.
func New(transcriber voice.Transcriber, responder voice.Responder, synthesizer voice.Synthesizer, sessions voice.SessionStore, opts ...Option) *Pipeline {
	p := &Pipeline{
		synth:    synthesizer,
		sessions: sessions,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	stageOpts := append([]stage.Option{stage.WithLogger(p.logger)}, p.stageOpts...)
	p.transcription = stage.NewTranscription(transcriber, stageOpts...)
	p.reply = stage.NewReply(responder, stageOpts...)
	p.synthesis = stage.NewSynthesis(synthesizer, stageOpts...)
	return p
}

// Converse runs one conversation turn. The user's words are recorded as
// soon as they are known, before the reply is attempted, so a failed reply
// still leaves them in the session. Nothing is recorded when transcription
// fails. The returned result always carries the session id and the message
// count as of assembly.
func (p *Pipeline) Converse(ctx context.Context, sessionID string, audio []byte) (res voice.Result) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("conversation panicked", "session_id", sessionID, "panic", r)
			res = p.abort(ctx, sessionID, voice.Fatal{
				Reason:   voice.ReasonGeneralError,
				Fallback: voice.ReasonGeneralError.FallbackMessage(),
			}, http.StatusInternalServerError)
		}
	}()

	var transcript string
	switch out := p.transcription.Run(ctx, audio).(type) {
	case voice.Success:
		transcript = out.Value
	case voice.Fatal:
		p.logger.Warn("transcription failed", "session_id", sessionID, "reason", out.Reason)
		return p.abort(ctx, sessionID, out, http.StatusServiceUnavailable)
	case voice.Degraded:
		return p.abort(ctx, sessionID, voice.Fatal(out), http.StatusServiceUnavailable)
	}

	// The prompt sees the session as it was before this turn; the user's
	// words join the record regardless of how the reply goes.
	history, _ := p.sessions.History(sessionID)
	p.sessions.Append(sessionID, voice.Message{Role: voice.RoleUser, Content: transcript})

	var reply string
	switch out := p.reply.Run(ctx, prompt.Format(history, transcript)).(type) {
	case voice.Success:
		reply = out.Value
	case voice.Fatal:
		p.logger.Warn("reply generation failed", "session_id", sessionID, "reason", out.Reason)
		return p.abort(ctx, sessionID, out, http.StatusServiceUnavailable)
	case voice.Degraded:
		return p.abort(ctx, sessionID, voice.Fatal(out), http.StatusServiceUnavailable)
	}
	count := p.sessions.Append(sessionID, voice.Message{Role: voice.RoleAssistant, Content: reply})

	res = voice.Result{
		Status:       voice.StatusSuccess,
		Code:         http.StatusOK,
		SessionID:    sessionID,
		Transcript:   transcript,
		Reply:        reply,
		MessageCount: count,
	}
	switch out := p.synthesis.Run(ctx, voice.SpeechRequest{Text: plaintext.Render(reply)}).(type) {
	case voice.Success:
		res.AudioURL = out.Value
	case voice.Degraded:
		p.logger.Warn("synthesis failed", "session_id", sessionID, "reason", out.Reason)
		res.Status = voice.StatusPartialSuccess
		res.Code = http.StatusPartialContent
		res.SpeechFailed = true
		res.Reason = out.Reason
		res.Fallback = out.Fallback
	case voice.Fatal:
		p.logger.Warn("synthesis failed", "session_id", sessionID, "reason", out.Reason)
		res.Status = voice.StatusPartialSuccess
		res.Code = http.StatusPartialContent
		res.SpeechFailed = true
		res.Reason = out.Reason
		res.Fallback = out.Fallback
	}
	p.logger.Info("turn completed",
		"session_id", sessionID,
		"status", res.Status,
		"message_count", res.MessageCount)
	return res
}

// Speak runs the synthesis stage directly, outside any conversation.
func (p *Pipeline) Speak(ctx context.Context, req voice.SpeechRequest) voice.Outcome {
	return p.synthesis.Run(ctx, req)
}

// abort assembles the error result for a turn the pipeline could not
// finish. The fallback text is voiced on a best-effort basis so error
// responses can still speak.
func (p *Pipeline) abort(ctx context.Context, sessionID string, f voice.Fatal, code int) voice.Result {
	count := 0
	if msgs, ok := p.sessions.History(sessionID); ok {
		count = len(msgs)
	}
	return voice.Result{
		Status:       voice.StatusError,
		Code:         code,
		SessionID:    sessionID,
		AudioURL:     p.speakFallback(ctx, f.Fallback),
		Reason:       f.Reason,
		Fallback:     f.Fallback,
		MessageCount: count,
	}
}

// speakFallback voices fallback text: one attempt on the primary
// synthesizer, then one on the backup. Failures leave the response silent
// rather than failing it further, including panics, since this runs inside
// the recovery path too.
func (p *Pipeline) speakFallback(ctx context.Context, text string) (url string) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("fallback synthesis panicked", "panic", r)
			url = ""
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, fallbackVoiceTimeout)
	defer cancel()

	req := voice.SpeechRequest{Text: text}
	for _, s := range []voice.Synthesizer{p.synth, p.backup} {
		if s == nil || !s.Available() {
			continue
		}
		u, err := s.Synthesize(ctx, req)
		if err != nil {
			p.logger.Warn("fallback synthesis failed", "provider", s.Name(), "error", err)
			continue
		}
		if u != "" {
			return u
		}
	}
	return ""
}
