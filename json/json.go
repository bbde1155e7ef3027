// Package json defines the wire formats of the HTTP API and builds them
// from domain values. Fallback-bearing bodies always carry both a machine
// error_type and the catalog fallback_message; audio_url is a pointer so
// "no audio" serializes as an explicit null rather than disappearing.
package json

import (
	voice "github.com/eathindhar/murf-voice-agents"
)

const (
	statusSuccess    = "success"
	statusError      = "error"
	statusCleared    = "cleared"
	statusNewSession = "new_session"
)

// ChatResponse is the body of a conversation turn that produced a reply:
// fully on 200, without audio on 206.
type ChatResponse struct {
	Status        string  `json:"status"`
	SessionID     string  `json:"session_id"`
	Transcription string  `json:"transcription"`
	AIResponse    string  `json:"ai_response"`
	AudioURL      *string `json:"audio_url"`
	MessageCount  int     `json:"message_count"`

	// Set only when speech synthesis failed.
	TTSFailed       bool   `json:"tts_failed,omitempty"`
	ErrorType       string `json:"error_type,omitempty"`
	FallbackMessage string `json:"fallback_message,omitempty"`
}

// PipelineError is the body of a conversation turn that produced no reply
// (503 or 500). AudioURL, when present, voices the fallback message.
type PipelineError struct {
	Status          string  `json:"status"`
	Error           string  `json:"error"`
	ErrorType       string  `json:"error_type"`
	FallbackMessage string  `json:"fallback_message"`
	AudioURL        *string `json:"audio_url,omitempty"`
	SessionID       string  `json:"session_id"`
	MessageCount    int     `json:"message_count"`
}

// ChatBody converts a pipeline result into its wire body.
func ChatBody(res voice.Result) any {
	if res.Status == voice.StatusError {
		return PipelineError{
			Status:          statusError,
			Error:           errorSummary(res.Reason),
			ErrorType:       string(res.Reason),
			FallbackMessage: res.Fallback,
			AudioURL:        optional(res.AudioURL),
			SessionID:       res.SessionID,
			MessageCount:    res.MessageCount,
		}
	}
	body := ChatResponse{
		Status:        string(res.Status),
		SessionID:     res.SessionID,
		Transcription: res.Transcript,
		AIResponse:    res.Reply,
		AudioURL:      optional(res.AudioURL),
		MessageCount:  res.MessageCount,
	}
	if res.SpeechFailed {
		body.TTSFailed = true
		body.ErrorType = string(res.Reason)
		body.FallbackMessage = res.Fallback
	}
	return body
}

// BadRequestBody builds the error body for a request the pipeline never
// saw: same shape as a pipeline failure, classified as a general error.
func BadRequestBody(summary, sessionID string, messageCount int) PipelineError {
	return PipelineError{
		Status:          statusError,
		Error:           summary,
		ErrorType:       string(voice.ReasonGeneralError),
		FallbackMessage: voice.ReasonGeneralError.FallbackMessage(),
		SessionID:       sessionID,
		MessageCount:    messageCount,
	}
}

// GenerateAudioRequest is the body accepted by the direct synthesis
// endpoint.
type GenerateAudioRequest struct {
	Text    string `json:"text"`
	VoiceID string `json:"voice_id"`
}

// AudioResponse is the body of a successful direct synthesis request.
type AudioResponse struct {
	Status   string `json:"status"`
	AudioURL string `json:"audio_url"`
}

// AudioBody builds the success body for a direct synthesis request.
func AudioBody(url string) AudioResponse {
	return AudioResponse{Status: statusSuccess, AudioURL: url}
}

// SpeechError is the body of a failed direct synthesis request.
type SpeechError struct {
	Status          string `json:"status"`
	Error           string `json:"error"`
	ErrorType       string `json:"error_type"`
	FallbackMessage string `json:"fallback_message"`
}

// SpeechErrorBody builds the error body for a failed direct synthesis
// request.
func SpeechErrorBody(reason voice.Reason, fallback string) SpeechError {
	return SpeechError{
		Status:          statusError,
		Error:           errorSummary(reason),
		ErrorType:       string(reason),
		FallbackMessage: fallback,
	}
}

// MessageDTO is one history entry on the wire.
type MessageDTO struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// HistoryResponse is the body of a history fetch. Status is "success" for
// a known session and "new_session" for an unknown one; unknown sessions
// answer with an empty history, never an error.
type HistoryResponse struct {
	Status       string       `json:"status"`
	SessionID    string       `json:"session_id"`
	MessageCount int          `json:"message_count"`
	History      []MessageDTO `json:"history"`
}

// HistoryBody builds the history response for a session. known reports
// whether the store had the session at all.
func HistoryBody(sessionID string, msgs []voice.Message, known bool) HistoryResponse {
	history := make([]MessageDTO, 0, len(msgs))
	for _, m := range msgs {
		history = append(history, MessageDTO{Role: string(m.Role), Content: m.Content})
	}
	status := statusSuccess
	if !known {
		status = statusNewSession
	}
	return HistoryResponse{
		Status:       status,
		SessionID:    sessionID,
		MessageCount: len(msgs),
		History:      history,
	}
}

// ClearResponse acknowledges a history delete, whether or not the session
// existed.
type ClearResponse struct {
	Status    string `json:"status"`
	SessionID string `json:"session_id"`
}

// ClearBody builds the delete acknowledgement for a session.
func ClearBody(sessionID string) ClearResponse {
	return ClearResponse{Status: statusCleared, SessionID: sessionID}
}

// SessionDTO summarizes one session in the sessions listing.
type SessionDTO struct {
	SessionID          string `json:"session_id"`
	MessageCount       int    `json:"message_count"`
	LastMessagePreview string `json:"last_message_preview,omitempty"`
}

// SessionsResponse lists all live sessions.
type SessionsResponse struct {
	Status   string       `json:"status"`
	Count    int          `json:"count"`
	Sessions []SessionDTO `json:"sessions"`
}

// SessionsBody builds the sessions listing.
func SessionsBody(summaries []voice.SessionSummary) SessionsResponse {
	sessions := make([]SessionDTO, 0, len(summaries))
	for _, s := range summaries {
		sessions = append(sessions, SessionDTO{
			SessionID:          s.SessionID,
			MessageCount:       s.MessageCount,
			LastMessagePreview: s.LastMessagePreview,
		})
	}
	return SessionsResponse{Status: statusSuccess, Count: len(sessions), Sessions: sessions}
}

// WelcomeResponse is the root endpoint body.
type WelcomeResponse struct {
	Message string `json:"message"`
}

// ProviderHealth reports one provider's configuration state.
type ProviderHealth struct {
	Name       string `json:"name"`
	Configured bool   `json:"configured"`
}

// SystemHealth carries host resource usage.
type SystemHealth struct {
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
}

// HealthResponse is the health endpoint body. Status is "ok" when every
// required provider is configured, "degraded" otherwise.
type HealthResponse struct {
	Status        string                    `json:"status"`
	Providers     map[string]ProviderHealth `json:"providers"`
	System        SystemHealth              `json:"system"`
	UptimeSeconds float64                   `json:"uptime_seconds"`
}

// errorSummary gives the short operator-facing summary for a failure
// reason; the user-facing wording lives in the fallback message.
func errorSummary(r voice.Reason) string {
	switch r {
	case voice.ReasonSTTError:
		return "transcription failed"
	case voice.ReasonEmptyTranscription:
		return "no speech detected"
	case voice.ReasonLLMError:
		return "reply generation failed"
	case voice.ReasonTTSError:
		return "speech synthesis failed"
	case voice.ReasonAPIUnavailable:
		return "required service not configured"
	default:
		return "internal server error"
	}
}

// optional returns nil for an empty string so the field serializes as an
// explicit JSON null.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
