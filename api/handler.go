// Package api provides HTTP handlers for the voice agent API.
package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	voice "github.com/eathindhar/murf-voice-agents"
	apijson "github.com/eathindhar/murf-voice-agents/json"
	"github.com/go-chi/chi/v5"
)

// welcomeMessage greets anyone probing the root endpoint.
const welcomeMessage = "Welcome to Murf AI's 30 Days of Voice Agents Challenge!"

const (
	// maxAudioBytes caps uploaded recordings at 32 MiB.
	maxAudioBytes = 32 << 20

	// audioField is the multipart form field carrying the recording.
	audioField = "audio_file"
)

// Provider roles as reported by the health endpoint.
const (
	RoleSTT       = "stt"
	RoleLLM       = "llm"
	RoleTTS       = "tts"
	RoleBackupTTS = "fallback_tts"
)

// ProviderStatus names one provider for health reporting.
type ProviderStatus struct {
	Role       string
	Name       string
	Configured bool
}

// Handler serves the voice agent HTTP API.
type Handler struct {
	agent    voice.Agent
	sessions voice.SessionStore
	clips    voice.ClipStore
	statuses []ProviderStatus
	started  time.Time
}

// NewHandler creates a Handler over the agent and its stores.
func NewHandler(agent voice.Agent, sessions voice.SessionStore, clips voice.ClipStore, statuses []ProviderStatus) *Handler {
	return &Handler{
		agent:    agent,
		sessions: sessions,
		clips:    clips,
		statuses: statuses,
		started:  time.Now(),
	}
}

// RegisterRoutes mounts all endpoints on r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.index)
	r.Get("/health", h.health)
	r.Post("/agent/chat/{sessionID}", h.chat)
	r.Get("/agent/history/{sessionID}", h.history)
	r.Delete("/agent/history/{sessionID}", h.clearHistory)
	r.Get("/agent/sessions", h.listSessions)
	r.Post("/generate-audio", h.generateAudio)
	r.Get("/audio/{clipID}", h.clip)
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, apijson.WelcomeResponse{Message: welcomeMessage})
}

// chat runs one conversation turn from an uploaded recording. The status
// code mirrors the pipeline result: 200 full success, 206 text without
// audio, 503 a required stage failed, 500 something unanticipated.
func (h *Handler) chat(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	audio, ok := h.readAudio(w, r, sessionID)
	if !ok {
		return
	}
	res := h.agent.Converse(r.Context(), sessionID, audio)
	JSON(w, res.Code, apijson.ChatBody(res))
}

// readAudio pulls the audio_file part out of a multipart upload. On
// failure it writes the 400 response itself and reports false.
func (h *Handler) readAudio(w http.ResponseWriter, r *http.Request, sessionID string) ([]byte, bool) {
	if err := r.ParseMultipartForm(maxAudioBytes); err != nil {
		JSON(w, http.StatusBadRequest,
			apijson.BadRequestBody("invalid multipart form", sessionID, h.messageCount(sessionID)))
		return nil, false
	}
	file, _, err := r.FormFile(audioField)
	if err != nil {
		JSON(w, http.StatusBadRequest,
			apijson.BadRequestBody("missing audio_file upload", sessionID, h.messageCount(sessionID)))
		return nil, false
	}
	defer file.Close()
	audio, err := io.ReadAll(file)
	if err != nil {
		JSON(w, http.StatusBadRequest,
			apijson.BadRequestBody("unreadable audio_file upload", sessionID, h.messageCount(sessionID)))
		return nil, false
	}
	return audio, true
}

func (h *Handler) messageCount(sessionID string) int {
	msgs, _ := h.sessions.History(sessionID)
	return len(msgs)
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	msgs, known := h.sessions.History(sessionID)
	JSON(w, http.StatusOK, apijson.HistoryBody(sessionID, msgs, known))
}

func (h *Handler) clearHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	h.sessions.Clear(sessionID)
	JSON(w, http.StatusOK, apijson.ClearBody(sessionID))
}

func (h *Handler) listSessions(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, apijson.SessionsBody(h.sessions.Sessions()))
}

// generateAudio synthesizes caller text directly, outside any session.
func (h *Handler) generateAudio(w http.ResponseWriter, r *http.Request) {
	var req apijson.GenerateAudioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSON(w, http.StatusBadRequest,
			apijson.SpeechErrorBody(voice.ReasonGeneralError, voice.ReasonGeneralError.FallbackMessage()))
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		JSON(w, http.StatusBadRequest,
			apijson.SpeechErrorBody(voice.ReasonGeneralError, voice.ReasonGeneralError.FallbackMessage()))
		return
	}

	switch out := h.agent.Speak(r.Context(), voice.SpeechRequest{Text: req.Text, Voice: req.VoiceID}).(type) {
	case voice.Success:
		JSON(w, http.StatusOK, apijson.AudioBody(out.Value))
	case voice.Degraded:
		JSON(w, http.StatusServiceUnavailable, apijson.SpeechErrorBody(out.Reason, out.Fallback))
	case voice.Fatal:
		JSON(w, http.StatusServiceUnavailable, apijson.SpeechErrorBody(out.Reason, out.Fallback))
	}
}

// clip serves locally stored audio produced by the backup synthesizer.
func (h *Handler) clip(w http.ResponseWriter, r *http.Request) {
	clip, ok := h.clips.Get(chi.URLParam(r, "clipID"))
	if !ok {
		Error(w, http.StatusNotFound, "no such clip")
		return
	}
	w.Header().Set("Content-Type", clip.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(clip.Data)))
	_, _ = w.Write(clip.Data)
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}
