package assemblyai_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	voice "github.com/eathindhar/murf-voice-agents"
	"github.com/eathindhar/murf-voice-agents/assemblyai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Transcribe(t *testing.T) {
	t.Parallel()

	polls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "sk-test", r.Header.Get("Authorization"))
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v2/upload":
			body, _ := io.ReadAll(r.Body)
			assert.Equal(t, []byte("RIFF-audio-bytes"), body)
			assert.Equal(t, "application/octet-stream", r.Header.Get("Content-Type"))
			_ = json.NewEncoder(w).Encode(map[string]string{"upload_url": "https://cdn.assemblyai.com/upload/abc"})
		case r.Method == http.MethodPost && r.URL.Path == "/v2/transcript":
			var req map[string]string
			_ = json.NewDecoder(r.Body).Decode(&req)
			assert.Equal(t, "https://cdn.assemblyai.com/upload/abc", req["audio_url"])
			_ = json.NewEncoder(w).Encode(map[string]string{"id": "t-1", "status": "queued"})
		case r.Method == http.MethodGet && r.URL.Path == "/v2/transcript/t-1":
			polls++
			if polls == 1 {
				_ = json.NewEncoder(w).Encode(map[string]any{"id": "t-1", "status": "processing"})
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"id":         "t-1",
				"status":     "completed",
				"text":       "turn on the lights",
				"confidence": 0.93,
			})
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	client := assemblyai.New("sk-test",
		assemblyai.WithBaseURL(srv.URL),
		assemblyai.WithPollInterval(time.Millisecond))

	got, err := client.Transcribe(context.Background(), []byte("RIFF-audio-bytes"))
	require.NoError(t, err)
	assert.Equal(t, voice.Transcript{Text: "turn on the lights", Confidence: 0.93}, got)
	assert.Equal(t, 2, polls, "polling continues until the job completes")
}

func TestClient_Transcribe_Silence(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/v2/upload":
			_ = json.NewEncoder(w).Encode(map[string]string{"upload_url": "https://cdn.assemblyai.com/upload/abc"})
		case r.Method == http.MethodPost && r.URL.Path == "/v2/transcript":
			_ = json.NewEncoder(w).Encode(map[string]string{"id": "t-1", "status": "queued"})
		default:
			_ = json.NewEncoder(w).Encode(map[string]any{"id": "t-1", "status": "completed", "text": nil})
		}
	}))
	defer srv.Close()

	client := assemblyai.New("sk-test",
		assemblyai.WithBaseURL(srv.URL),
		assemblyai.WithPollInterval(time.Millisecond))

	got, err := client.Transcribe(context.Background(), []byte("silence"))
	require.NoError(t, err, "no speech is a valid result, not a failure")
	assert.Equal(t, voice.Transcript{}, got)
}

func TestClient_Transcribe_JobError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/v2/upload":
			_ = json.NewEncoder(w).Encode(map[string]string{"upload_url": "https://cdn.assemblyai.com/upload/abc"})
		case r.Method == http.MethodPost && r.URL.Path == "/v2/transcript":
			_ = json.NewEncoder(w).Encode(map[string]string{"id": "t-1", "status": "queued"})
		default:
			_ = json.NewEncoder(w).Encode(map[string]any{
				"id":     "t-1",
				"status": "error",
				"error":  "Audio duration is too short",
			})
		}
	}))
	defer srv.Close()

	client := assemblyai.New("sk-test",
		assemblyai.WithBaseURL(srv.URL),
		assemblyai.WithPollInterval(time.Millisecond))

	_, err := client.Transcribe(context.Background(), []byte("tiny"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Audio duration is too short")
}

func TestClient_Transcribe_UploadRejected(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v2/upload", r.URL.Path, "nothing past the upload should be attempted")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid api key"})
	}))
	defer srv.Close()

	client := assemblyai.New("sk-bad", assemblyai.WithBaseURL(srv.URL))

	_, err := client.Transcribe(context.Background(), []byte("RIFF"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid api key")
}

func TestClient_NotConfigured(t *testing.T) {
	t.Parallel()

	client := assemblyai.New("")
	assert.False(t, client.Available())
	assert.Equal(t, "assemblyai", client.Name())

	_, err := client.Transcribe(context.Background(), []byte("RIFF"))
	assert.ErrorIs(t, err, voice.ErrNotConfigured)

	assert.True(t, assemblyai.New("sk-test").Available())
}
