package murf_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	voice "github.com/eathindhar/murf-voice-agents"
	"github.com/eathindhar/murf-voice-agents/murf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Synthesize(t *testing.T) {
	t.Parallel()

	var captured []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = io.ReadAll(r.Body)

		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/speech/generate", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "test-api-key", r.Header.Get("Api-Key"))

		_ = json.NewEncoder(w).Encode(map[string]string{
			"audioFile": "https://murf.ai/user-upload/one-day/abc.mp3",
		})
	}))
	defer srv.Close()

	client := murf.New("test-api-key", murf.WithBaseURL(srv.URL))

	url, err := client.Synthesize(context.Background(), voice.SpeechRequest{Text: "Hello there!"})
	require.NoError(t, err)
	assert.Equal(t, "https://murf.ai/user-upload/one-day/abc.mp3", url)

	var body map[string]string
	require.NoError(t, json.Unmarshal(captured, &body))
	assert.Equal(t, "Hello there!", body["text"])
	assert.Equal(t, "en-US-natalie", body["voice_id"], "the default voice fills in when the request names none")
}

func TestClient_Synthesize_VoiceSelection(t *testing.T) {
	t.Parallel()

	var captured []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = io.ReadAll(r.Body)
		_ = json.NewEncoder(w).Encode(map[string]string{"audioFile": "https://murf.ai/a.mp3"})
	}))
	defer srv.Close()

	client := murf.New("test-api-key",
		murf.WithBaseURL(srv.URL),
		murf.WithVoice("en-UK-ruby"))

	_, err := client.Synthesize(context.Background(), voice.SpeechRequest{Text: "hi", Voice: "en-US-terrell"})
	require.NoError(t, err)

	var body map[string]string
	require.NoError(t, json.Unmarshal(captured, &body))
	assert.Equal(t, "en-US-terrell", body["voice_id"], "a request voice beats the configured default")
}

func TestClient_Synthesize_MissingAudioFile(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "processing"})
	}))
	defer srv.Close()

	client := murf.New("test-api-key", murf.WithBaseURL(srv.URL))

	_, err := client.Synthesize(context.Background(), voice.SpeechRequest{Text: "hi"})
	require.Error(t, err, "a 200 without a hosted URL is still a failure")
	assert.Contains(t, err.Error(), "audioFile")
}

func TestClient_Synthesize_APIError(t *testing.T) {
	t.Parallel()

	t.Run("structured error body", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"errorMessage": "Invalid voice_id"})
		}))
		defer srv.Close()

		_, err := murf.New("k", murf.WithBaseURL(srv.URL)).
			Synthesize(context.Background(), voice.SpeechRequest{Text: "hi"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid voice_id")
	})

	t.Run("opaque error body", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte("rate limited"))
		}))
		defer srv.Close()

		_, err := murf.New("k", murf.WithBaseURL(srv.URL)).
			Synthesize(context.Background(), voice.SpeechRequest{Text: "hi"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "HTTP 429")
		assert.Contains(t, err.Error(), "rate limited")
	})
}

func TestClient_NotConfigured(t *testing.T) {
	t.Parallel()

	client := murf.New("")
	assert.False(t, client.Available())
	assert.Equal(t, "murf", client.Name())

	_, err := client.Synthesize(context.Background(), voice.SpeechRequest{Text: "hi"})
	assert.ErrorIs(t, err, voice.ErrNotConfigured)

	assert.True(t, murf.New("k").Available())
}
