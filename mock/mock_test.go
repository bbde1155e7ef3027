package mock_test

import (
	"context"
	"errors"
	"testing"

	voice "github.com/eathindhar/murf-voice-agents"
	"github.com/eathindhar/murf-voice-agents/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscriber_Transcribe(t *testing.T) {
	t.Parallel()
	t.Run("delegates to TranscribeFn", func(t *testing.T) {
		t.Parallel()
		want := voice.Transcript{Text: "hello", Confidence: 0.98}
		tr := mock.Transcriber{
			TranscribeFn: func(ctx context.Context, audio []byte) (voice.Transcript, error) {
				return want, nil
			},
		}
		got, err := tr.Transcribe(context.Background(), []byte("wav"))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("returns error", func(t *testing.T) {
		t.Parallel()
		wantErr := errors.New("api error")
		tr := mock.Transcriber{
			TranscribeFn: func(ctx context.Context, audio []byte) (voice.Transcript, error) {
				return voice.Transcript{}, wantErr
			},
		}
		_, err := tr.Transcribe(context.Background(), nil)
		assert.ErrorIs(t, err, wantErr)
	})

	t.Run("panics when TranscribeFn not set", func(t *testing.T) {
		t.Parallel()
		tr := mock.Transcriber{}
		assert.Panics(t, func() {
			_, _ = tr.Transcribe(context.Background(), nil)
		})
	})
}

func TestResponder_Reply(t *testing.T) {
	t.Parallel()
	r := mock.Responder{
		ReplyFn: func(ctx context.Context, prompt string) (string, error) {
			return "reply to " + prompt, nil
		},
	}
	got, err := r.Reply(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "reply to hi", got)
}

func TestSynthesizer_Synthesize(t *testing.T) {
	t.Parallel()
	s := mock.Synthesizer{
		SynthesizeFn: func(ctx context.Context, req voice.SpeechRequest) (string, error) {
			return "https://audio.example/" + req.Voice, nil
		},
	}
	got, err := s.Synthesize(context.Background(), voice.SpeechRequest{Text: "hi", Voice: "natalie"})
	require.NoError(t, err)
	assert.Equal(t, "https://audio.example/natalie", got)
}

func TestSessionStore_History(t *testing.T) {
	t.Parallel()
	want := []voice.Message{{Role: voice.RoleUser, Content: "hi"}}
	s := mock.SessionStore{
		HistoryFn: func(sessionID string) ([]voice.Message, bool) {
			return want, true
		},
	}
	got, ok := s.History("abc")
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestAgent_Converse(t *testing.T) {
	t.Parallel()
	want := voice.Result{Status: voice.StatusSuccess, SessionID: "abc"}
	a := mock.Agent{
		ConverseFn: func(ctx context.Context, sessionID string, audio []byte) voice.Result {
			return want
		},
	}
	assert.Equal(t, want, a.Converse(context.Background(), "abc", nil))
}
