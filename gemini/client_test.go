package gemini_test

import (
	"context"
	"testing"

	voice "github.com/eathindhar/murf-voice-agents"
	"github.com/eathindhar/murf-voice-agents/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_NotConfigured(t *testing.T) {
	t.Parallel()

	c, err := gemini.New(context.Background(), "")
	require.NoError(t, err, "a missing key degrades the client, it does not fail construction")
	assert.False(t, c.Available())
	assert.Equal(t, "gemini", c.Name())

	_, err = c.Reply(context.Background(), "hello")
	assert.ErrorIs(t, err, voice.ErrNotConfigured)
}

func TestClient_Available(t *testing.T) {
	t.Parallel()

	c, err := gemini.New(context.Background(), "test-key")
	require.NoError(t, err)
	assert.True(t, c.Available())
}
