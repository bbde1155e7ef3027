package memory_test

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	voice "github.com/eathindhar/murf-voice-agents"
	"github.com/eathindhar/murf-voice-agents/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore_HistoryUnknownSession(t *testing.T) {
	t.Parallel()

	store := memory.NewSessionStore()

	// Reading an unknown session twice returns the same empty result and
	// creates no visible state.
	for i := 0; i < 2; i++ {
		msgs, ok := store.History("never-used")
		assert.False(t, ok)
		assert.Empty(t, msgs)
	}
	assert.Empty(t, store.Sessions())
}

func TestSessionStore_AppendCounts(t *testing.T) {
	t.Parallel()

	store := memory.NewSessionStore()

	assert.Equal(t, 1, store.Append("s1", voice.Message{Role: voice.RoleUser, Content: "hi"}))
	assert.Equal(t, 2, store.Append("s1", voice.Message{Role: voice.RoleAssistant, Content: "hello"}))
	assert.Equal(t, 1, store.Append("s2", voice.Message{Role: voice.RoleUser, Content: "other"}))

	msgs, ok := store.History("s1")
	require.True(t, ok)
	require.Len(t, msgs, 2)
	assert.Equal(t, voice.RoleUser, msgs[0].Role)
	assert.Equal(t, "hi", msgs[0].Content)
	assert.Equal(t, voice.RoleAssistant, msgs[1].Role)
}

func TestSessionStore_HistoryIsSnapshot(t *testing.T) {
	t.Parallel()

	store := memory.NewSessionStore()
	store.Append("s1", voice.Message{Role: voice.RoleUser, Content: "original"})

	msgs, ok := store.History("s1")
	require.True(t, ok)
	msgs[0].Content = "mutated"

	fresh, ok := store.History("s1")
	require.True(t, ok)
	assert.Equal(t, "original", fresh[0].Content)
}

func TestSessionStore_Clear(t *testing.T) {
	t.Parallel()

	store := memory.NewSessionStore()

	// Clearing a session that never existed must not panic, and the
	// session stays unknown afterwards.
	store.Clear("ghost")
	_, ok := store.History("ghost")
	assert.False(t, ok)

	store.Append("s1", voice.Message{Role: voice.RoleUser, Content: "hi"})
	store.Clear("s1")
	_, ok = store.History("s1")
	assert.False(t, ok)
}

func TestSessionStore_Sessions(t *testing.T) {
	t.Parallel()

	store := memory.NewSessionStore()
	store.Append("beta", voice.Message{Role: voice.RoleUser, Content: "one"})
	store.Append("beta", voice.Message{Role: voice.RoleAssistant, Content: "two"})
	store.Append("alpha", voice.Message{Role: voice.RoleUser, Content: "solo"})

	got := store.Sessions()
	require.Len(t, got, 2)
	assert.Equal(t, "alpha", got[0].SessionID)
	assert.Equal(t, 1, got[0].MessageCount)
	assert.Equal(t, "solo", got[0].LastMessagePreview)
	assert.Equal(t, "beta", got[1].SessionID)
	assert.Equal(t, 2, got[1].MessageCount)
	assert.Equal(t, "two", got[1].LastMessagePreview)
}

func TestSessionStore_PreviewTruncation(t *testing.T) {
	t.Parallel()

	store := memory.NewSessionStore()

	t.Run("long ascii", func(t *testing.T) {
		t.Parallel()
		store.Append("long", voice.Message{Role: voice.RoleUser, Content: strings.Repeat("a", 80)})
		got := store.Sessions()
		var preview string
		for _, s := range got {
			if s.SessionID == "long" {
				preview = s.LastMessagePreview
			}
		}
		assert.Equal(t, strings.Repeat("a", 50)+"...", preview)
	})

	t.Run("graphemes not split", func(t *testing.T) {
		t.Parallel()
		// 60 four-byte emoji: a byte- or rune-based cut could land inside
		// a cluster; a grapheme-based cut cannot.
		store.Append("emoji", voice.Message{Role: voice.RoleUser, Content: strings.Repeat("👍", 60)})
		got := store.Sessions()
		var preview string
		for _, s := range got {
			if s.SessionID == "emoji" {
				preview = s.LastMessagePreview
			}
		}
		assert.Equal(t, strings.Repeat("👍", 50)+"...", preview)
	})
}

func TestSessionStore_ConcurrentAppends(t *testing.T) {
	t.Parallel()

	store := memory.NewSessionStore()

	const workers = 8
	const perWorker = 25

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				store.Append("shared", voice.Message{
					Role:    voice.RoleUser,
					Content: fmt.Sprintf("w%d-%d", w, i),
				})
			}
		}(w)
	}
	wg.Wait()

	// No append may be lost.
	msgs, ok := store.History("shared")
	require.True(t, ok)
	assert.Len(t, msgs, workers*perWorker)
}
