// Package memory provides in-memory implementations of the voice stores.
// All state is volatile: it lives for the process lifetime and is never
// persisted, by design.
package memory

import (
	"sort"
	"strings"
	"sync"

	voice "github.com/eathindhar/murf-voice-agents"
	"github.com/rivo/uniseg"
)

// Interface compliance check.
var _ voice.SessionStore = (*SessionStore)(nil)

// previewLimit bounds last-message previews in session summaries, counted
// in grapheme clusters so multi-byte text is never split mid-character.
const previewLimit = 50

// SessionStore is a mutex-guarded in-memory voice.SessionStore. Sessions
// are created lazily on first append and never expire on their own.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string][]voice.Message
}

// NewSessionStore creates an empty SessionStore.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string][]voice.Message)}
}

// History returns a snapshot copy of the session's messages. It never
// creates state: asking for an unknown session any number of times leaves
// the store unchanged.
func (s *SessionStore) History(sessionID string) ([]voice.Message, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	msgs, ok := s.sessions[sessionID]
	if !ok {
		return nil, false
	}
	out := make([]voice.Message, len(msgs))
	copy(out, msgs)
	return out, true
}

// Append adds a message to the session, creating it if needed, and returns
// the new message count.
func (s *SessionStore) Append(sessionID string, msg voice.Message) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = append(s.sessions[sessionID], msg)
	return len(s.sessions[sessionID])
}

// Clear removes the session's history. Clearing an unknown session is a
// no-op.
func (s *SessionStore) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// Sessions returns summaries of all known sessions, ordered by id.
func (s *SessionStore) Sessions() []voice.SessionSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]voice.SessionSummary, 0, len(s.sessions))
	for id, msgs := range s.sessions {
		summary := voice.SessionSummary{
			SessionID:    id,
			MessageCount: len(msgs),
		}
		if len(msgs) > 0 {
			summary.LastMessagePreview = truncate(msgs[len(msgs)-1].Content, previewLimit)
		}
		out = append(out, summary)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SessionID < out[j].SessionID })
	return out
}

// truncate shortens s to at most limit grapheme clusters, appending an
// ellipsis when anything was cut.
func truncate(s string, limit int) string {
	if uniseg.GraphemeClusterCount(s) <= limit {
		return s
	}
	var b strings.Builder
	g := uniseg.NewGraphemes(s)
	for i := 0; i < limit && g.Next(); i++ {
		b.WriteString(g.Str())
	}
	return b.String() + "..."
}
