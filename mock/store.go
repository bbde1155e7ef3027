package mock

import (
	voice "github.com/eathindhar/murf-voice-agents"
)

// Interface compliance checks.
var (
	_ voice.SessionStore = (*SessionStore)(nil)
	_ voice.ClipStore    = (*ClipStore)(nil)
)

// SessionStore is a test double for voice.SessionStore.
// Set the function fields for the methods you need.
type SessionStore struct {
	HistoryFn  func(sessionID string) ([]voice.Message, bool)
	AppendFn   func(sessionID string, msg voice.Message) int
	ClearFn    func(sessionID string)
	SessionsFn func() []voice.SessionSummary
}

// History delegates to HistoryFn.
func (s *SessionStore) History(sessionID string) ([]voice.Message, bool) {
	return s.HistoryFn(sessionID)
}

// Append delegates to AppendFn.
func (s *SessionStore) Append(sessionID string, msg voice.Message) int {
	return s.AppendFn(sessionID, msg)
}

// Clear delegates to ClearFn.
func (s *SessionStore) Clear(sessionID string) {
	s.ClearFn(sessionID)
}

// Sessions delegates to SessionsFn.
func (s *SessionStore) Sessions() []voice.SessionSummary {
	return s.SessionsFn()
}

// ClipStore is a test double for voice.ClipStore.
// Set the function fields for the methods you need.
type ClipStore struct {
	PutFn func(data []byte, contentType string) (voice.Clip, error)
	GetFn func(id string) (voice.Clip, bool)
}

// Put delegates to PutFn.
func (c *ClipStore) Put(data []byte, contentType string) (voice.Clip, error) {
	return c.PutFn(data, contentType)
}

// Get delegates to GetFn.
func (c *ClipStore) Get(id string) (voice.Clip, bool) {
	return c.GetFn(id)
}
