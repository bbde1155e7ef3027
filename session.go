package voice

// SessionStore holds per-session ordered message history. Sessions are
// identified by opaque caller-supplied keys and created lazily on first
// append; a key that was never appended to simply means "new session".
// Implementations must be safe for concurrent use: individual appends are
// atomic and never lost, though no cross-request ordering is promised
// beyond appends completing in some total order.
type SessionStore interface {
	// History returns a snapshot copy of the session's messages. The bool
	// is false when the session has never been written to. History never
	// creates state.
	History(sessionID string) ([]Message, bool)

	// Append adds a message to the session, creating it if needed, and
	// returns the resulting message count.
	Append(sessionID string, msg Message) int

	// Clear removes the session's history. Clearing an absent session is
	// a no-op.
	Clear(sessionID string)

	// Sessions returns summaries of all known sessions, ordered by id.
	Sessions() []SessionSummary
}

// SessionSummary describes one session for listing purposes.
type SessionSummary struct {
	SessionID          string
	MessageCount       int
	LastMessagePreview string
}
