package voice

// Message is one turn of a conversation. Messages are immutable once
// created: sessions grow by appending, never by editing.
type Message struct {
	Role    Role
	Content string
}
