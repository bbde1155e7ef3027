// Package prompt formats conversation history into language-model prompts.
package prompt

import (
	"fmt"
	"strings"

	voice "github.com/eathindhar/murf-voice-agents"
)

// Window is how many trailing history messages are included in a prompt.
// Older turns are silently dropped, not summarized: a deliberate trade-off
// between context fidelity and cost/latency.
const Window = 6

const preamble = "You are a helpful AI assistant. Please provide clear, concise, and friendly responses. Keep your responses conversational and not too lengthy since they will be converted to speech."

// Format builds the prompt for one reply: the fixed preamble, the most
// recent Window messages of history, then the new user utterance. Format
// never fails; malformed history degrades to a minimal one-line prompt
// carrying only the new utterance.
func Format(history []voice.Message, newMessage string) string {
	if malformed(history) {
		return minimal(newMessage)
	}

	var b strings.Builder
	b.WriteString(preamble)
	b.WriteString("\n\n")

	if len(history) > 0 {
		b.WriteString("Previous conversation:\n")
		start := len(history) - Window
		if start < 0 {
			start = 0
		}
		for _, m := range history[start:] {
			if m.Role == voice.RoleUser {
				fmt.Fprintf(&b, "User: %s\n", m.Content)
			} else {
				fmt.Fprintf(&b, "Assistant: %s\n", m.Content)
			}
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "User: %s\n\nAssistant:", newMessage)
	return b.String()
}

func minimal(newMessage string) string {
	return fmt.Sprintf("User: %s\n\nAssistant:", newMessage)
}

func malformed(history []voice.Message) bool {
	for _, m := range history {
		if !m.Role.Valid() {
			return true
		}
	}
	return false
}
