// Package gemini implements [voice.Responder] for the Google Gemini API.
//
// It wraps the google.golang.org/genai SDK with a single non-streaming
// GenerateContent call per reply. Thinking is disabled: replies feed a
// speech synthesizer, so latency matters more than deliberation.
package gemini

const defaultModel = "gemini-2.0-flash-exp"
