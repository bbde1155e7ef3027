// Package plaintext renders markdown to plain speakable text using
// goldmark for parsing. Language models volunteer markdown structure even
// when asked for conversational replies; flattening it keeps the voice
// from reading asterisks, backticks and URLs aloud.
package plaintext

// Render parses markdown source and returns the text a voice should say.
// Emphasis, code spans and links keep their inner text; link targets,
// list markers and raw HTML are dropped; blocks are separated by blank
// lines. Code block contents are kept verbatim.
func Render(source string) string {
	if source == "" {
		return ""
	}
	var r textRenderer
	return r.render([]byte(source))
}
