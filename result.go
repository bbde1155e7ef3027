package voice

// Status is the overall tag of a pipeline result.
type Status string

const (
	// StatusSuccess: transcript, reply and audio were all produced.
	StatusSuccess Status = "success"
	// StatusPartialSuccess: text succeeded but speech synthesis did not.
	StatusPartialSuccess Status = "partial_success"
	// StatusError: a required stage failed entirely.
	StatusError Status = "error"
)

// Result is the assembled end-of-request payload of one pipeline run.
// Code is the HTTP-equivalent status: 200 full success, 206 degraded
// audio, 503 a required stage failed, 500 unexpected internal error.
// Reason and Fallback are zero on full success. Every result carries the
// session id and the message count observed when it was assembled, even
// on error paths.
type Result struct {
	Status       Status
	Code         int
	SessionID    string
	Transcript   string
	Reply        string
	AudioURL     string // empty when no audio was produced
	SpeechFailed bool   // true on the partial-success path
	Reason       Reason
	Fallback     string
	MessageCount int
}
