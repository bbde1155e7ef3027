package voice

// Clip is a short piece of synthesized audio hosted by this process.
// Clips exist for providers that return raw bytes instead of a hosted URL;
// they are volatile and live only for the process lifetime.
type Clip struct {
	ID          string
	Data        []byte
	ContentType string
}

// ClipStore holds synthesized audio clips for serving.
type ClipStore interface {
	// Put stores the audio bytes under a fresh opaque id.
	Put(data []byte, contentType string) (Clip, error)

	// Get returns the clip with the given id. The bool is false when no
	// such clip exists.
	Get(id string) (Clip, bool)
}
