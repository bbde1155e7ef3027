package memory

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"

	voice "github.com/eathindhar/murf-voice-agents"
)

// Interface compliance check.
var _ voice.ClipStore = (*ClipStore)(nil)

// maxClips bounds how many fallback audio clips are retained; the oldest
// clips are evicted first. Clips only exist on degraded paths, so the cap
// is generous for the traffic it sees.
const maxClips = 256

// ClipStore is a mutex-guarded in-memory voice.ClipStore with FIFO
// eviction.
type ClipStore struct {
	mu    sync.Mutex
	clips map[string]voice.Clip
	order []string
}

// NewClipStore creates an empty ClipStore.
func NewClipStore() *ClipStore {
	return &ClipStore{clips: make(map[string]voice.Clip)}
}

// Put stores the audio bytes under a fresh random id and returns the
// stored clip. The data is copied, so callers may reuse their buffer.
func (s *ClipStore) Put(data []byte, contentType string) (voice.Clip, error) {
	id, err := newClipID()
	if err != nil {
		return voice.Clip{}, fmt.Errorf("memory: mint clip id: %w", err)
	}
	clip := voice.Clip{
		ID:          id,
		Data:        append([]byte(nil), data...),
		ContentType: contentType,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.order) >= maxClips {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.clips, oldest)
	}
	s.clips[id] = clip
	s.order = append(s.order, id)
	return clip, nil
}

// Get returns the clip with the given id.
func (s *ClipStore) Get(id string) (voice.Clip, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	clip, ok := s.clips[id]
	return clip, ok
}

func newClipID() (string, error) {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
