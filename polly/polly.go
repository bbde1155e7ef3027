// Package polly implements [voice.Synthesizer] over Amazon Polly, used as
// a backup voice when the primary synthesizer cannot deliver.
//
// Polly returns raw audio bytes rather than a hosted URL, so rendered
// speech is parked in a [voice.ClipStore] and addressed through this
// server's own /audio/{id} route.
package polly

const (
	defaultVoice  = "Joanna"
	defaultRegion = "us-east-1"
	contentType   = "audio/mpeg"
	audioRoute    = "/audio/"
)
