package voice

import "errors"

// Sentinel errors for common failure modes.
var (
	// ErrNotConfigured indicates a provider call was made without the
	// credentials the provider requires. Stages short-circuit before
	// calling an unavailable provider, so seeing this error usually means
	// a provider was invoked directly.
	ErrNotConfigured = errors.New("provider not configured")
)
