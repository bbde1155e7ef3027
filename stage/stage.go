// Package stage wraps the pipeline's provider calls in a shared retry
// policy and classifies every failure mode as a voice.Outcome. Each stage
// answers the same three questions: is the provider configured, did an
// attempt produce a usable value within its time budget, and if not, which
// fallback does the caller substitute.
package stage

import (
	"context"
	"log/slog"
	"strings"
	"time"

	voice "github.com/eathindhar/murf-voice-agents"
)

const (
	// DefaultMaxRetries is the number of additional attempts after the
	// first one fails.
	DefaultMaxRetries = 2

	// DefaultTimeout bounds each individual attempt, not the stage as a
	// whole.
	DefaultTimeout = 30 * time.Second
)

// Option configures a stage.
type Option func(*runner)

// WithMaxRetries sets how many additional attempts follow a failed first
// attempt. Zero disables retries.
func WithMaxRetries(n int) Option {
	return func(r *runner) { r.retries = n }
}

// WithTimeout bounds each individual attempt.
func WithTimeout(d time.Duration) Option {
	return func(r *runner) { r.timeout = d }
}

// WithLogger sets the logger for attempt-level failures. By default they
// are discarded.
func WithLogger(logger *slog.Logger) Option {
	return func(r *runner) { r.logger = logger }
}

// runner is the retry policy shared by all stages. Providers are probed
// for availability before the first attempt, so a missing credential never
// turns into a network call. Errors and blank values consume attempts
// until the budget runs out; blankReason, when set, short-circuits a blank
// value into a terminal outcome instead, for stages where retrying cannot
// change the answer.
type runner struct {
	name        string
	exhausted   voice.Reason // classification when the attempt budget runs out
	blankReason voice.Reason // immediate classification of a blank value, if set
	degrade     bool         // terminal outcomes are Degraded instead of Fatal
	retries     int
	timeout     time.Duration
	available   func() bool
	logger      *slog.Logger
}

func newRunner(name string, exhausted voice.Reason, available func() bool, opts []Option) runner {
	r := runner{
		name:      name,
		exhausted: exhausted,
		retries:   DefaultMaxRetries,
		timeout:   DefaultTimeout,
		available: available,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// do runs call under the retry policy and classifies what came back.
func (r *runner) do(ctx context.Context, call func(context.Context) (string, error)) voice.Outcome {
	if !r.available() {
		return r.terminal(voice.ReasonAPIUnavailable)
	}
	attempts := r.retries + 1
	for attempt := 1; attempt <= attempts; attempt++ {
		value, err := r.attempt(ctx, call)
		if err != nil {
			r.logger.Warn("stage attempt failed",
				"stage", r.name,
				"attempt", attempt,
				"attempts", attempts,
				"error", err)
			if ctx.Err() != nil {
				// The request itself is gone; further attempts
				// cannot succeed.
				break
			}
			continue
		}
		if strings.TrimSpace(value) == "" {
			if r.blankReason != "" {
				return r.terminal(r.blankReason)
			}
			r.logger.Warn("stage produced a blank value",
				"stage", r.name,
				"attempt", attempt,
				"attempts", attempts)
			continue
		}
		return voice.Success{Value: value}
	}
	return r.terminal(r.exhausted)
}

// attempt runs a single call under its own deadline.
func (r *runner) attempt(ctx context.Context, call func(context.Context) (string, error)) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return call(ctx)
}

// terminal builds the stage's non-success outcome for reason, paired with
// the catalog text the user sees in its place.
func (r *runner) terminal(reason voice.Reason) voice.Outcome {
	if r.degrade {
		return voice.Degraded{Reason: reason, Fallback: reason.FallbackMessage()}
	}
	return voice.Fatal{Reason: reason, Fallback: reason.FallbackMessage()}
}
