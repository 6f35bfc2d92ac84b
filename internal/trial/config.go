// internal/trial/config.go
package trial

import "time"

const (
	// DefaultMaxRetries is the total number of completion attempts per trial.
	DefaultMaxRetries = 3
	// DefaultRetryDelay is the fixed pause between attempts. The upstream
	// service rate-limits aggressively enough that a fixed short pause works
	// as well as backoff at this request volume.
	DefaultRetryDelay = 2 * time.Second
)

// Config bounds the retry behavior of one executor.
type Config struct {
	MaxRetries int
	RetryDelay time.Duration
	// StrictExtraction, when set, only accepts completions that are exactly
	// two numeric tokens; prose answers count as extraction misses.
	StrictExtraction bool
}

func (c *Config) applyDefaults() {
	if c.MaxRetries <= 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = DefaultRetryDelay
	}
}
