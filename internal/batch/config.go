// internal/batch/config.go
package batch

import "time"

// DefaultRequestDelay spaces consecutive completion requests. The upstream
// service tolerates roughly two requests per second per key.
const DefaultRequestDelay = 500 * time.Millisecond

// Config bounds one batch run.
type Config struct {
	Model        string
	RequestDelay time.Duration
	// RunID labels every persisted row of the run. Generated when empty.
	RunID string
}

func (c *Config) applyDefaults() {
	if c.RequestDelay < 0 {
		c.RequestDelay = 0
	} else if c.RequestDelay == 0 {
		c.RequestDelay = DefaultRequestDelay
	}
}
