// internal/llm/config.go
package llm

import "time"

const (
	// DefaultBaseURL targets OpenRouter's OpenAI-compatible endpoint.
	DefaultBaseURL = "https://openrouter.ai/api/v1"
	// DefaultModel is used when neither the run nor the request names one.
	DefaultModel = "openai/gpt-4o"
	// DefaultTemperature is fixed across a study so that response variance
	// comes from the sampled model, not from run-to-run drift.
	DefaultTemperature = 0.7
	// DefaultTimeout bounds one completion round trip.
	DefaultTimeout = 120 * time.Second
)

// ClientConfig holds the settings for one completion endpoint.
type ClientConfig struct {
	BaseURL      string
	APIKey       string
	DefaultModel string
	Temperature  float32
	Timeout      time.Duration
}

func (c *ClientConfig) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.DefaultModel == "" {
		c.DefaultModel = DefaultModel
	}
	if c.Temperature == 0 {
		c.Temperature = DefaultTemperature
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
}
