// internal/common/config/config.go
package config

import (
	"fmt"
	"time"
)

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig          `mapstructure:"app"`
	LLM           LLMConfig          `mapstructure:"llm"`
	Trials        TrialsConfig       `mapstructure:"trials"`
	Batch         BatchConfig        `mapstructure:"batch"`
	Output        OutputConfig       `mapstructure:"output"`
	Cache         CacheConfig        `mapstructure:"cache"`
	Catalog       CatalogConfig      `mapstructure:"catalog"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Logging       LoggingConfig      `mapstructure:"logging"`
	Metrics       MetricsConfig      `mapstructure:"metrics"`
}

// --- Core App Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// LLMConfig holds settings for the completion-service client.
type LLMConfig struct {
	BaseURL      string  `mapstructure:"base_url"`
	APIKey       string  `mapstructure:"api_key"`
	DefaultModel string  `mapstructure:"default_model"`
	Temperature  float32 `mapstructure:"temperature"`
	Timeout      int     `mapstructure:"timeout"` // milliseconds, per request
}

// TrialsConfig holds the retry policy applied to each trial.
type TrialsConfig struct {
	MaxRetries int `mapstructure:"max_retries"`
	RetryDelay int `mapstructure:"retry_delay"` // milliseconds
}

// BatchConfig holds settings for sequencing a batch of trials.
type BatchConfig struct {
	RequestDelay int  `mapstructure:"request_delay"` // milliseconds between trials
	Buffered     bool `mapstructure:"buffered"`      // defer CSV flushes to close instead of per record
}

func (t TrialsConfig) RetryDelayDuration() time.Duration {
	return time.Duration(t.RetryDelay) * time.Millisecond
}

func (b BatchConfig) RequestDelayDuration() time.Duration {
	return time.Duration(b.RequestDelay) * time.Millisecond
}

// OutputConfig selects where result records go.
type OutputConfig struct {
	Dir      string         `mapstructure:"dir"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	Elastic  ElasticConfig  `mapstructure:"elasticsearch"`
}

type PostgresConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Database string `mapstructure:"database"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Table    string `mapstructure:"table"`
	SSLMode  string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticConfig struct {
	Enabled   bool     `mapstructure:"enabled"`
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	Index     string   `mapstructure:"index"`
}

// CacheConfig controls the optional Redis response cache.
type CacheConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TTL      int    `mapstructure:"ttl"` // seconds
}

func (c CacheConfig) TTLDuration() time.Duration {
	return time.Duration(c.TTL) * time.Second
}

// CatalogConfig points at an optional JSON parameter catalog that extends or
// overrides the built-in configuration space.
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// NotificationConfig holds settings for batch-completion notifications.
type NotificationConfig struct {
	AWS struct {
		Region string `mapstructure:"region"`
		SES    struct {
			Enabled   bool   `mapstructure:"enabled"`
			FromEmail string `mapstructure:"from_email"`
			ToEmail   string `mapstructure:"to_email"`
		} `mapstructure:"ses"`
		SNS struct {
			Enabled     bool   `mapstructure:"enabled"`
			PhoneNumber string `mapstructure:"phone_number"`
		} `mapstructure:"sns"`
	} `mapstructure:"aws"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type MetricsConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	Address        string `mapstructure:"address"`         // promhttp listen address, e.g. ":8080"
	JaegerEndpoint string `mapstructure:"jaeger_endpoint"` // empty disables tracing
}
