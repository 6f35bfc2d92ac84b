// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	// Base config
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like OPENROUTER_API_KEY
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// Environment-specific overrides, e.g. config.production.yaml
	envConfigFile := fmt.Sprintf("config.%s", env)
	viper.SetConfigName(envConfigFile)
	_ = viper.MergeInConfig() // ignore error if not found

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		val := v.Get(key)

		if strVal, ok := val.(string); ok {
			if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
				expanded := os.ExpandEnv(strVal)
				if expanded != strVal && expanded != "" {
					v.Set(key, expanded)
				}
			}
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "negotiation-experiments"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}
	if cfg.LLM.BaseURL == "" {
		cfg.LLM.BaseURL = "https://openrouter.ai/api/v1"
	}
	if cfg.LLM.DefaultModel == "" {
		cfg.LLM.DefaultModel = "openai/gpt-4o"
	}
	if cfg.LLM.Temperature == 0 {
		cfg.LLM.Temperature = 0.7
	}
	if cfg.LLM.Timeout <= 0 {
		cfg.LLM.Timeout = 120000
	}
	if cfg.Trials.MaxRetries <= 0 {
		cfg.Trials.MaxRetries = 3
	}
	if cfg.Trials.RetryDelay <= 0 {
		cfg.Trials.RetryDelay = 2000
	}
	if cfg.Batch.RequestDelay <= 0 {
		cfg.Batch.RequestDelay = 500
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "."
	}
	if cfg.Output.Postgres.Table == "" {
		cfg.Output.Postgres.Table = "experiment_results"
	}
	if cfg.Output.Postgres.SSLMode == "" {
		cfg.Output.Postgres.SSLMode = "disable"
	}
	if cfg.Output.Elastic.Index == "" {
		cfg.Output.Elastic.Index = "experiment-results"
	}
	if cfg.Cache.TTL <= 0 {
		cfg.Cache.TTL = 86400
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
	if cfg.Metrics.Address == "" {
		cfg.Metrics.Address = ":8080"
	}
}

// Direct override if config values are still empty after expansion
func overrideEmptyConfig(cfg *Config) {
	if cfg.LLM.APIKey == "" {
		if val := os.Getenv("OPENROUTER_API_KEY"); val != "" {
			cfg.LLM.APIKey = val
		}
	}
	if cfg.Output.Postgres.User == "" {
		if val := os.Getenv("DB_USER"); val != "" {
			cfg.Output.Postgres.User = val
		}
	}
	if cfg.Output.Postgres.Password == "" {
		if val := os.Getenv("DB_PASSWORD"); val != "" {
			cfg.Output.Postgres.Password = val
		}
	}
	if cfg.Cache.Address == "" {
		if val := os.Getenv("REDIS_ADDRESS"); val != "" {
			cfg.Cache.Address = val
		}
	}
}

func validateConfig(cfg *Config) error {
	if cfg.LLM.APIKey == "" {
		return fmt.Errorf("llm.api_key is required (set OPENROUTER_API_KEY)")
	}
	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be within [0, 2], got %v", cfg.LLM.Temperature)
	}
	if cfg.Output.Postgres.Enabled && cfg.Output.Postgres.Host == "" {
		return fmt.Errorf("output.postgres.enabled requires output.postgres.host")
	}
	if cfg.Output.Elastic.Enabled && len(cfg.Output.Elastic.Addresses) == 0 {
		return fmt.Errorf("output.elasticsearch.enabled requires at least one address")
	}
	if cfg.Cache.Enabled && cfg.Cache.Address == "" {
		return fmt.Errorf("cache.enabled requires cache.address")
	}
	return nil
}
