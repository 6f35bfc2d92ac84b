// internal/cache/cache.go
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"

	"negotiation-experiments/internal/common/logger"
	"negotiation-experiments/internal/common/metrics"
)

// ResponseCache memoizes raw completions keyed by (model, prompt). Re-running
// an interrupted batch then replays completed trials from Redis instead of
// paying for them again. A nil *ResponseCache is valid and caches nothing.
type ResponseCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

// Config holds the response-cache settings.
type Config struct {
	Address  string
	Password string
	DB       int
	TTL      time.Duration
}

// New connects the cache. The connection is verified eagerly so a
// misconfigured address fails at startup, not mid-batch.
func New(ctx context.Context, cfg Config, log logger.Logger) (*ResponseCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &ResponseCache{client: rdb, ttl: ttl, logger: log}, nil
}

// NewWithClient wraps an existing client. Used by tests.
func NewWithClient(client *redis.Client, ttl time.Duration, log logger.Logger) *ResponseCache {
	return &ResponseCache{client: client, ttl: ttl, logger: log}
}

// Key derives the cache key for one (model, prompt) pair. Prompts are long,
// so they are hashed rather than embedded.
func Key(model, prompt string) string {
	sum := sha256.Sum256([]byte(model + "|" + prompt))
	return "completion:" + hex.EncodeToString(sum[:])
}

// Get returns the cached completion and whether one was found. Cache errors
// degrade to a miss; the batch must not fail because Redis is unhappy.
func (c *ResponseCache) Get(ctx context.Context, model, prompt string) (string, bool) {
	if c == nil {
		return "", false
	}
	val, err := c.client.Get(ctx, Key(model, prompt)).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		c.logger.WithError(err).Warn("Response cache read failed", map[string]interface{}{
			"model": model,
		})
		return "", false
	}
	metrics.CacheHits.Inc()
	return val, true
}

// Put stores a completion. Write failures are logged and swallowed.
func (c *ResponseCache) Put(ctx context.Context, model, prompt, response string) {
	if c == nil {
		return
	}
	if err := c.client.Set(ctx, Key(model, prompt), response, c.ttl).Err(); err != nil {
		c.logger.WithError(err).Warn("Response cache write failed", map[string]interface{}{
			"model": model,
		})
	}
}

// Close releases the underlying connection.
func (c *ResponseCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
