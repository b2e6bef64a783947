package dedup

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/partnerflow/partnerflow/internal/config"
	ierr "github.com/partnerflow/partnerflow/internal/errors"
	"github.com/partnerflow/partnerflow/internal/logger"
)

// RedisClaimer implements Claimer on a shared redis client using SET NX
// with expiry, which is atomic at the server
type RedisClaimer struct {
	client *redis.Client
	logger *logger.Logger
}

// NewRedisClient connects to the configured redis instance
func NewRedisClient(cfg *config.Configuration) (*redis.Client, error) {
	opts, err := cfg.Redis.GetClientOptions()
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid redis URL").
			Mark(ierr.ErrValidation)
	}
	return redis.NewClient(opts), nil
}

func NewRedisClaimer(client *redis.Client, log *logger.Logger) Claimer {
	return &RedisClaimer{client: client, logger: log}
}

func (c *RedisClaimer) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := c.client.SetNX(ctx, key, 1, ttl).Result()
	if err != nil {
		return false, ierr.WithError(err).
			WithHint("Failed to claim idempotency key").
			WithReportableDetails(map[string]any{"key": key}).
			Mark(ierr.ErrSystem)
	}
	return ok, nil
}
