package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/skillsync-team/meeting-service/pkg/config"
)

// NewRedisClient creates a new Redis client and verifies connectivity
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

// sweepLeaseKey is the single key guarding sweep overlap
const sweepLeaseKey = "reminder:sweep:lease"

// SweepLease is a Redis-backed lease that lets overlapping sweep
// invocations short-circuit. It is an optimization layered over the
// ledger's conditional updates, not the correctness mechanism: losing the
// lease store only risks a harmless concurrent sweep.
type SweepLease struct {
	client *redis.Client
	ttl    time.Duration
	token  string
	logger *zap.Logger
}

// NewSweepLease creates a lease with the given TTL. The TTL bounds how
// long a crashed sweep can block subsequent ones.
func NewSweepLease(client *redis.Client, ttl time.Duration, logger *zap.Logger) *SweepLease {
	return &SweepLease{
		client: client,
		ttl:    ttl,
		token:  uuid.New().String(),
		logger: logger,
	}
}

// Acquire attempts to take the lease; false means another sweep holds it
func (l *SweepLease) Acquire(ctx context.Context) (bool, error) {
	ok, err := l.client.SetNX(ctx, sweepLeaseKey, l.token, l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire sweep lease: %w", err)
	}
	return ok, nil
}

// Release drops the lease if this instance still holds it. The check and
// delete run as a single Lua script so an expired-and-reacquired lease is
// never released by the wrong holder.
func (l *SweepLease) Release(ctx context.Context) {
	const script = `
		if redis.call("GET", KEYS[1]) == ARGV[1] then
			return redis.call("DEL", KEYS[1])
		end
		return 0
	`
	if err := l.client.Eval(ctx, script, []string{sweepLeaseKey}, l.token).Err(); err != nil {
		l.logger.Warn("failed to release sweep lease", zap.Error(err))
	}
}
