package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"redemption-service/internal/pkg/config"
	"redemption-service/internal/pkg/errs"
	"redemption-service/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "redemption"

// RedisCache backs code lookups and seller stats. Entries are advisory:
// Reserve and the transitions always read the database under lock.
type RedisCache struct {
	client   *redis.Client
	codeTTL  time.Duration
	statsTTL time.Duration
}

func NewRedisCache(client *redis.Client, cfg config.RedisConfig) *RedisCache {
	return &RedisCache{
		client:   client,
		codeTTL:  cfg.CodeTTL,
		statsTTL: cfg.StatsTTL,
	}
}

// Connect opens a client and checks it with PING.
func Connect(cfg config.RedisConfig) (*redis.Client, func(), error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, errs.Wrapf(err, "failed to ping redis at %s", cfg.Addr)
	}

	cleanup := func() {
		slog.Info("closing redis client")
		if err := client.Close(); err != nil {
			slog.Warn("failed to close redis client", "error", err.Error())
		}
	}
	return client, cleanup, nil
}

func codeKey(code string) string {
	return fmt.Sprintf("%s:code:{%s}", keyPrefix, code)
}

func statsKey(sellerID uuid.UUID) string {
	return fmt.Sprintf("%s:seller-stats:{%s}", keyPrefix, sellerID)
}

func (c *RedisCache) GetCode(ctx context.Context, code string) (*queries.CodeView, bool, error) {
	var v queries.CodeView
	ok, err := c.get(ctx, codeKey(code), &v)
	if err != nil || !ok {
		return nil, false, err
	}
	return &v, true, nil
}

func (c *RedisCache) SetCode(ctx context.Context, v *queries.CodeView) error {
	return c.set(ctx, codeKey(v.Code), v, c.codeTTL)
}

func (c *RedisCache) InvalidateCode(ctx context.Context, code string) error {
	return c.del(ctx, codeKey(code))
}

func (c *RedisCache) GetStats(ctx context.Context, sellerID uuid.UUID) (*queries.ReferralStats, bool, error) {
	var v queries.ReferralStats
	ok, err := c.get(ctx, statsKey(sellerID), &v)
	if err != nil || !ok {
		return nil, false, err
	}
	return &v, true, nil
}

func (c *RedisCache) SetStats(ctx context.Context, stats *queries.ReferralStats) error {
	return c.set(ctx, statsKey(stats.SellerID), stats, c.statsTTL)
}

func (c *RedisCache) InvalidateSeller(ctx context.Context, sellerID uuid.UUID) error {
	return c.del(ctx, statsKey(sellerID))
}

func (c *RedisCache) get(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, errs.Wrapf(err, "redis get %s", key)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		// a corrupt entry is treated as a miss and overwritten on the next set
		slog.WarnContext(ctx, "dropping undecodable cache entry", "key", key, "error", err.Error())
		return false, nil
	}
	return true, nil
}

func (c *RedisCache) set(ctx context.Context, key string, v any, ttl time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return errs.Wrapf(err, "encode cache entry %s", key)
	}
	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return errs.Wrapf(err, "redis set %s", key)
	}
	return nil
}

func (c *RedisCache) del(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return errs.Wrapf(err, "redis del %s", key)
	}
	return nil
}
