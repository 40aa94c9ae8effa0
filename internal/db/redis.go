package db

import (
	"context"
	"time"

	"backend-citywalk/internal/config"
	"backend-citywalk/internal/logging"

	"github.com/redis/go-redis/v9"
)

// redisDialTimeout bounds the startup ping so a dead broker cannot stall boot.
const redisDialTimeout = 2 * time.Second

// ConnectRedis opens the live-feed broker connection. It returns nil when no
// address is configured or the broker does not answer a ping; a nil client
// keeps the live feed process-local.
func ConnectRedis(ctx context.Context, cfg config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:        cfg.RedisAddr,
		Password:    cfg.RedisPassword,
		DialTimeout: redisDialTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, redisDialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logging.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable, live feed stays local")
		_ = client.Close()
		return nil
	}
	return client
}
