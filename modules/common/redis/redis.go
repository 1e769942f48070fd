package redis

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"paprika-server/modules/common/config"
)

const (
	pingTimeout = 5 * time.Second
	dialTimeout = 10 * time.Second
	ioTimeout   = 5 * time.Second
)

// Options - client options for the history Redis; TLS verifies against the configured host
func Options(cfg *config.Config) *redis.Options {
	opts := &redis.Options{
		Addr:         cfg.GetRedisAddr(),
		Username:     cfg.RedisUsername,
		Password:     cfg.RedisPassword,
		DialTimeout:  dialTimeout,
		ReadTimeout:  ioTimeout,
		WriteTimeout: ioTimeout,
	}
	if cfg.RedisUseTLS {
		opts.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
			ServerName: cfg.RedisHost,
		}
	}
	return opts
}

// Connect - open a client and ping it; the client is closed again when the ping fails
func Connect(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	log.Printf("🔌 [History] Connecting to Redis at %s (TLS: %v)", cfg.GetRedisAddr(), cfg.RedisUseTLS)
	rdb := redis.NewClient(Options(cfg))

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.GetRedisAddr(), err)
	}

	log.Printf("✅ [History] Redis ready, keeping the last %d generations", cfg.HistoryMaxEntries)
	return rdb, nil
}
