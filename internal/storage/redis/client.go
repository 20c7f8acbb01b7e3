package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/karanpreetsingh462/FitGenius-Hub/internal/config"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const pingTimeout = 5 * time.Second

// NewClient creates a go-redis client and verifies the server answers.
func NewClient(cfg *config.Config, logger *zerolog.Logger) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping %s failed: %w", cfg.Redis.Addr, err)
	}

	logger.Info().Str("layer", "redis").Str("addr", cfg.Redis.Addr).Msg("connected to redis")
	return client, nil
}
