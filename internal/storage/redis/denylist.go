package redis

import (
	"context"
	"fmt"
	"time"

	repo "github.com/karanpreetsingh462/FitGenius-Hub/internal/domain/repository"
	"github.com/karanpreetsingh462/FitGenius-Hub/pkg/keybuilder"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

var _ repo.TokenDenylist = (*TokenDenylist)(nil)

// TokenDenylist stores revoked token IDs with a TTL equal to the token's remaining lifetime,
// so entries vanish once the token would have expired on its own.
type TokenDenylist struct {
	redis  *goredis.Client
	logger zerolog.Logger
}

func NewTokenDenylist(logger *zerolog.Logger, redis *goredis.Client) *TokenDenylist {
	return &TokenDenylist{
		redis:  redis,
		logger: logger.With().Str("layer", "redis_denylist").Logger(),
	}
}

// Revoke denies the token for ttl. A non-positive ttl is a no-op since the token is already expired.
func (d *TokenDenylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := d.redis.Set(ctx, keybuilder.RevokedTokenKey(tokenID), 1, ttl).Err(); err != nil {
		d.logger.Error().Err(err).Msg("failed to revoke token")
		return fmt.Errorf("redis: revoke token: %w", err)
	}
	return nil
}

func (d *TokenDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := d.redis.Exists(ctx, keybuilder.RevokedTokenKey(tokenID)).Result()
	if err != nil {
		d.logger.Error().Err(err).Msg("failed to check token revocation")
		return false, fmt.Errorf("redis: check token: %w", err)
	}
	return n > 0, nil
}
