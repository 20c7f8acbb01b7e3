package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/domain/model"
	repo "github.com/karanpreetsingh462/FitGenius-Hub/internal/domain/repository"
	"github.com/karanpreetsingh462/FitGenius-Hub/pkg/keybuilder"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Ensure UserCache implements the interface
var _ repo.UserCache = (*UserCache)(nil)

// UserCache implements the domain.UserCache interface
// using the standard go-redis client.
type UserCache struct {
	redis  *goredis.Client
	logger zerolog.Logger
}

// NewUserCache creates a new instance of the UserCache.
func NewUserCache(logger *zerolog.Logger, redis *goredis.Client) *UserCache {
	return &UserCache{
		redis:  redis,
		logger: logger.With().Str("layer", "redis_cache").Logger(),
	}
}

// Get retrieves a user from the cache. A miss yields repo.ErrNotFound.
func (c *UserCache) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	key := keybuilder.UserKey(id)
	val, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			c.logger.Debug().Str("key", key).Str("cache", "miss").Msg("user not found in cache")
			return nil, repo.ErrNotFound
		}
		c.logger.Error().Err(err).Str("key", key).Msg("failed to get key from redis")
		return nil, err
	}

	var u model.User
	if err := json.Unmarshal(val, &u); err != nil {
		c.logger.Error().Err(err).Str("key", key).Msg("failed to unmarshal user from cache")
		return nil, fmt.Errorf("failed to unmarshal cached data: %w", err)
	}
	c.logger.Debug().Str("key", key).Str("cache", "hit").Msg("user found in cache")
	return &u, nil
}

// Set adds a user to the cache for a specified duration. The entry is the public
// JSON form of the user, so the password hash and reset token are never stored.
func (c *UserCache) Set(ctx context.Context, u *model.User, expiration time.Duration) error {
	key := keybuilder.UserKey(u.ID)
	b, err := json.Marshal(u)
	if err != nil {
		c.logger.Error().Err(err).Stringer("id", u.ID).Msg("failed to marshal user for cache")
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	if err := c.redis.Set(ctx, key, b, expiration).Err(); err != nil {
		c.logger.Error().Err(err).Str("key", key).Msg("failed to set key in redis")
		return err
	}
	return nil
}

// Delete removes a user from the cache.
func (c *UserCache) Delete(ctx context.Context, id uuid.UUID) error {
	key := keybuilder.UserKey(id)
	if err := c.redis.Del(ctx, key).Err(); err != nil {
		c.logger.Error().Err(err).Str("key", key).Msg("failed to delete key from redis")
		return err
	}
	return nil
}
