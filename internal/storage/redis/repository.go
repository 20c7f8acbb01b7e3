package redis

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/config"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/domain/model"
	repo "github.com/karanpreetsingh462/FitGenius-Hub/internal/domain/repository"
	"github.com/rs/zerolog"
)

// Ensure CachedUserRepository implements the interface
var _ repo.UserRepository = (*CachedUserRepository)(nil)

// CachedUserRepository is a decorator for a UserRepository
// that adds a caching layer using Redis. Only lookups by ID are cached;
// every write invalidates the entry.
type CachedUserRepository struct {
	primaryRepo repo.UserRepository
	cache       repo.UserCache
	logger      zerolog.Logger
	ttl         time.Duration
}

// NewCachedUserRepository creates a new instance of the cached repository.
// It takes the primary repository and the cache as dependencies.
func NewCachedUserRepository(
	primaryRepo repo.UserRepository,
	cache repo.UserCache,
	cfg *config.Config,
	logger *zerolog.Logger,
) *CachedUserRepository {
	ttl := cfg.Redis.CacheTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &CachedUserRepository{
		primaryRepo: primaryRepo,
		cache:       cache,
		logger:      logger.With().Str("layer", "cached_repository").Logger(),
		ttl:         ttl,
	}
}

// Create first persists the user in the primary repository,
// then warms up the cache with the new data.
func (r *CachedUserRepository) Create(ctx context.Context, u *model.User) error {
	if err := r.primaryRepo.Create(ctx, u); err != nil {
		return err
	}
	if err := r.cache.Set(ctx, u, r.ttl); err != nil {
		r.logger.Error().Err(err).Stringer("id", u.ID).Msg("failed to cache user after create")
	}
	return nil
}

// GetByID implements the cache-aside pattern.
// It first tries to fetch the data from the cache. If it's a miss,
// it fetches from the primary repository, caches the result, and then returns it.
func (r *CachedUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	cached, err := r.cache.Get(ctx, id)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		r.logger.Error().Err(err).Stringer("id", id).Msg("cache get error, falling back to primary repository")
	}

	primary, err := r.primaryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, primary, r.ttl); err != nil {
		r.logger.Error().Err(err).Stringer("id", primary.ID).Msg("failed to set cache after db fetch")
	}
	return primary, nil
}

func (r *CachedUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.primaryRepo.GetByEmail(ctx, email)
}

// GetPasswordHash bypasses the cache. Cached entries never carry credentials.
func (r *CachedUserRepository) GetPasswordHash(ctx context.Context, id uuid.UUID) (string, error) {
	return r.primaryRepo.GetPasswordHash(ctx, id)
}

// UpdateProfile writes through to the primary repository and invalidates the entry.
func (r *CachedUserRepository) UpdateProfile(ctx context.Context, u *model.User) error {
	return r.writeThrough(ctx, u.ID, "update_profile", func() error { return r.primaryRepo.UpdateProfile(ctx, u) })
}

func (r *CachedUserRepository) UpdateMembership(ctx context.Context, id uuid.UUID, m model.Membership) error {
	return r.writeThrough(ctx, id, "update_membership", func() error { return r.primaryRepo.UpdateMembership(ctx, id, m) })
}

func (r *CachedUserRepository) RecordLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.writeThrough(ctx, id, "record_login", func() error { return r.primaryRepo.RecordLogin(ctx, id, at) })
}

func (r *CachedUserRepository) SetPassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return r.writeThrough(ctx, id, "set_password", func() error { return r.primaryRepo.SetPassword(ctx, id, passwordHash) })
}

// SetResetToken leaves the cache alone; the token is not part of a cached entry.
func (r *CachedUserRepository) SetResetToken(ctx context.Context, id uuid.UUID, tokenHash string, expire time.Time) error {
	return r.primaryRepo.SetResetToken(ctx, id, tokenHash, expire)
}

func (r *CachedUserRepository) ConsumeResetToken(ctx context.Context, tokenHash, passwordHash string, now time.Time) (*model.User, error) {
	u, err := r.primaryRepo.ConsumeResetToken(ctx, tokenHash, passwordHash, now)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, u.ID, "consume_reset_token")
	return u, nil
}

func (r *CachedUserRepository) ExpireMembership(ctx context.Context, id uuid.UUID, now time.Time) (bool, error) {
	expired, err := r.primaryRepo.ExpireMembership(ctx, id, now)
	if err != nil {
		return false, err
	}
	if expired {
		r.invalidate(ctx, id, "expire_membership")
	}
	return expired, nil
}

// Delete first deletes the data from the primary repository,
// then invalidates the cache.
func (r *CachedUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.primaryRepo.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, id, "delete")
	return nil
}

func (r *CachedUserRepository) List(ctx context.Context) ([]*model.User, error) {
	return r.primaryRepo.List(ctx)
}

func (r *CachedUserRepository) ListExpiredMemberships(ctx context.Context, now time.Time) ([]*model.User, error) {
	return r.primaryRepo.ListExpiredMemberships(ctx, now)
}

// ClearExpiredResetTokens bypasses the cache. Lookups by token always hit the primary store.
func (r *CachedUserRepository) ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	return r.primaryRepo.ClearExpiredResetTokens(ctx, now)
}

// writeThrough runs a primary write and then drops the cached entry.
func (r *CachedUserRepository) writeThrough(ctx context.Context, id uuid.UUID, op string, write func() error) error {
	if err := write(); err != nil {
		return err
	}
	r.invalidate(ctx, id, op)
	return nil
}

func (r *CachedUserRepository) invalidate(ctx context.Context, id uuid.UUID, op string) {
	if err := r.cache.Delete(ctx, id); err != nil {
		r.logger.Error().Err(err).Stringer("id", id).Str("op", op).Msg("failed to invalidate cache")
	}
}
