package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/domain/model"
)

// UserRepository defines the contract for user persistence.
type UserRepository interface {
	// Create persists a new user. A taken email yields ErrDuplicateRecord.
	Create(ctx context.Context, u *model.User) error

	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// GetByEmail looks the user up by normalized email.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// GetPasswordHash returns the stored password hash. It always reads the primary store.
	GetPasswordHash(ctx context.Context, id uuid.UUID) (string, error)

	// The writes below touch only the columns they name, so concurrent
	// writers of other fields are never overwritten with stale values.

	// UpdateProfile writes the name, profile and preferences of the user.
	UpdateProfile(ctx context.Context, u *model.User) error

	// UpdateMembership replaces the membership of the user.
	UpdateMembership(ctx context.Context, id uuid.UUID, m model.Membership) error

	// RecordLogin sets the last login time.
	RecordLogin(ctx context.Context, id uuid.UUID, at time.Time) error

	// SetPassword stores a new password hash and clears any pending reset token.
	SetPassword(ctx context.Context, id uuid.UUID, passwordHash string) error

	// SetResetToken stores a hashed reset token valid until expire.
	SetResetToken(ctx context.Context, id uuid.UUID, tokenHash string, expire time.Time) error

	// ConsumeResetToken sets the password of the user holding the token if it has not
	// expired at now, and clears the token. An unknown, expired or already used token
	// yields ErrNotFound.
	ConsumeResetToken(ctx context.Context, tokenHash, passwordHash string, now time.Time) (*model.User, error)

	// ExpireMembership deactivates the membership only if it is still active and
	// ended before now. It reports whether this call deactivated it.
	ExpireMembership(ctx context.Context, id uuid.UUID, now time.Time) (bool, error)

	Delete(ctx context.Context, id uuid.UUID) error

	// List returns all users ordered by creation time, newest first.
	List(ctx context.Context) ([]*model.User, error)

	// ListExpiredMemberships returns active memberships whose end date is before now.
	ListExpiredMemberships(ctx context.Context, now time.Time) ([]*model.User, error)

	// ClearExpiredResetTokens removes reset tokens that expired before now and reports how many were cleared.
	ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error)
}

// UserCache defines the contract for a user caching layer.
type UserCache interface {
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	Set(ctx context.Context, u *model.User, expiration time.Duration) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TokenDenylist records revoked token IDs until they would have expired anyway.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
