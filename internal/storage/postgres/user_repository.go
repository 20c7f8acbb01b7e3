package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/domain/model"
	repo "github.com/karanpreetsingh462/FitGenius-Hub/internal/domain/repository"
	"github.com/rs/zerolog"
)

// Ensure UserRepository implements the interface
var _ repo.UserRepository = (*UserRepository)(nil)

const userColumns = `id, name, email, password_hash, role, profile,
	membership_type, membership_start, membership_end, membership_active,
	preferences, reset_password_token, reset_password_expire,
	email_verified, last_login, created_at, updated_at`

// UserRepository implements the domain.repository.UserRepository interface
// using PostgreSQL as a backend.
type UserRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewUserRepository creates a new instance of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool, logger *zerolog.Logger) *UserRepository {
	return &UserRepository{
		pool:   pool,
		logger: logger.With().Str("layer", "postgres_repository").Str("table", "users").Logger(),
	}
}

// Create persists a new user.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	row, err := toUserRow(u)
	if err != nil {
		r.logger.Error().Err(err).Stringer("id", u.ID).Msg("failed to map domain model to db row")
		return err
	}

	_, err = r.pool.Exec(ctx, `INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		row.args()...)
	if err != nil {
		if err = mapError(err); errors.Is(err, repo.ErrDuplicateRecord) {
			return err
		}
		r.logger.Err(err).Msg("cannot create user")
		return fmt.Errorf("postgres: create user failed: %w", err)
	}
	return nil
}

// GetByID retrieves a user by its unique ID.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return r.getOne(ctx, "GetByID", `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByEmail retrieves a user by normalized email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, "GetByEmail", `SELECT `+userColumns+` FROM users WHERE email = $1`, model.NormalizeEmail(email))
}

// GetPasswordHash reads only the password hash of a user.
func (r *UserRepository) GetPasswordHash(ctx context.Context, id uuid.UUID) (string, error) {
	var hash string
	if err := r.pool.QueryRow(ctx, `SELECT password_hash FROM users WHERE id = $1`, id).Scan(&hash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", repo.ErrNotFound
		}
		r.logger.Err(err).Stringer("id", id).Msg("cannot get password hash")
		return "", fmt.Errorf("postgres: get password hash failed: %w", err)
	}
	return hash, nil
}

// UpdateProfile writes name, profile and preferences.
func (r *UserRepository) UpdateProfile(ctx context.Context, u *model.User) error {
	row, err := toUserRow(u)
	if err != nil {
		r.logger.Error().Err(err).Stringer("id", u.ID).Msg("failed to map domain model to update row")
		return err
	}
	u.UpdatedAt = time.Now().UTC()
	return r.exec(ctx, "UpdateProfile", u.ID, `UPDATE users SET
		name = $2, profile = $3, preferences = $4, updated_at = $5
		WHERE id = $1`, row.Name, row.Profile, row.Preferences, u.UpdatedAt)
}

// UpdateMembership replaces the membership columns.
func (r *UserRepository) UpdateMembership(ctx context.Context, id uuid.UUID, m model.Membership) error {
	return r.exec(ctx, "UpdateMembership", id, `UPDATE users SET
		membership_type = $2, membership_start = $3, membership_end = $4, membership_active = $5,
		updated_at = $6
		WHERE id = $1`, string(m.Type), m.StartDate, m.EndDate, m.IsActive, time.Now().UTC())
}

// RecordLogin sets last_login only.
func (r *UserRepository) RecordLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.exec(ctx, "RecordLogin", id, `UPDATE users SET last_login = $2 WHERE id = $1`, at)
}

// SetPassword stores a new hash and drops any pending reset token.
func (r *UserRepository) SetPassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return r.exec(ctx, "SetPassword", id, `UPDATE users SET
		password_hash = $2, reset_password_token = NULL, reset_password_expire = NULL, updated_at = $3
		WHERE id = $1`, passwordHash, time.Now().UTC())
}

// SetResetToken stores a hashed reset token and its expiry.
func (r *UserRepository) SetResetToken(ctx context.Context, id uuid.UUID, tokenHash string, expire time.Time) error {
	return r.exec(ctx, "SetResetToken", id, `UPDATE users SET
		reset_password_token = $2, reset_password_expire = $3, updated_at = $4
		WHERE id = $1`, tokenHash, expire, time.Now().UTC())
}

// ConsumeResetToken swaps the password and clears the token in one statement,
// so a token can be used at most once.
func (r *UserRepository) ConsumeResetToken(ctx context.Context, tokenHash, passwordHash string, now time.Time) (*model.User, error) {
	return r.getOne(ctx, "ConsumeResetToken", `UPDATE users SET
		password_hash = $2, reset_password_token = NULL, reset_password_expire = NULL, updated_at = $3
		WHERE reset_password_token = $1 AND reset_password_expire > $3
		RETURNING `+userColumns, tokenHash, passwordHash, now)
}

// ExpireMembership deactivates the membership if it is still due for expiry.
func (r *UserRepository) ExpireMembership(ctx context.Context, id uuid.UUID, now time.Time) (bool, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE users SET membership_active = false, updated_at = $2
		WHERE id = $1 AND membership_active AND membership_end IS NOT NULL AND membership_end < $2`, id, now)
	if err != nil {
		r.logger.Err(err).Stringer("id", id).Msg("cannot expire membership")
		return false, fmt.Errorf("postgres: expire membership failed: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Delete removes a user and, through cascades, everything the user owns.
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		r.logger.Err(err).Stringer("id", id).Msg("cannot delete user")
		return fmt.Errorf("postgres: delete user failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// List returns every user, newest first.
func (r *UserRepository) List(ctx context.Context) ([]*model.User, error) {
	return r.getMany(ctx, "List", `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
}

// ListExpiredMemberships returns active memberships whose end date has passed.
func (r *UserRepository) ListExpiredMemberships(ctx context.Context, now time.Time) ([]*model.User, error) {
	return r.getMany(ctx, "ListExpiredMemberships",
		`SELECT `+userColumns+` FROM users
		WHERE membership_active AND membership_end IS NOT NULL AND membership_end < $1
		ORDER BY membership_end`, now)
}

// ClearExpiredResetTokens nulls out reset tokens that expired before now.
func (r *UserRepository) ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE users
		SET reset_password_token = NULL, reset_password_expire = NULL, updated_at = $1
		WHERE reset_password_expire IS NOT NULL AND reset_password_expire <= $1`, now)
	if err != nil {
		r.logger.Err(err).Msg("cannot clear expired reset tokens")
		return 0, fmt.Errorf("postgres: clear reset tokens failed: %w", err)
	}
	return tag.RowsAffected(), nil
}

// exec runs a single-row update and maps a missing row to ErrNotFound.
func (r *UserRepository) exec(ctx context.Context, method string, id uuid.UUID, query string, args ...any) error {
	tag, err := r.pool.Exec(ctx, query, append([]any{id}, args...)...)
	if err != nil {
		r.logger.Err(err).Str("method", method).Stringer("id", id).Msg("cannot update user")
		return fmt.Errorf("postgres: %s failed: %w", method, err)
	}
	if tag.RowsAffected() == 0 {
		r.logger.Warn().Str("method", method).Stringer("id", id).Msg("tried to update non-existent user")
		return repo.ErrNotFound
	}
	return nil
}

func (r *UserRepository) getOne(ctx context.Context, method, query string, args ...any) (*model.User, error) {
	var row userRow
	if err := row.scan(r.pool.QueryRow(ctx, query, args...)); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		r.logger.Err(err).Str("method", method).Msg("cannot get user")
		return nil, fmt.Errorf("postgres: %s failed: %w", method, err)
	}
	return row.toDomain()
}

func (r *UserRepository) getMany(ctx context.Context, method, query string, args ...any) ([]*model.User, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Err(err).Str("method", method).Msg("cannot query users")
		return nil, fmt.Errorf("postgres: %s failed: %w", method, err)
	}
	defer rows.Close()

	users := make([]*model.User, 0)
	for rows.Next() {
		var row userRow
		if err := row.scan(rows); err != nil {
			return nil, fmt.Errorf("postgres: %s scan failed: %w", method, err)
		}
		u, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: %s rows failed: %w", method, err)
	}
	return users, nil
}

// === Mapper Functions ===

type rowScanner interface {
	Scan(dest ...any) error
}

// userRow mirrors the users table; nested documents travel as raw JSON.
type userRow struct {
	ID                  uuid.UUID
	Name                string
	Email               string
	PasswordHash        string
	Role                string
	Profile             []byte
	MembershipType      string
	MembershipStart     time.Time
	MembershipEnd       *time.Time
	MembershipActive    bool
	Preferences         []byte
	ResetPasswordToken  *string
	ResetPasswordExpire *time.Time
	EmailVerified       bool
	LastLogin           time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (r *userRow) scan(s rowScanner) error {
	return s.Scan(&r.ID, &r.Name, &r.Email, &r.PasswordHash, &r.Role, &r.Profile,
		&r.MembershipType, &r.MembershipStart, &r.MembershipEnd, &r.MembershipActive,
		&r.Preferences, &r.ResetPasswordToken, &r.ResetPasswordExpire,
		&r.EmailVerified, &r.LastLogin, &r.CreatedAt, &r.UpdatedAt)
}

func (r *userRow) args() []any {
	return []any{r.ID, r.Name, r.Email, r.PasswordHash, r.Role, r.Profile,
		r.MembershipType, r.MembershipStart, r.MembershipEnd, r.MembershipActive,
		r.Preferences, r.ResetPasswordToken, r.ResetPasswordExpire,
		r.EmailVerified, r.LastLogin, r.CreatedAt, r.UpdatedAt}
}

// toUserRow converts a domain user into its table representation.
func toUserRow(u *model.User) (*userRow, error) {
	profile, err := json.Marshal(u.Profile)
	if err != nil {
		return nil, fmt.Errorf("marshalling profile: %w", err)
	}
	prefs, err := json.Marshal(u.Preferences)
	if err != nil {
		return nil, fmt.Errorf("marshalling preferences: %w", err)
	}

	row := &userRow{
		ID:                  u.ID,
		Name:                u.Name,
		Email:               model.NormalizeEmail(u.Email),
		PasswordHash:        u.PasswordHash,
		Role:                string(u.Role),
		Profile:             profile,
		MembershipType:      string(u.Membership.Type),
		MembershipStart:     u.Membership.StartDate,
		MembershipEnd:       u.Membership.EndDate,
		MembershipActive:    u.Membership.IsActive,
		Preferences:         prefs,
		ResetPasswordExpire: u.ResetPasswordExpire,
		EmailVerified:       u.EmailVerified,
		LastLogin:           u.LastLogin,
		CreatedAt:           u.CreatedAt,
		UpdatedAt:           u.UpdatedAt,
	}
	if u.ResetPasswordToken != "" {
		row.ResetPasswordToken = &u.ResetPasswordToken
	}
	return row, nil
}

// toDomain converts a table row back into a domain user.
func (r *userRow) toDomain() (*model.User, error) {
	u := &model.User{
		ID:                  r.ID,
		Name:                r.Name,
		Email:               r.Email,
		PasswordHash:        r.PasswordHash,
		Role:                model.Role(r.Role),
		ResetPasswordExpire: r.ResetPasswordExpire,
		EmailVerified:       r.EmailVerified,
		LastLogin:           r.LastLogin,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
		Membership: model.Membership{
			Type:      model.MembershipType(r.MembershipType),
			StartDate: r.MembershipStart,
			EndDate:   r.MembershipEnd,
			IsActive:  r.MembershipActive,
		},
	}
	if r.ResetPasswordToken != nil {
		u.ResetPasswordToken = *r.ResetPasswordToken
	}
	if len(r.Profile) > 0 {
		if err := json.Unmarshal(r.Profile, &u.Profile); err != nil {
			return nil, fmt.Errorf("unmarshalling profile of user %s: %w", r.ID, err)
		}
	}
	if len(r.Preferences) > 0 {
		if err := json.Unmarshal(r.Preferences, &u.Preferences); err != nil {
			return nil, fmt.Errorf("unmarshalling preferences of user %s: %w", r.ID, err)
		}
	}
	u.Profile.Goals = nonNil(u.Profile.Goals)
	u.Profile.DietaryPreferences = nonNil(u.Profile.DietaryPreferences)
	u.Profile.MedicalConditions = nonNil(u.Profile.MedicalConditions)
	u.Profile.Allergies = nonNil(u.Profile.Allergies)
	return u, nil
}
