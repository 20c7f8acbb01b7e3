package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/auth"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/config"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/domain/model"
	repo "github.com/karanpreetsingh462/FitGenius-Hub/internal/domain/repository"
	"github.com/rs/zerolog"
)

const defaultResetTokenTTL = 10 * time.Minute

// AuthResult is returned by every operation that signs the user in.
type AuthResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// PreferencesUpdate carries optional preference changes.
type PreferencesUpdate struct {
	WorkoutDuration      *int
	WorkoutFrequency     *int
	PreferredWorkoutTime *string
}

// ProfileUpdate carries optional profile changes. Nil fields are left untouched.
type ProfileUpdate struct {
	Name               *string
	Age                *int
	Gender             *string
	Height             *float64
	Weight             *float64
	FitnessLevel       *string
	Goals              []string
	DietaryPreferences []string
	MedicalConditions  []string
	Allergies          []string
	Preferences        *PreferencesUpdate
}

// AuthService handles registration, sessions and password management.
type AuthService struct {
	users    repo.UserRepository
	denylist repo.TokenDenylist
	queue    repo.JobQueue
	tokens   *auth.TokenManager
	hasher   *auth.PasswordHasher
	resetTTL time.Duration
	resetURL string
	logger   zerolog.Logger
	now      func() time.Time
}

func NewAuthService(
	cfg *config.Config,
	users repo.UserRepository,
	denylist repo.TokenDenylist,
	queue repo.JobQueue,
	tokens *auth.TokenManager,
	hasher *auth.PasswordHasher,
	logger *zerolog.Logger,
) *AuthService {
	ttl := cfg.Auth.ResetTokenTTL
	if ttl <= 0 {
		ttl = defaultResetTokenTTL
	}
	return &AuthService{
		users:    users,
		denylist: denylist,
		queue:    queue,
		tokens:   tokens,
		hasher:   hasher,
		resetTTL: ttl,
		resetURL: cfg.Auth.ResetURL,
		logger:   logger.With().Str("layer", "service").Str("service", "auth").Logger(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Register creates a user with the default profile and signs them in.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	u := model.NewUser(name, email, hash)
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicateRecord) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	s.logger.Info().Stringer("user_id", u.ID).Msg("user registered")
	return s.signIn(u)
}

// Login verifies the credentials and records the login time.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !s.hasher.Compare(u.PasswordHash, password) {
		s.logger.Warn().Stringer("user_id", u.ID).Msg("failed login attempt")
		return nil, ErrInvalidCredentials
	}

	u.LastLogin = s.now()
	if err := s.users.RecordLogin(ctx, u.ID, u.LastLogin); err != nil {
		return nil, err
	}
	return s.signIn(u)
}

// Authenticate resolves a bearer token to its claims and user.
// Revoked tokens and tokens of deleted users are rejected.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*auth.Claims, *model.User, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, nil, ErrInvalidToken
	}
	revoked, err := s.denylist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, nil, err
	}
	if revoked {
		return nil, nil, ErrInvalidToken
	}
	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, nil, ErrInvalidToken
		}
		return nil, nil, err
	}
	return claims, u, nil
}

// Me returns the current user.
func (s *AuthService) Me(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

// UpdateProfile applies a partial update of name, profile and preferences.
func (s *AuthService) UpdateProfile(ctx context.Context, id uuid.UUID, in ProfileUpdate) (*model.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		u.Name = strings.TrimSpace(*in.Name)
	}
	p := &u.Profile
	if in.Age != nil {
		p.Age = in.Age
	}
	if in.Gender != nil {
		p.Gender = *in.Gender
	}
	if in.Height != nil {
		p.Height = in.Height
	}
	if in.Weight != nil {
		p.Weight = in.Weight
	}
	if in.FitnessLevel != nil {
		p.FitnessLevel = *in.FitnessLevel
	}
	if in.Goals != nil {
		p.Goals = in.Goals
	}
	if in.DietaryPreferences != nil {
		p.DietaryPreferences = in.DietaryPreferences
	}
	if in.MedicalConditions != nil {
		p.MedicalConditions = in.MedicalConditions
	}
	if in.Allergies != nil {
		p.Allergies = in.Allergies
	}
	if pr := in.Preferences; pr != nil {
		if pr.WorkoutDuration != nil {
			u.Preferences.WorkoutDuration = *pr.WorkoutDuration
		}
		if pr.WorkoutFrequency != nil {
			u.Preferences.WorkoutFrequency = *pr.WorkoutFrequency
		}
		if pr.PreferredWorkoutTime != nil {
			u.Preferences.PreferredWorkoutTime = *pr.PreferredWorkoutTime
		}
	}

	if err := s.users.UpdateProfile(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// ChangePassword replaces the password after verifying the current one.
func (s *AuthService) ChangePassword(ctx context.Context, id uuid.UUID, current, next string) error {
	stored, err := s.users.GetPasswordHash(ctx, id)
	if err != nil {
		return err
	}
	if !s.hasher.Compare(stored, current) {
		return invalid("Current password is incorrect")
	}
	hash, err := s.hasher.Hash(next)
	if err != nil {
		return err
	}
	return s.users.SetPassword(ctx, id, hash)
}

// ForgotPassword issues a short-lived reset token and mails the link.
// Unknown addresses succeed silently.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			s.logger.Debug().Msg("password reset requested for unknown email")
			return nil
		}
		return err
	}

	raw, hashed, err := auth.NewResetToken()
	if err != nil {
		return err
	}
	if err := s.users.SetResetToken(ctx, u.ID, hashed, s.now().Add(s.resetTTL)); err != nil {
		return err
	}

	body, err := render(passwordResetTmpl, map[string]any{
		"Name":    u.Name,
		"Link":    s.resetURL + raw,
		"Minutes": int(s.resetTTL.Minutes()),
	})
	if err != nil {
		return err
	}
	job := model.NewEmailJob(u.Email, "", "FitGenius Hub - Password Reset", body, true)
	if err := s.queue.Publish(ctx, job); err != nil {
		return fmt.Errorf("enqueue reset email: %w", err)
	}
	s.logger.Info().Stringer("user_id", u.ID).Stringer("job_id", job.ID).Msg("password reset email enqueued")
	return nil
}

// ResetPassword consumes a reset token, sets the new password and signs the user in.
func (s *AuthService) ResetPassword(ctx context.Context, rawToken, password string) (*AuthResult, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	u, err := s.users.ConsumeResetToken(ctx, auth.HashResetToken(rawToken), hash, s.now())
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	s.logger.Info().Stringer("user_id", u.ID).Msg("password reset")
	return s.signIn(u)
}

// Logout revokes the token until it would have expired.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	return s.denylist.Revoke(ctx, claims.ID, s.tokens.Remaining(claims))
}

func (s *AuthService) signIn(u *model.User) (*AuthResult, error) {
	token, _, err := s.tokens.Issue(u.ID, u.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: u}, nil
}
