package service

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/karanpreetsingh462/FitGenius-Hub/internal/auth"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_RegisterAndLogin(t *testing.T) {
	f := newFixture(t)
	s := f.authService()
	ctx := context.Background()

	res, err := s.Register(ctx, "  Sam ", "Sam@Example.com", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "Sam", res.User.Name)
	assert.Equal(t, "sam@example.com", res.User.Email)
	assert.Equal(t, model.RoleUser, res.User.Role)

	_, err = s.Register(ctx, "Sam", "sam@example.com", "secret1")
	assert.ErrorIs(t, err, ErrUserExists)

	login, err := s.Login(ctx, "SAM@example.com", "secret1")
	require.NoError(t, err)
	claims, u, err := s.Authenticate(ctx, login.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, u.ID)
	assert.Equal(t, res.User.ID, claims.UserID)

	_, err = s.Login(ctx, "sam@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = s.Login(ctx, "nobody@example.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_LogoutRevokesToken(t *testing.T) {
	f := newFixture(t)
	s := f.authService()
	ctx := context.Background()

	res, err := s.Register(ctx, "Sam", "sam@example.com", "secret1")
	require.NoError(t, err)
	claims, _, err := s.Authenticate(ctx, res.Token)
	require.NoError(t, err)

	require.NoError(t, s.Logout(ctx, claims))
	_, _, err = s.Authenticate(ctx, res.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_AuthenticateDeletedUser(t *testing.T) {
	f := newFixture(t)
	s := f.authService()
	ctx := context.Background()

	res, err := s.Register(ctx, "Sam", "sam@example.com", "secret1")
	require.NoError(t, err)
	require.NoError(t, f.users.Delete(ctx, res.User.ID))

	_, _, err = s.Authenticate(ctx, res.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, _, err = s.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	f := newFixture(t)
	s := f.authService()
	u := f.seedUser(t, "sam", model.RoleUser)

	age, height, weight := 30, 180.0, 81.0
	name, level, slot := "Samuel", "advanced", "evening"
	updated, err := s.UpdateProfile(context.Background(), u.ID, ProfileUpdate{
		Name:         &name,
		Age:          &age,
		Height:       &height,
		Weight:       &weight,
		FitnessLevel: &level,
		Goals:        []string{"muscle_gain"},
		Preferences:  &PreferencesUpdate{PreferredWorkoutTime: &slot},
	})
	require.NoError(t, err)
	assert.Equal(t, "Samuel", updated.Name)
	assert.Equal(t, "advanced", updated.Profile.FitnessLevel)
	assert.Equal(t, []string{"muscle_gain"}, updated.Profile.Goals)
	assert.Equal(t, "evening", updated.Preferences.PreferredWorkoutTime)
	assert.Equal(t, 45, updated.Preferences.WorkoutDuration, "untouched preferences keep their value")
	require.NotNil(t, updated.BMI())
	assert.Equal(t, 25.0, *updated.BMI())
}

func TestAuthService_ChangePassword(t *testing.T) {
	f := newFixture(t)
	s := f.authService()
	ctx := context.Background()
	u := f.seedUser(t, "sam", model.RoleUser)

	err := s.ChangePassword(ctx, u.ID, "wrong", "newsecret")
	assert.ErrorIs(t, err, ErrValidation)

	require.NoError(t, s.ChangePassword(ctx, u.ID, "secret1", "newsecret"))
	_, err = s.Login(ctx, u.Email, "newsecret")
	assert.NoError(t, err)
}

func TestAuthService_PasswordResetFlow(t *testing.T) {
	f := newFixture(t)
	s := f.authService()
	ctx := context.Background()
	u := f.seedUser(t, "sam", model.RoleUser)

	require.NoError(t, s.ForgotPassword(ctx, "nobody@fitgenius.test"))
	assert.Empty(t, f.queue.Jobs(), "unknown addresses enqueue nothing")

	require.NoError(t, s.ForgotPassword(ctx, u.Email))
	jobs := f.queue.Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, u.Email, jobs[0].Email.To)
	assert.True(t, jobs[0].Email.HTML)

	stored, err := f.users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.ResetPasswordExpire)
	assert.WithinDuration(t, time.Now().Add(10*time.Minute), *stored.ResetPasswordExpire, 5*time.Second)

	// The raw token only travels in the email link.
	m := regexp.MustCompile(regexp.QuoteMeta(f.cfg.Auth.ResetURL) + `([^"]+)`).FindStringSubmatch(jobs[0].Body)
	require.Len(t, m, 2)
	raw := m[1]
	assert.Equal(t, auth.HashResetToken(raw), stored.ResetPasswordToken)

	_, err = s.ResetPassword(ctx, "not-a-token", "brandnew")
	assert.ErrorIs(t, err, ErrInvalidToken)

	res, err := s.ResetPassword(ctx, raw, "brandnew")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)

	_, err = s.Login(ctx, u.Email, "brandnew")
	assert.NoError(t, err)
	_, err = s.ResetPassword(ctx, raw, "again1")
	assert.ErrorIs(t, err, ErrInvalidToken, "tokens are single use")
}

func TestAuthService_ExpiredResetToken(t *testing.T) {
	f := newFixture(t)
	s := f.authService()
	ctx := context.Background()
	u := f.seedUser(t, "sam", model.RoleUser)

	raw, hashed, err := auth.NewResetToken()
	require.NoError(t, err)
	past := time.Now().Add(-time.Minute)
	u.ResetPasswordToken, u.ResetPasswordExpire = hashed, &past
	require.NoError(t, f.users.Update(ctx, u))

	_, err = s.ResetPassword(ctx, raw, "brandnew")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_LoginKeepsConcurrentPasswordChange(t *testing.T) {
	f := newFixture(t)
	u := f.seedUser(t, "sam", model.RoleUser)
	ctx := context.Background()

	newHash, err := f.hasher.Hash("changed1")
	require.NoError(t, err)
	users := &racingUsers{Users: f.users, hook: func() {
		require.NoError(t, f.users.SetPassword(ctx, u.ID, newHash))
	}}
	s := NewAuthService(f.cfg, users, f.denylist, f.queue, f.tokens, f.hasher, &f.logger)

	before := time.Now().UTC()
	_, err = s.Login(ctx, u.Email, "secret1")
	require.NoError(t, err)

	stored, err := f.users.GetPasswordHash(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, newHash, stored, "login must not write back the hash it read")

	got, err := f.users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, got.LastLogin.Before(before))
}
