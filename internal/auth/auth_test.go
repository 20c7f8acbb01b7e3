package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/config"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{Auth: config.AuthConfig{
		JWTSecret:  strings.Repeat("s", 32),
		JWTExpiry:  time.Hour,
		BcryptCost: 4,
	}}
}

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager(testConfig())
	id := uuid.New()

	token, issued, err := m.Issue(id, model.RoleTrainer)
	require.NoError(t, err)
	assert.Len(t, issued.ID, 64)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.UserID)
	assert.Equal(t, model.RoleTrainer, claims.Role)
	assert.Equal(t, Issuer, claims.Issuer)
	assert.Equal(t, id.String(), claims.Subject)
	assert.Equal(t, issued.ID, claims.ID)
	assert.InDelta(t, time.Hour.Seconds(), m.Remaining(claims).Seconds(), 2)
}

func TestTokenManager_UniqueIDs(t *testing.T) {
	m := NewTokenManager(testConfig())
	_, a, err := m.Issue(uuid.New(), model.RoleUser)
	require.NoError(t, err)
	_, b, err := m.Issue(uuid.New(), model.RoleUser)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestTokenManager_Rejects(t *testing.T) {
	m := NewTokenManager(testConfig())
	valid, _, err := m.Issue(uuid.New(), model.RoleUser)
	require.NoError(t, err)

	otherCfg := testConfig()
	otherCfg.Auth.JWTSecret = strings.Repeat("x", 32)
	foreign, _, err := NewTokenManager(otherCfg).Issue(uuid.New(), model.RoleUser)
	require.NoError(t, err)

	expiredMgr := NewTokenManager(testConfig())
	expiredMgr.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, _, err := expiredMgr.Issue(uuid.New(), model.RoleUser)
	require.NoError(t, err)

	wrongIssuer, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID: uuid.New(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			ID:        "abc",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(testConfig().Auth.JWTSecret))
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: uuid.New()}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"tampered", valid + "x"},
		{"foreign secret", foreign},
		{"expired", expired},
		{"wrong issuer", wrongIssuer},
		{"alg none", none},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Parse(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestPasswordHasher(t *testing.T) {
	h := NewPasswordHasher(testConfig())

	hash, err := h.Hash("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)
	assert.True(t, h.Compare(hash, "secret1"))
	assert.False(t, h.Compare(hash, "secret2"))
}

func TestNewPasswordHasher_CostFallback(t *testing.T) {
	cfg := testConfig()
	cfg.Auth.BcryptCost = 0
	assert.Equal(t, 10, NewPasswordHasher(cfg).cost)
}

func TestResetToken(t *testing.T) {
	raw, hashed, err := NewResetToken()
	require.NoError(t, err)
	assert.Len(t, raw, 64)
	assert.Len(t, hashed, 64)
	assert.NotEqual(t, raw, hashed)
	assert.Equal(t, hashed, HashResetToken(raw))
}
