package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/karanpreetsingh462/FitGenius-Hub/internal/config"
	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher hashes and verifies passwords with bcrypt.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher uses the configured cost, falling back to bcrypt's default when out of range.
func NewPasswordHasher(cfg *config.Config) *PasswordHasher {
	cost := cfg.Auth.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

func (h *PasswordHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(b), nil
}

// Compare reports whether password matches the stored hash.
func (h *PasswordHasher) Compare(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// NewResetToken returns a random token for the user and the SHA-256 digest to store.
func NewResetToken() (raw, hashed string, err error) {
	raw, err = generateJTI()
	if err != nil {
		return "", "", fmt.Errorf("generating reset token: %w", err)
	}
	return raw, HashResetToken(raw), nil
}

// HashResetToken digests a reset token the same way it was stored.
func HashResetToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
