// Package keybuilder builds namespaced Redis keys.
package keybuilder

import (
	"fmt"

	"github.com/google/uuid"
)

const (
	Namespace string = "fitgenius"
	User      string = "user"
	Revoked   string = "revoked-token"
)

// UserKey returns the cache key of a user record.
func UserKey(id uuid.UUID) string {
	return fmt.Sprintf("%s:%s:%s", Namespace, User, id)
}

// RevokedTokenKey returns the denylist key of a token ID.
func RevokedTokenKey(jti string) string {
	return fmt.Sprintf("%s:%s:%s", Namespace, Revoked, jti)
}
