package keybuilder

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestKeys(t *testing.T) {
	id := uuid.MustParse("6f1c2b3a-0000-4000-8000-000000000001")

	assert.Equal(t, "fitgenius:user:6f1c2b3a-0000-4000-8000-000000000001", UserKey(id))
	assert.Equal(t, "fitgenius:revoked-token:abc", RevokedTokenKey("abc"))
}
