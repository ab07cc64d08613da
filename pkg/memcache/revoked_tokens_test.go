package mem

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRevokedTokens_RevokeUntilExpiry(t *testing.T) {
	store := NewRevokedTokens()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	store.Revoke("abc", now.Add(time.Minute))
	assert.True(t, store.IsRevoked("abc"))
	assert.False(t, store.IsRevoked("other"))

	now = now.Add(2 * time.Minute)
	assert.False(t, store.IsRevoked("abc"))
}

func TestRevokedTokens_IgnoresEmptyToken(t *testing.T) {
	store := NewRevokedTokens()
	store.Revoke("", time.Now().Add(time.Hour))
	assert.False(t, store.IsRevoked(""))
}

func TestRevokedTokens_Purge(t *testing.T) {
	store := NewRevokedTokens()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	store.Revoke("expired", now.Add(-time.Second))
	store.Revoke("live", now.Add(time.Hour))

	assert.Equal(t, 1, store.Purge())
	assert.True(t, store.IsRevoked("live"))
}
