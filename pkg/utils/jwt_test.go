package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	manager := NewJWTManager("secret", 10*time.Minute)
	userID := uuid.New()

	token, err := manager.CreateToken(userID, "admin")
	require.NoError(t, err)

	claims, err := manager.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.WithinDuration(t, time.Now().Add(10*time.Minute), claims.ExpiresAt.Time, 5*time.Second)
}

func TestJWTManager_RejectsForeignAndExpiredTokens(t *testing.T) {
	token, err := NewJWTManager("other", time.Minute).CreateToken(uuid.New(), "user")
	require.NoError(t, err)
	_, err = NewJWTManager("secret", time.Minute).ValidateToken(token)
	assert.Error(t, err)

	expired := &JWTManager{secret: []byte("secret"), ttl: -time.Minute}
	token, err = expired.CreateToken(uuid.New(), "user")
	require.NoError(t, err)
	_, err = expired.ValidateToken(token)
	assert.Error(t, err)

	_, err = NewJWTManager("secret", time.Minute).ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)
	assert.NoError(t, ComparePasswords(hash, "correct horse"))
	assert.Error(t, ComparePasswords(hash, "battery staple"))
}

func TestDateHelpers(t *testing.T) {
	d, err := ParseDate("2030-02-03")
	require.NoError(t, err)
	assert.Equal(t, "2030-02-03", FormatDate(d))

	_, err = ParseDate("03/02/2030")
	assert.Error(t, err)

	noon := d.Add(12 * time.Hour)
	assert.True(t, StartOfDay(noon).Equal(d))
}
