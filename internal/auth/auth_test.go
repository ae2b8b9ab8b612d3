package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	token, err := m.Issue(42)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := m.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)
}

func TestVerify_WrongSecret(t *testing.T) {
	token, err := NewManager("secret-a", time.Hour).Issue(1)
	assert.NoError(t, err)

	_, err = NewManager("secret-b", time.Hour).Verify(token)
	assert.Error(t, err)
}

func TestVerify_Expired(t *testing.T) {
	m := &Manager{secret: []byte("s"), ttl: -time.Minute}
	token, err := m.Issue(1)
	assert.NoError(t, err)

	_, err = m.Verify(token)
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cr3t-pass")
	assert.NoError(t, err)
	assert.NotEqual(t, "s3cr3t-pass", hash)

	assert.True(t, CheckPassword(hash, "s3cr3t-pass"))
	assert.False(t, CheckPassword(hash, "wrong"))
}
