package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newManager() *Manager {
	return NewManager("test-secret-0123456789", "profile-roast", "profile-roast-clients")
}

func TestGenerateAndValidateToken(t *testing.T) {
	m := newManager()
	token, err := m.GenerateToken("alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, "alice", claims.Subject)
}

func TestValidateToken_Invalid(t *testing.T) {
	_, err := newManager().ValidateToken("invalid.token")
	require.Error(t, err)
}

func TestValidateToken_WrongAudience(t *testing.T) {
	token, err := NewManager("test-secret-0123456789", "profile-roast", "someone-else").GenerateToken("alice")
	require.NoError(t, err)

	_, err = newManager().ValidateToken(token)
	require.Error(t, err)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := NewManager("another-secret-0123456", "profile-roast", "profile-roast-clients").GenerateToken("alice")
	require.NoError(t, err)

	_, err = newManager().ValidateToken(token)
	require.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	m := newManager().WithTTL(time.Minute)
	token, err := m.GenerateToken("alice")
	require.NoError(t, err)

	m.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = m.ValidateToken(token)
	require.Error(t, err)
}

func TestGenerateToken_RequiresSubject(t *testing.T) {
	_, err := newManager().GenerateToken("")
	require.Error(t, err)
}
