package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

const testSecret = "test-secret-key"

func newTestManager() *Manager {
	return NewManager(testSecret, 2*time.Hour, 7*24*time.Hour)
}

func TestGenerateAndParseToken(t *testing.T) {
	m := newTestManager()

	pair, err := m.GenerateToken(42, "reader@example.com", "MEMBER")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, int64(7200), pair.ExpiresIn)

	claims, err := m.ParseToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "reader@example.com", claims.Email)
	assert.Equal(t, "MEMBER", claims.Role)
	assert.Equal(t, "library", claims.Issuer)
}

func TestParseTokenExpired(t *testing.T) {
	// Access Token有效期为负,生成即过期
	m := NewManager(testSecret, -time.Hour, 7*24*time.Hour)

	pair, err := m.GenerateToken(42, "reader@example.com", "MEMBER")
	require.NoError(t, err)

	_, err = m.ParseToken(pair.AccessToken)
	assert.True(t, errors.Is(err, apperrors.ErrTokenExpired))
}

func TestParseTokenWrongSecret(t *testing.T) {
	m := newTestManager()
	pair, err := m.GenerateToken(42, "reader@example.com", "MEMBER")
	require.NoError(t, err)

	other := NewManager("another-secret", 2*time.Hour, 7*24*time.Hour)
	_, err = other.ParseToken(pair.AccessToken)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidToken))
}

func TestParseTokenGarbage(t *testing.T) {
	m := newTestManager()

	_, err := m.ParseToken("not.a.token")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidToken))

	_, err = m.ParseToken("")
	assert.Error(t, err)
}

func TestRefreshAccessToken(t *testing.T) {
	m := newTestManager()
	pair, err := m.GenerateToken(42, "reader@example.com", "ADMIN")
	require.NoError(t, err)

	newToken, err := m.RefreshAccessToken(pair.RefreshToken)
	require.NoError(t, err)

	claims, err := m.ParseToken(newToken)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
}
