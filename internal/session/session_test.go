package session

import (
	"io"
	"log/slog"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GenaM19021977/teplomarket/internal/kvstore"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func accessTokenFor(t *testing.T, userID uint) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return raw
}

func TestStore_SetAndReadTokens(t *testing.T) {
	t.Parallel()

	kv := kvstore.NewMemory()
	s := New(kv, testLogger())

	assert.False(t, s.IsAuthenticated())

	s.SetTokens(accessTokenFor(t, 5), "refresh-5")

	raw, ok := s.AccessToken()
	require.True(t, ok)
	assert.NotEmpty(t, raw)
	assert.True(t, s.IsAuthenticated())

	stored, ok := kv.Get(RefreshTokenKey)
	require.True(t, ok)
	assert.Equal(t, "refresh-5", stored)
}

func TestStore_UserID(t *testing.T) {
	t.Parallel()

	s := New(kvstore.NewMemory(), testLogger())
	s.SetTokens(accessTokenFor(t, 12), "")

	id, ok := s.UserID()
	require.True(t, ok)
	assert.Equal(t, uint(12), id)
}

func TestStore_State(t *testing.T) {
	t.Parallel()

	s := New(kvstore.NewMemory(), testLogger())
	assert.Equal(t, State{}, s.State())

	s.SetTokens(accessTokenFor(t, 3), "")
	assert.Equal(t, State{Authenticated: true, UserID: 3}, s.State())

	// токен есть, но user_id из него не извлекается
	s.SetTokens("opaque-token", "")
	assert.Equal(t, State{Authenticated: true}, s.State())
}

func TestStore_Clear(t *testing.T) {
	t.Parallel()

	kv := kvstore.NewMemory()
	s := New(kv, testLogger())
	s.SetTokens(accessTokenFor(t, 1), "refresh-1")

	s.Clear()

	assert.False(t, s.IsAuthenticated())
	_, ok := kv.Get(RefreshTokenKey)
	assert.False(t, ok)
}

func TestStaticToken(t *testing.T) {
	t.Parallel()

	raw, ok := StaticToken("abc").AccessToken()
	require.True(t, ok)
	assert.Equal(t, "abc", raw)

	_, ok = StaticToken("").AccessToken()
	assert.False(t, ok)
}
