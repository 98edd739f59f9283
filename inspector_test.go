package dompet_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rakadenta/dompet"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-signing-key"))
	require.NoError(t, err)
	return signed
}

func tokenExpiringAt(t *testing.T, exp time.Time) string {
	t.Helper()
	return signedToken(t, jwt.MapClaims{
		"sub": "amira",
		"exp": exp.Unix(),
	})
}

func TestInspectorIsExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	t.Run("missing token reports expired without error", func(t *testing.T) {
		store := dompet.NewMemoryStore()
		inspector := dompet.NewInspector(store, dompet.WithInspectorClock(clock))

		assert.True(t, inspector.IsExpired())
	})

	t.Run("expired token is reported and cleared", func(t *testing.T) {
		store := dompet.NewMemoryStore()
		require.NoError(t, store.Set(tokenExpiringAt(t, now.Add(-time.Minute))))
		inspector := dompet.NewInspector(store, dompet.WithInspectorClock(clock))

		assert.True(t, inspector.IsExpired())

		token, err := store.Get()
		require.NoError(t, err)
		assert.Empty(t, token, "expired token must be removed from storage")
	})

	t.Run("valid token is untouched byte for byte", func(t *testing.T) {
		store := dompet.NewMemoryStore()
		original := tokenExpiringAt(t, now.Add(time.Hour))
		require.NoError(t, store.Set(original))
		inspector := dompet.NewInspector(store, dompet.WithInspectorClock(clock))

		assert.False(t, inspector.IsExpired())

		token, err := store.Get()
		require.NoError(t, err)
		assert.Equal(t, original, token)
	})

	t.Run("malformed token is reported expired and cleared", func(t *testing.T) {
		store := dompet.NewMemoryStore()
		require.NoError(t, store.Set("not-a-jwt-at-all"))
		inspector := dompet.NewInspector(store, dompet.WithInspectorClock(clock))

		assert.True(t, inspector.IsExpired())

		token, err := store.Get()
		require.NoError(t, err)
		assert.Empty(t, token)
	})

	t.Run("token without expiry claim fails closed and is cleared", func(t *testing.T) {
		store := dompet.NewMemoryStore()
		require.NoError(t, store.Set(signedToken(t, jwt.MapClaims{"sub": "amira"})))
		inspector := dompet.NewInspector(store, dompet.WithInspectorClock(clock))

		assert.True(t, inspector.IsExpired())

		token, err := store.Get()
		require.NoError(t, err)
		assert.Empty(t, token)
	})

	t.Run("expiry equal to current time is not yet expired", func(t *testing.T) {
		store := dompet.NewMemoryStore()
		require.NoError(t, store.Set(tokenExpiringAt(t, now)))
		inspector := dompet.NewInspector(store, dompet.WithInspectorClock(clock))

		assert.False(t, inspector.IsExpired())
	})

	t.Run("repeated checks on a valid token stay cheap and stable", func(t *testing.T) {
		store := dompet.NewMemoryStore()
		require.NoError(t, store.Set(tokenExpiringAt(t, now.Add(time.Hour))))
		inspector := dompet.NewInspector(store, dompet.WithInspectorClock(clock))

		for i := 0; i < 5; i++ {
			assert.False(t, inspector.IsExpired())
		}
	})
}

func TestInspectorClaims(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	exp := now.Add(2 * time.Hour)

	t.Run("subject and expiry are decoded", func(t *testing.T) {
		store := dompet.NewMemoryStore()
		require.NoError(t, store.Set(tokenExpiringAt(t, exp)))
		inspector := dompet.NewInspector(store)

		claims, err := inspector.Claims()
		require.NoError(t, err)
		assert.Equal(t, "amira", claims.Subject)
		assert.Equal(t, exp.Unix(), claims.ExpiresAt.Unix())
	})

	t.Run("missing token", func(t *testing.T) {
		inspector := dompet.NewInspector(dompet.NewMemoryStore())

		_, err := inspector.Claims()
		assert.ErrorIs(t, err, dompet.ErrNoToken)
	})

	t.Run("malformed token does not clear the store", func(t *testing.T) {
		store := dompet.NewMemoryStore()
		require.NoError(t, store.Set("garbage"))
		inspector := dompet.NewInspector(store)

		_, err := inspector.Claims()
		assert.ErrorIs(t, err, dompet.ErrTokenMalformed)

		token, getErr := store.Get()
		require.NoError(t, getErr)
		assert.Equal(t, "garbage", token)
	})
}
