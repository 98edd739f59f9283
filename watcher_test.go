package dompet_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rakadenta/dompet"
)

func TestWatchTokenFile(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return base }

	t.Run("external token removal collapses the session", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "token")
		store := dompet.NewFileStore(path)
		require.NoError(t, store.Set(tokenExpiringAt(t, base.Add(time.Hour))))

		ctrl, _ := newTestController(t, store, clock)
		require.True(t, ctrl.Authenticated())

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		require.NoError(t, dompet.WatchTokenFile(ctx, path, ctrl, nil))

		// Another process signs out by clearing the shared token file.
		require.NoError(t, store.Clear())

		require.Eventually(t, func() bool {
			return !ctrl.Authenticated()
		}, 3*time.Second, 10*time.Millisecond)
	})

	t.Run("external login flips the session in", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "token")
		store := dompet.NewFileStore(path)

		ctrl, nav := newTestController(t, store, clock)
		require.False(t, ctrl.Authenticated())

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		require.NoError(t, dompet.WatchTokenFile(ctx, path, ctrl, nil))

		// Another process signs in and writes the shared token file.
		require.NoError(t, store.Set(tokenExpiringAt(t, base.Add(time.Hour))))

		require.Eventually(t, func() bool {
			return ctrl.Authenticated()
		}, 3*time.Second, 10*time.Millisecond)
		require.Empty(t, nav.calls())
	})

	t.Run("missing parent dir fails setup", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "does", "not", "exist", "token")
		ctrl, _ := newTestController(t, dompet.NewMemoryStore(), clock)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		require.Error(t, dompet.WatchTokenFile(ctx, path, ctrl, nil))
	})
}
