package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	w, err := NewWatcher(path)
	require.NoError(t, err)
	defer w.Close()

	type result struct {
		s   Settings
		err error
	}
	results := make(chan result, 16)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(s Settings, err error) {
			results <- result{s, err}
		})
	}()

	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), "other.toml"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("tab_size = 7\n"), 0o644))

	timeout := time.After(5 * time.Second)
	for {
		select {
		case r := <-results:
			if r.err != nil || r.s.TabSize != 7 {
				continue // The file may be seen before it is fully written
			}
			cancel()
			assert.ErrorIs(t, <-done, context.Canceled)
			return
		case <-timeout:
			cancel()
			t.Fatal("settings were not reloaded")
		}
	}
}

func TestNewWatcherMissingDirectory(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "absent", "config.toml"))
	assert.Error(t, err)
}
