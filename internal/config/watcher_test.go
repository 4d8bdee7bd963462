package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"folderpick/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("panel:\n  default_view: grid\n"), 0644))

	w, err := config.NewWatcher(path)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()
	assert.True(t, w.IsRunning())
	assert.Error(t, w.Start(), "second start should fail")

	// Allow fsnotify to settle
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("panel:\n  default_view: list\n"), 0644))

	timeout := time.After(3 * time.Second)
	for {
		select {
		case cfg := <-w.Updates():
			if cfg.Panel.DefaultView == "list" {
				return
			}
		case <-timeout:
			t.Fatal("Timeout waiting for config reload")
		}
	}
}

func TestWatcherIgnoresOtherFilesAndBadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0644))

	w, err := config.NewWatcher(path)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0644))
	require.NoError(t, os.WriteFile(path, []byte("panel:\n  default_view: carousel\n"), 0644))

	select {
	case cfg := <-w.Updates():
		t.Fatalf("unexpected reload: %+v", cfg.Panel)
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatcherMissingDirectory(t *testing.T) {
	_, err := config.NewWatcher(filepath.Join(t.TempDir(), "missing", "config.yaml"))
	assert.Error(t, err)
}

func TestWatcherStop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	w, err := config.NewWatcher(path)
	require.NoError(t, err)
	require.NoError(t, w.Start())

	w.Stop()
	assert.False(t, w.IsRunning())
	w.Stop() // idempotent
}
