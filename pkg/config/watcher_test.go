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

func writeConfigFile(t *testing.T, path, addr string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("server:\n  addr: \""+addr+"\"\n"), 0o644))
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeConfigFile(t, path, ":8080")

	cfg, err := Load(path)
	require.NoError(t, err)
	rt := NewRuntime(cfg)

	w, err := NewWatcher(path, rt, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	// Give the watch loop a moment to start before the write.
	time.Sleep(50 * time.Millisecond)
	writeConfigFile(t, path, ":9090")

	require.Eventually(t, func() bool {
		return rt.Snapshot().Server.Addr == ":9090"
	}, 5*time.Second, 50*time.Millisecond)
}

func TestWatcherKeepsPreviousConfigOnBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeConfigFile(t, path, ":8080")

	cfg, err := Load(path)
	require.NoError(t, err)
	rt := NewRuntime(cfg)

	w, err := NewWatcher(path, rt, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("server: [broken"), 0o644))

	// The reload fails and the previous config stays live.
	time.Sleep(500 * time.Millisecond)
	assert.Equal(t, ":8080", rt.Snapshot().Server.Addr)
}

func TestNewWatcherMissingDirectory(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "nope", "config.yaml"), NewRuntime(DefaultConfig()), nil)
	assert.Error(t, err)
}
