package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavanmanishd/fexp/internal/config"
	"github.com/pavanmanishd/fexp/plugin/psys"
)

func run(t *testing.T, args ...string) error {
	t.Helper()
	for _, k := range []string{config.EnvArenaMax, config.EnvCommitSize, config.EnvScratchSize, config.EnvLogLevel, config.EnvRoot} {
		t.Setenv(k, "")
	}
	return cliApp.Run(append([]string{"fexp", "--env", filepath.Join(t.TempDir(), "none.env")}, args...))
}

func TestGlobalFlags(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, run(t, "--arena.max", "16M", "--arena.commit", "4K", "--scratch.size", "64K",
		"--verbosity", "error", "ls", dir))
	assert.Equal(t, 16<<20, cfg.ArenaMax)
	assert.Equal(t, 4<<10, cfg.CommitSize)
	assert.Equal(t, 64<<10, cfg.ScratchSize)
}

func TestBadFlags(t *testing.T) {
	assert.Error(t, run(t, "--arena.max", "lots", "ls"))
	assert.Error(t, run(t, "--verbosity", "chatty", "ls"))
}

func TestCommands(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hi"), 0o644))
	emitter := filepath.Join(dir, "fx.psys")

	require.NoError(t, run(t, "--verbosity", "error", "ls", "--query", "a", dir))
	require.NoError(t, run(t, "--verbosity", "error", "scan", "--jobs", "2", dir, dir))
	require.NoError(t, run(t, "--verbosity", "error", "stats", dir))
	require.NoError(t, run(t, "--verbosity", "error", "open", "--frames", "10", emitter))
	info, err := os.Stat(emitter)
	require.NoError(t, err, "closing the particle plugin saves the emitter")
	assert.Equal(t, int64(psys.FileSize), info.Size())

	assert.Error(t, run(t, "open", filepath.Join(dir, "a.txt")), "no plugin for .txt")
	assert.Error(t, run(t, "open"))
	assert.Error(t, run(t, "scan"))
	assert.Error(t, run(t, "ls", filepath.Join(dir, "missing")))
}
