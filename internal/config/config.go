// Package config reads fexp settings from the environment, after loading
// any .env files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"

	"github.com/pavanmanishd/fexp/arena"
	"github.com/pavanmanishd/fexp/tctx"
)

// Environment variables.
const (
	EnvArenaMax    = "FEXP_ARENA_MAX"
	EnvCommitSize  = "FEXP_COMMIT_SIZE"
	EnvScratchSize = "FEXP_SCRATCH_SIZE"
	EnvLogLevel    = "FEXP_LOG_LEVEL"
	EnvRoot        = "FEXP_ROOT"
)

// Config holds the settings the CLI builds its arenas from.
type Config struct {
	ArenaMax    int
	CommitSize  int
	ScratchSize int
	LogLevel    slog.Level
	Root        string
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		ArenaMax:    arena.DefaultMax,
		CommitSize:  arena.DefaultCommitSize,
		ScratchSize: tctx.DefaultScratchSize,
		LogLevel:    slog.LevelWarn,
	}
}

// Load loads files (".env" when none are given) into the environment without
// overriding variables that are already set, then reads the settings.
// Missing files are not an error.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: %s: %w", f, err)
		}
	}
	return FromEnv()
}

// FromEnv reads the settings from the process environment.
func FromEnv() (Config, error) {
	c := Default()
	var err error
	if c.ArenaMax, err = sizeEnv(EnvArenaMax, c.ArenaMax); err != nil {
		return c, err
	}
	if c.CommitSize, err = sizeEnv(EnvCommitSize, c.CommitSize); err != nil {
		return c, err
	}
	if c.ScratchSize, err = sizeEnv(EnvScratchSize, c.ScratchSize); err != nil {
		return c, err
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		if err := c.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return c, fmt.Errorf("config: %s: %w", EnvLogLevel, err)
		}
	}
	c.Root = os.Getenv(EnvRoot)
	return c, nil
}

func sizeEnv(key string, def int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def, nil
	}
	n, err := ParseSize(v)
	if err != nil {
		return def, fmt.Errorf("config: %s: %w", key, err)
	}
	return n, nil
}

var units = []struct {
	suffix string
	mult   int
}{
	{"KiB", 1 << 10}, {"MiB", 1 << 20}, {"GiB", 1 << 30},
	{"K", 1 << 10}, {"M", 1 << 20}, {"G", 1 << 30},
}

// ParseSize parses a positive byte count with an optional K, M or G suffix
// (binary multiples; "KiB" style is accepted too).
func ParseSize(s string) (int, error) {
	s = strings.TrimSpace(s)
	mult := 1
	for _, u := range units {
		if rest, ok := strings.CutSuffix(s, u.suffix); ok {
			s, mult = strings.TrimSpace(rest), u.mult
			break
		}
	}
	n, err := cast.ToIntE(s)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("size %q must be positive", s)
	}
	if n > int(^uint(0)>>1)/mult {
		return 0, fmt.Errorf("size %q overflows", s)
	}
	return n * mult, nil
}
