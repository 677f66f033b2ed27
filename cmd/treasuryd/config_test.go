package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/treasury/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	home := t.TempDir()
	file := "backend: bolt\nlog-level: debug\nbech32-prefix: tre\n"
	require.NoError(t, os.WriteFile(filepath.Join(home, "treasury.yaml"), []byte(file), 0o600))

	v := newViper()
	v.Set(keyHome, home)
	cfg, err := loadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, home, cfg.Home)
	assert.Equal(t, "bolt", cfg.Backend)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "tre", cfg.Bech32Prefix)
}

func TestLoadConfigDefaults(t *testing.T) {
	v := newViper()
	v.Set(keyHome, t.TempDir())
	cfg, err := loadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "iavl", cfg.Backend)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Debug)
}

func TestLoadConfigEnv(t *testing.T) {
	t.Setenv("TREASURY_BACKEND", "memory")
	t.Setenv("TREASURY_LOG_LEVEL", "warn")

	v := newViper()
	v.Set(keyHome, t.TempDir())
	cfg, err := loadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Backend)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadConfigUnknownBackend(t *testing.T) {
	v := newViper()
	v.Set(keyHome, t.TempDir())
	v.Set(keyBackend, "leveldb")
	_, err := loadConfig(v)
	assert.True(t, errors.ErrInput.Is(err), "got %v", err)
}
