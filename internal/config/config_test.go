// Groupscope - Chat Group Member Profiling Dashboard
// Copyright 2026 X. Fang (xlfang)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/xlfang/groupscope

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir changes into dir for the duration of the test; it stands in for
// t.Chdir, which requires Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
}

func TestLoadDefaults(t *testing.T) {
	// Run from a temp dir so no stray config.yaml is picked up.
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8490, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:8490", cfg.Server.Addr())
	assert.Equal(t, 600, cfg.Server.RateLimit)
	assert.Equal(t, "data/analytics_with_content_types.json", cfg.Dataset.Source)
	assert.Equal(t, 30*time.Second, cfg.Dataset.Timeout)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	yaml := `
server:
  port: 9000
dataset:
  source: /data/profiles.json
logging:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "/data/profiles.json", cfg.Dataset.Source)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestEnvOverridesFile(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("GROUPSCOPE_SERVER__PORT", "7777")
	t.Setenv("GROUPSCOPE_LOGGING__LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7777, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadInvalidPort(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("GROUPSCOPE_SERVER__PORT", "99999")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadInvalidLogLevel(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("GROUPSCOPE_LOGGING__LEVEL", "loud")

	_, err := Load()
	assert.Error(t, err)
}

func TestConfigPathEnvVar(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 8080\n"), 0o600))
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestAsOfTime(t *testing.T) {
	d := DatasetConfig{AsOf: "2025-09-01"}
	assert.Equal(t, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), d.AsOfTime())

	// Empty and malformed fall back to roughly now.
	assert.WithinDuration(t, time.Now().UTC(), DatasetConfig{}.AsOfTime(), time.Minute)
}
