// Groupscope - Chat Group Member Profiling Dashboard
// Copyright 2026 X. Fang (xlfang)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/xlfang/groupscope

// Package config holds application configuration loaded via Koanf v2.
//
// Loading order (highest priority wins):
//  1. Built-in defaults
//  2. Optional YAML config file (config.yaml, or GROUPSCOPE_CONFIG_PATH)
//  3. Environment variables prefixed GROUPSCOPE_ (GROUPSCOPE_SERVER__PORT
//     maps to server.port)
//
// Config is immutable after Load() and safe for concurrent reads.
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for the Groupscope server.
type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Dataset DatasetConfig `koanf:"dataset"`
	Logging LoggingConfig `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	// RateLimit is requests per minute per client IP on API routes.
	RateLimit int `koanf:"rate_limit" validate:"min=1"`
	// CORSOrigins lists allowed origins; "*" allows all.
	CORSOrigins []string `koanf:"cors_origins"`
}

// DatasetConfig describes the single profiling document consumed at
// startup. Source may be a local file path or an http(s) URL.
type DatasetConfig struct {
	Source string `koanf:"source" validate:"required"`
	// Timeout bounds the startup fetch. There is no retry; a failed load
	// leaves the server in a degraded state until restart.
	Timeout time.Duration `koanf:"timeout"`
	// AsOf is the reference date (YYYY-MM-DD) for tenure derivation.
	// Empty means the current date.
	AsOf string `koanf:"as_of" validate:"omitempty,datetime=2006-01-02"`
}

// LoggingConfig holds log level and format settings.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"omitempty,oneof=trace debug info warn error fatal disabled"`
	Format string `koanf:"format" validate:"omitempty,oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// AsOfTime parses the configured as-of date, falling back to now.
func (d DatasetConfig) AsOfTime() time.Time {
	if d.AsOf == "" {
		return time.Now().UTC()
	}
	t, err := time.Parse("2006-01-02", d.AsOf)
	if err != nil {
		return time.Now().UTC()
	}
	return t
}
