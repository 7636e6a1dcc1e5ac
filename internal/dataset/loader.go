// Groupscope - Chat Group Member Profiling Dashboard
// Copyright 2026 X. Fang (xlfang)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/xlfang/groupscope

// Package dataset loads and normalizes the precomputed user-profiling
// document that the dashboard presents. The document is produced by an
// external offline pipeline and fetched exactly once at startup; there is
// no retry and no refresh. A failed load leaves the server degraded until
// restart.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/xlfang/groupscope/internal/logging"
	"github.com/xlfang/groupscope/internal/models"
)

// ErrLoad is the sentinel wrapped by every load failure.
var ErrLoad = errors.New("dataset load failed")

// LoadError carries the human-readable cause surfaced to the user when the
// startup fetch fails.
type LoadError struct {
	Source string
	Cause  error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	return fmt.Sprintf("dataset load failed for %s: %v", e.Source, e.Cause)
}

// Unwrap makes errors.Is(err, ErrLoad) hold.
func (e *LoadError) Unwrap() error { return ErrLoad }

// document is the top-level shape of the profiling JSON.
type document struct {
	Stats models.DatasetStats `json:"stats"`
	Users []*models.User      `json:"users"`
}

const defaultTimeout = 30 * time.Second

// Load fetches the profiling document from source (file path or http(s)
// URL) within timeout, parses it, and normalizes every user record. On any
// failure it returns a *LoadError; the caller must not initialize the view
// controller in that case.
func Load(ctx context.Context, source string, timeout time.Duration) (*Collection, error) {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	raw, err := fetch(ctx, source)
	if err != nil {
		return nil, &LoadError{Source: source, Cause: err}
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &LoadError{Source: source, Cause: fmt.Errorf("malformed JSON: %w", err)}
	}

	col := newCollection(doc)
	logging.Info().
		Str("source", source).
		Int("users", col.Len()).
		Int("groups", len(col.Groups())).
		Msg("dataset loaded")
	return col, nil
}

func fetch(ctx context.Context, source string) ([]byte, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, err
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %s", resp.Status)
		}
		return io.ReadAll(resp.Body)
	}
	return os.ReadFile(source)
}

// normalizeUser applies defaults once at ingestion so downstream code never
// repeats optional-field handling: zero counters, "unknown" labels, a
// non-nil dimension map, and a group set cleansed of placeholder entries.
func normalizeUser(u *models.User) {
	if u.Nickname == "" {
		u.Nickname = models.UnknownCategory
	}
	if u.MainGroup == "" || isPlaceholder(u.MainGroup) {
		u.MainGroup = models.UnknownCategory
	}
	if u.MessageCount < 0 {
		u.MessageCount = 0
	}
	if u.AvgMessageLength < 0 {
		u.AvgMessageLength = 0
	}

	groups := u.AllGroups[:0]
	for _, g := range u.AllGroups {
		if g != "" && !isPlaceholder(g) && strings.TrimSpace(g) != "" {
			groups = append(groups, g)
		}
	}
	if len(groups) == 0 && u.MainGroup != models.UnknownCategory {
		groups = append(groups, u.MainGroup)
	}
	u.AllGroups = groups

	if u.Dimensions == nil {
		u.Dimensions = make(map[string]*models.Classification)
	}
	for _, c := range u.Dimensions {
		if c == nil {
			continue
		}
		// Older records key the message_volume category as "level".
		if c.Type == "" && c.Level != "" {
			c.Type = c.Level
		}
		if c.Type == "" {
			c.Type = models.UnknownCategory
		}
	}
}

// isPlaceholder matches the literal "NaN" strings the offline pipeline
// leaves behind for missing group names.
func isPlaceholder(s string) bool {
	return s == "NaN" || s == "nan"
}
