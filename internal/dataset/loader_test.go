// Groupscope - Chat Group Member Profiling Dashboard
// Copyright 2026 X. Fang (xlfang)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/xlfang/groupscope

package dataset

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xlfang/groupscope/internal/models"
)

const sampleDoc = `{
	"stats": {"total_users": 3, "total_messages": 160, "total_groups": 2},
	"users": [
		{"user_id": "1", "nickname": "alice", "main_group": "golang",
		 "all_groups": ["golang", "devops"], "message_count": 120,
		 "avg_message_length": 24.5,
		 "dimensions": {"message_volume": {"level": "major speaker"}}},
		{"user_id": "2", "nickname": "", "main_group": "NaN",
		 "all_groups": ["golang", "NaN", ""], "message_count": 40},
		{"user_id": "3", "nickname": "carol", "main_group": "devops",
		 "message_count": -5}
	]
}`

func writeSample(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "analytics.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFromFile(t *testing.T) {
	col, err := Load(context.Background(), writeSample(t, sampleDoc), time.Second)
	require.NoError(t, err)

	assert.Equal(t, 3, col.Len())
	assert.Equal(t, 3, col.Stats.TotalUsers)

	u, ok := col.ByID("1")
	require.True(t, ok)
	assert.Equal(t, "alice", u.Nickname)
	assert.Equal(t, 120, u.MessageCount)
}

func TestLoadFromHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleDoc))
	}))
	defer srv.Close()

	col, err := Load(context.Background(), srv.URL, time.Second)
	require.NoError(t, err)
	assert.Equal(t, 3, col.Len())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.json"), time.Second)
	require.Error(t, err)

	assert.True(t, errors.Is(err, ErrLoad))
	var lerr *LoadError
	require.True(t, errors.As(err, &lerr))
	assert.Contains(t, lerr.Source, "nope.json")
}

func TestLoadMalformedJSON(t *testing.T) {
	_, err := Load(context.Background(), writeSample(t, "{not json"), time.Second)
	assert.True(t, errors.Is(err, ErrLoad))
}

func TestLoadHTTPErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := Load(context.Background(), srv.URL, time.Second)
	assert.True(t, errors.Is(err, ErrLoad))
}

func TestNormalizationDefaults(t *testing.T) {
	col, err := Load(context.Background(), writeSample(t, sampleDoc), time.Second)
	require.NoError(t, err)

	u, ok := col.ByID("2")
	require.True(t, ok)
	assert.Equal(t, models.UnknownCategory, u.Nickname)
	assert.Equal(t, models.UnknownCategory, u.MainGroup)
	assert.Equal(t, []string{"golang"}, u.AllGroups, "placeholder and empty groups removed")
	assert.NotNil(t, u.Dimensions)

	neg, ok := col.ByID("3")
	require.True(t, ok)
	assert.Equal(t, 0, neg.MessageCount, "negative counters clamped")
	assert.Equal(t, []string{"devops"}, neg.AllGroups, "main group backfills empty group set")
}

func TestNormalizationFoldsLegacyLevel(t *testing.T) {
	col, err := Load(context.Background(), writeSample(t, sampleDoc), time.Second)
	require.NoError(t, err)

	u, _ := col.ByID("1")
	c := u.Classification(models.DimensionMessageVolume)
	require.NotNil(t, c)
	assert.Equal(t, "major speaker", c.Type)
}

func TestCollectionGroups(t *testing.T) {
	col, err := Load(context.Background(), writeSample(t, sampleDoc), time.Second)
	require.NoError(t, err)

	assert.Equal(t, []string{"devops", "golang"}, col.Groups())
	assert.True(t, col.HasGroup("golang"))
	assert.False(t, col.HasGroup("NaN"))
}

func TestFilterByGroup(t *testing.T) {
	col, err := Load(context.Background(), writeSample(t, sampleDoc), time.Second)
	require.NoError(t, err)

	all := col.FilterByGroup("")
	assert.Len(t, all, 3)

	golang := col.FilterByGroup("golang")
	require.Len(t, golang, 2)
	assert.Equal(t, "1", golang[0].ID)
	assert.Equal(t, "2", golang[1].ID)

	assert.Empty(t, col.FilterByGroup("rustaceans"))
}
