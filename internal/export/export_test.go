// Groupscope - Chat Group Member Profiling Dashboard
// Copyright 2026 X. Fang (xlfang)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/xlfang/groupscope

package export

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xlfang/groupscope/internal/models"
	"github.com/xlfang/groupscope/internal/view"
)

var exportedAt = time.Date(2025, 9, 15, 10, 30, 0, 0, time.UTC)

func sampleSnapshot() view.Snapshot {
	return view.Snapshot{
		Dimension: models.DimensionMessageVolume,
		Group:     "golang",
		Bundle: &models.StatsBundle{
			Type:       models.DimensionMessageVolume,
			TotalUsers: 2,
		},
		Users: []*models.User{
			{ID: "1", Nickname: "alice", MainGroup: "golang", MessageCount: 10,
				Dimensions: map[string]*models.Classification{}},
			{ID: "2", Nickname: "bob", MainGroup: "golang", MessageCount: 5,
				Dimensions: map[string]*models.Classification{}},
		},
	}
}

func TestJSONExport(t *testing.T) {
	name, data, err := JSON(sampleSnapshot(), exportedAt)
	require.NoError(t, err)

	assert.Equal(t, "profile_message_volume_2025-09-15.json", name)

	var doc Document
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "message_volume", doc.Dimension)
	assert.Equal(t, "golang", doc.Group)
	assert.Equal(t, 2, doc.Stats.TotalUsers)
	assert.Len(t, doc.Users, 2)
}

func TestCSVExport(t *testing.T) {
	name, data, err := CSV(sampleSnapshot(), exportedAt)
	require.NoError(t, err)

	assert.Equal(t, "profile_message_volume_2025-09-15.csv", name)

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)

	cols := view.Columns(models.DimensionMessageVolume)
	require.Len(t, records, 3, "header plus one record per user")
	assert.Len(t, records[0], len(cols))
	assert.Equal(t, "Nickname", records[0][1])
	assert.Equal(t, "alice", records[1][1], "rows ranked by message count")
}

func TestCSVExportEmptySnapshot(t *testing.T) {
	snap := view.Snapshot{
		Dimension: models.DimensionContentType,
		Bundle:    &models.StatsBundle{Type: models.DimensionContentType},
	}

	_, data, err := CSV(snap, exportedAt)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1, "header only")
}
