// Groupscope - Chat Group Member Profiling Dashboard
// Copyright 2026 X. Fang (xlfang)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/xlfang/groupscope

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserInGroup(t *testing.T) {
	u := &User{
		MainGroup: "golang",
		AllGroups: []string{"golang", "devops"},
	}

	tests := []struct {
		name  string
		group string
		want  bool
	}{
		{"main group match", "golang", true},
		{"all groups match", "devops", true},
		{"no match", "rustaceans", false},
		{"empty group", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, u.InGroup(tt.group))
		})
	}
}

func TestUserInGroupMainOnly(t *testing.T) {
	u := &User{MainGroup: "golang"}
	assert.True(t, u.InGroup("golang"))
	assert.False(t, u.InGroup("devops"))
}

func TestUserGroupCount(t *testing.T) {
	assert.Equal(t, 1, (&User{}).GroupCount())
	assert.Equal(t, 2, (&User{AllGroups: []string{"a", "b"}}).GroupCount())
}

func TestUserClassification(t *testing.T) {
	u := &User{Dimensions: map[string]*Classification{
		"message_volume": {Type: "major speaker"},
	}}

	c := u.Classification(DimensionMessageVolume)
	assert.NotNil(t, c)
	assert.Equal(t, "major speaker", c.Type)

	assert.Nil(t, u.Classification(DimensionTimePattern))
	assert.Nil(t, (&User{}).Classification(DimensionMessageVolume))
}

func TestDimensionValid(t *testing.T) {
	for _, d := range AnalysisDimensions() {
		assert.True(t, d.Valid(), d)
	}
	assert.True(t, DimensionOverview.Valid())
	assert.False(t, Dimension("sentiment").Valid())
	assert.False(t, Dimension("").Valid())
}

func TestStatsBundleEmpty(t *testing.T) {
	assert.True(t, (&StatsBundle{}).Empty())
	assert.False(t, (&StatsBundle{TotalUsers: 3}).Empty())
}
