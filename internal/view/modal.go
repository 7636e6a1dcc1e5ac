// Groupscope - Chat Group Member Profiling Dashboard
// Copyright 2026 X. Fang (xlfang)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/xlfang/groupscope

package view

import (
	"fmt"

	"github.com/xlfang/groupscope/internal/dataset"
	"github.com/xlfang/groupscope/internal/models"
	"github.com/xlfang/groupscope/internal/stats"
)

// ModalPresenter owns the single detail dialog. Opening a new dialog
// closes the previous one first, so at most one is ever live.
type ModalPresenter struct {
	open *models.UserDetail
}

// NewModalPresenter creates a presenter with no open dialog.
func NewModalPresenter() *ModalPresenter {
	return &ModalPresenter{}
}

// Show looks up id in the full collection and opens the detail dialog. A
// missing user returns an error and leaves no dialog open.
func (m *ModalPresenter) Show(col *dataset.Collection, id string) (*models.UserDetail, error) {
	u, ok := col.ByID(id)
	if !ok {
		return nil, fmt.Errorf("user %q not found", id)
	}

	m.Close()

	detail := &models.UserDetail{
		ID:             u.ID,
		Nickname:       u.Nickname,
		MainGroup:      u.MainGroup,
		AllGroups:      u.AllGroups,
		MessageCount:   u.MessageCount,
		AvgLength:      u.AvgMessageLength,
		GroupCount:     u.GroupCount(),
		Classification: make(map[string]string, len(u.Dimensions)),
	}

	for _, dim := range models.AnalysisDimensions() {
		if c := u.Classification(dim); c != nil && c.Type != "" {
			detail.Classification[dim.String()] = c.Type
		} else if dim == models.DimensionSocialBehavior {
			archetype, _ := stats.SocialCategory(u)
			detail.Classification[dim.String()] = archetype
		} else {
			detail.Classification[dim.String()] = models.UnknownCategory
		}
	}

	if c := u.Classification(models.DimensionMemberJoinTime); c != nil {
		detail.JoinDate = c.JoinDate
		detail.DaysSinceJoin = c.DaysSinceJoin
		detail.ActivityLevel = c.ActivityLevel
	}

	detail.Tags = u.Profile.Tags
	detail.Description = u.Profile.Description
	detail.ActiveScore = u.Profile.ActiveScore

	m.open = detail
	return detail, nil
}

// Close dismisses the open dialog, if any.
func (m *ModalPresenter) Close() {
	m.open = nil
}

// Open returns the currently open dialog payload, if one exists.
func (m *ModalPresenter) Open() (*models.UserDetail, bool) {
	if m.open == nil {
		return nil, false
	}
	return m.open, true
}
