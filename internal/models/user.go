// Groupscope - Chat Group Member Profiling Dashboard
// Copyright 2026 X. Fang (xlfang)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/xlfang/groupscope

// Package models defines the core data structures shared across Groupscope:
// the user record shape of the profiling dataset, the analysis dimension
// enum, the derived statistics bundle, and the chart/table view payloads.
package models

// User is one chat-group member from the profiling dataset.
//
// Field presence in the source document is unreliable; the dataset loader
// normalizes every record once at ingestion so downstream code can assume
// defaults are already applied (zero counters, "unknown" labels, non-nil
// dimension map).
type User struct {
	ID               string                     `json:"user_id"`
	Nickname         string                     `json:"nickname"`
	MainGroup        string                     `json:"main_group"`
	AllGroups        []string                   `json:"all_groups"`
	MessageCount     int                        `json:"message_count"`
	AvgMessageLength float64                    `json:"avg_message_length"`
	Dimensions       map[string]*Classification `json:"dimensions"`
	Profile          ProfileSummary             `json:"profile_summary"`
}

// Classification is the per-dimension classification object attached to a
// user. Only a subset of fields is populated depending on the dimension:
// message_volume carries Rank, time_pattern carries Distribution/Hourly/
// PeakHours, social_behavior carries Metrics and Confidence, and
// member_join_time carries the tenure fields synthesized by the enricher.
type Classification struct {
	Type          string             `json:"type"`
	Rank          int                `json:"rank,omitempty"`
	Confidence    float64            `json:"confidence,omitempty"`
	Score         float64            `json:"score,omitempty"`
	Distribution  map[string]float64 `json:"distribution,omitempty"`
	Metrics       map[string]float64 `json:"metrics,omitempty"`
	Hourly        map[string]int     `json:"hourly_stats,omitempty"`
	PeakHours     []int              `json:"peak_hours,omitempty"`
	JoinDate      string             `json:"join_date,omitempty"`
	DaysSinceJoin int                `json:"days_since_join,omitempty"`
	JoinPeriod    string             `json:"join_period,omitempty"`
	ActivityLevel string             `json:"activity_level,omitempty"`

	// Level is a legacy alias for Type used by older message_volume
	// records. The loader folds it into Type during normalization.
	Level string `json:"level,omitempty"`
}

// ProfileSummary is the free-text portrait attached to a user.
type ProfileSummary struct {
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	ActiveScore float64  `json:"active_score"`
}

// Classification returns the user's classification for the given dimension,
// or nil when the user has none.
func (u *User) Classification(d Dimension) *Classification {
	if u.Dimensions == nil {
		return nil
	}
	return u.Dimensions[string(d)]
}

// InGroup reports whether the user belongs to the named group, either as
// their main group or anywhere in their group set.
func (u *User) InGroup(group string) bool {
	if u.MainGroup == group {
		return true
	}
	for _, g := range u.AllGroups {
		if g == group {
			return true
		}
	}
	return false
}

// GroupCount returns the number of groups the user participates in,
// never less than 1.
func (u *User) GroupCount() int {
	if len(u.AllGroups) == 0 {
		return 1
	}
	return len(u.AllGroups)
}

// DatasetStats holds the aggregate counters shipped at the top level of the
// profiling document.
type DatasetStats struct {
	TotalUsers    int    `json:"total_users"`
	TotalMessages int    `json:"total_messages"`
	TotalGroups   int    `json:"total_groups"`
	UpdateTime    string `json:"update_time"`
}
