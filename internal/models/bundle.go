// Groupscope - Chat Group Member Profiling Dashboard
// Copyright 2026 X. Fang (xlfang)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/xlfang/groupscope

package models

// StatsBundle is the ephemeral aggregate result of running the statistics
// engine for one dimension over the currently filtered user set. It is
// recomputed on every dimension or filter change and discarded once
// rendered; it is never persisted.
type StatsBundle struct {
	Type  Dimension `json:"type"`
	Title string    `json:"title"`

	TotalUsers    int     `json:"total_users"`
	TotalMessages int     `json:"total_messages"`
	AvgMessages   float64 `json:"avg_messages"`

	// Distribution maps category label to user count. Users without a
	// classification land in the explicit UnknownCategory bucket.
	Distribution map[string]int `json:"distribution"`

	// Percentages mirrors Distribution as count/total*100, one decimal.
	Percentages map[string]float64 `json:"percentages"`

	// TopUsers holds up to 10 entries ranked by the dimension's sort key,
	// ties broken by original collection order.
	TopUsers []TopUser `json:"top_users"`

	// Hourly is the 24-slot histogram summed across the filtered set.
	// Populated for time_pattern only.
	Hourly []int `json:"hourly,omitempty"`
	// PeakHour is the busiest slot of Hourly. Only meaningful when Hourly
	// is populated.
	PeakHour int `json:"peak_hour,omitempty"`

	// Tenure aggregates are populated for member_join_time only.
	PeriodDistribution   map[string]int `json:"period_distribution,omitempty"`
	ActivityDistribution map[string]int `json:"activity_distribution,omitempty"`
	AvgDaysSinceJoin     float64        `json:"avg_days_since_join,omitempty"`
	VeteranStats         *SubgroupStats `json:"veteran_stats,omitempty"`
	NewcomerStats        *SubgroupStats `json:"newcomer_stats,omitempty"`

	Insights []string `json:"insights"`
}

// TopUser is one row of a top-N ranking inside a stats bundle.
type TopUser struct {
	ID       string  `json:"user_id"`
	Nickname string  `json:"nickname"`
	Count    int     `json:"count"`
	Category string  `json:"category"`
	Days     int     `json:"days,omitempty"`
	Score    float64 `json:"score,omitempty"`
}

// SubgroupStats carries per-subgroup aggregates for the veteran/newcomer
// split of the member_join_time dimension.
type SubgroupStats struct {
	Users       int       `json:"users"`
	Messages    int       `json:"messages"`
	AvgMessages float64   `json:"avg_messages"`
	TopUsers    []TopUser `json:"top_users"`
}

// Empty reports whether the bundle was computed over an empty filtered set.
func (b *StatsBundle) Empty() bool { return b.TotalUsers == 0 }
