// Groupscope - Chat Group Member Profiling Dashboard
// Copyright 2026 X. Fang (xlfang)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/xlfang/groupscope

package models

// Dimension selects which classification axis drives aggregation.
// Exactly one dimension is current at any time in the view controller.
type Dimension string

// Analysis dimensions. DimensionOverview is the landing view showing
// dataset-level counters rather than a per-user classification.
const (
	DimensionOverview       Dimension = "overview"
	DimensionMessageVolume  Dimension = "message_volume"
	DimensionContentType    Dimension = "content_type"
	DimensionTimePattern    Dimension = "time_pattern"
	DimensionSocialBehavior Dimension = "social_behavior"
	DimensionMemberJoinTime Dimension = "member_join_time"
)

// AnalysisDimensions lists the dimensions that aggregate per-user
// classifications, in tab order. Overview is excluded.
func AnalysisDimensions() []Dimension {
	return []Dimension{
		DimensionMessageVolume,
		DimensionContentType,
		DimensionTimePattern,
		DimensionSocialBehavior,
		DimensionMemberJoinTime,
	}
}

// Valid reports whether d names a known dimension (overview included).
func (d Dimension) Valid() bool {
	switch d {
	case DimensionOverview, DimensionMessageVolume, DimensionContentType,
		DimensionTimePattern, DimensionSocialBehavior, DimensionMemberJoinTime:
		return true
	}
	return false
}

// String implements fmt.Stringer.
func (d Dimension) String() string { return string(d) }

// UnknownCategory is the explicit bucket used for users that have no
// classification for the current dimension. Dropping such users would make
// distribution percentages not sum to 100%.
const UnknownCategory = "unknown"
