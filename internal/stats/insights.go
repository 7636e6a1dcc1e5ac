// Groupscope - Chat Group Member Profiling Dashboard
// Copyright 2026 X. Fang (xlfang)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/xlfang/groupscope

package stats

import (
	"fmt"

	"github.com/xlfang/groupscope/internal/enrich"
	"github.com/xlfang/groupscope/internal/models"
	"github.com/xlfang/groupscope/internal/social"
)

// Message-volume level labels emitted by the offline pipeline.
const (
	levelMajor  = "major speaker"
	levelSilent = "rare speaker"
)

// Insight rules run in a fixed order with fixed thresholds. The sentences
// are advisory text only; nothing downstream parses them.

func messageVolumeInsights(dist map[string]int, totalMessages, totalUsers int) []string {
	var insights []string

	majorRatio := pct(dist[levelMajor], totalUsers)
	insights = append(insights, fmt.Sprintf(
		"Major speakers make up %.1f%% of users and drive most of the discussion", majorRatio))

	if silentRatio := pct(dist[levelSilent], totalUsers); silentRatio > 20 {
		insights = append(insights, fmt.Sprintf(
			"%.1f%% of users rarely speak", silentRatio))
	}

	insights = append(insights, fmt.Sprintf(
		"Users post %d messages each on average", roundDiv(totalMessages, totalUsers)))
	return insights
}

func contentTypeInsights(dist map[string]int, totalUsers int) []string {
	top, count := "", 0
	for t, n := range dist {
		if n > count || (n == count && t < top) {
			top, count = t, n
		}
	}
	if top == "" {
		return nil
	}
	return []string{fmt.Sprintf(
		"The most common content focus is %q, covering %.1f%% of users", top, pct(count, totalUsers))}
}

func timePatternInsights(dist map[string]int, totalUsers, peakHour, peakCount int) []string {
	var insights []string
	if peakCount > 0 {
		insights = append(insights, fmt.Sprintf(
			"Group activity peaks at %02d:00 with %d messages", peakHour, peakCount))
	}

	top, count := "", 0
	for t, n := range dist {
		if n > count || (n == count && t < top) {
			top, count = t, n
		}
	}
	if top != "" {
		insights = append(insights, fmt.Sprintf(
			"%.1f%% of users follow a %q schedule", pct(count, totalUsers), top))
	}
	return insights
}

func socialBehaviorInsights(dist map[string]int, totalUsers int) []string {
	var insights []string

	if proactive := pct(dist[social.Proactive], totalUsers); proactive > 0 {
		insights = append(insights, fmt.Sprintf(
			"%.1f%% of users proactively start conversations", proactive))
	}
	if observer := pct(dist[social.Observer], totalUsers); observer > 30 {
		insights = append(insights, fmt.Sprintf(
			"%.1f%% of users mostly observe without engaging", observer))
	}
	return insights
}

func memberJoinTimeInsights(veterans, newcomers *models.SubgroupStats, avgDays float64) []string {
	totalUsers := veterans.Users + newcomers.Users
	if totalUsers == 0 {
		return nil
	}

	insights := []string{fmt.Sprintf(
		"The group is %.1f%% %s members and %.1f%% %s members",
		pct(veterans.Users, totalUsers), enrich.TypeVeteran,
		pct(newcomers.Users, totalUsers), enrich.TypeNewcomer)}

	if veterans.Users > 0 && newcomers.Users > 0 {
		switch {
		case veterans.AvgMessages > newcomers.AvgMessages*1.5:
			insights = append(insights, fmt.Sprintf(
				"Veterans average %.0f messages, well above the newcomer average of %.0f",
				veterans.AvgMessages, newcomers.AvgMessages))
		case newcomers.AvgMessages > veterans.AvgMessages*1.2:
			insights = append(insights, fmt.Sprintf(
				"Newcomers are unusually active, averaging %.0f messages against %.0f for veterans",
				newcomers.AvgMessages, veterans.AvgMessages))
		default:
			insights = append(insights, fmt.Sprintf(
				"Newcomers and veterans post at similar rates, %.0f and %.0f messages on average",
				newcomers.AvgMessages, veterans.AvgMessages))
		}
	}

	insights = append(insights, fmt.Sprintf(
		"Members have been in the group for %.0f days on average", avgDays))

	if newcomerRatio := pct(newcomers.Users, totalUsers); newcomerRatio > 40 {
		insights = append(insights, "A high newcomer share suggests the group is growing quickly")
	} else if newcomerRatio < 20 {
		insights = append(insights, "Veterans dominate the membership, the group is stable")
	}
	return insights
}
