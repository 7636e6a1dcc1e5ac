// Groupscope - Chat Group Member Profiling Dashboard
// Copyright 2026 X. Fang (xlfang)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/xlfang/groupscope

package view

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/xlfang/groupscope/internal/models"
	"github.com/xlfang/groupscope/internal/social"
	"github.com/xlfang/groupscope/internal/stats"
)

// Columns returns the table schema for a dimension. Every row built for
// that dimension must have exactly this many cells.
func Columns(dim models.Dimension) []models.Column {
	switch dim {
	case models.DimensionContentType:
		return []models.Column{
			{Key: "rank", Label: "#"},
			{Key: "nickname", Label: "Nickname"},
			{Key: "main_group", Label: "Main Group"},
			{Key: "content_type", Label: "Content Focus"},
			{Key: "message_count", Label: "Messages"},
			{Key: "avg_length", Label: "Avg Length"},
			{Key: "groups", Label: "Groups"},
		}
	case models.DimensionTimePattern:
		return []models.Column{
			{Key: "rank", Label: "#"},
			{Key: "nickname", Label: "Nickname"},
			{Key: "main_group", Label: "Main Group"},
			{Key: "time_pattern", Label: "Pattern"},
			{Key: "peak_hours", Label: "Peak Hours"},
			{Key: "message_count", Label: "Messages"},
			{Key: "groups", Label: "Groups"},
		}
	case models.DimensionSocialBehavior:
		return []models.Column{
			{Key: "rank", Label: "#"},
			{Key: "nickname", Label: "Nickname"},
			{Key: "main_group", Label: "Main Group"},
			{Key: "archetype", Label: "Archetype"},
			{Key: "score", Label: "Score"},
			{Key: "confidence", Label: "Confidence"},
			{Key: "message_count", Label: "Messages"},
			{Key: "groups", Label: "Groups"},
		}
	case models.DimensionMemberJoinTime:
		return []models.Column{
			{Key: "rank", Label: "#"},
			{Key: "nickname", Label: "Nickname"},
			{Key: "main_group", Label: "Main Group"},
			{Key: "member_type", Label: "Member Type"},
			{Key: "join_date", Label: "Join Date"},
			{Key: "days", Label: "Days"},
			{Key: "activity", Label: "Activity"},
			{Key: "message_count", Label: "Messages"},
		}
	default: // overview, message_volume
		return []models.Column{
			{Key: "rank", Label: "#"},
			{Key: "nickname", Label: "Nickname"},
			{Key: "main_group", Label: "Main Group"},
			{Key: "message_count", Label: "Messages"},
			{Key: "avg_length", Label: "Avg Length"},
			{Key: "level", Label: "Level"},
			{Key: "groups", Label: "Groups"},
		}
	}
}

// BuildRows produces the table rows for dim over users, ranked by message
// count descending with ties in collection order.
func BuildRows(dim models.Dimension, users []*models.User) [][]string {
	ranked := make([]*models.User, len(users))
	copy(ranked, users)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MessageCount > ranked[j].MessageCount
	})

	rows := make([][]string, 0, len(ranked))
	for i, u := range ranked {
		rows = append(rows, buildRow(dim, i+1, u))
	}
	return rows
}

func buildRow(dim models.Dimension, rank int, u *models.User) []string {
	switch dim {
	case models.DimensionContentType:
		return []string{
			strconv.Itoa(rank),
			u.Nickname,
			u.MainGroup,
			cellType(u, models.DimensionContentType),
			strconv.Itoa(u.MessageCount),
			fmt.Sprintf("%.1f", u.AvgMessageLength),
			strconv.Itoa(u.GroupCount()),
		}
	case models.DimensionTimePattern:
		return []string{
			strconv.Itoa(rank),
			u.Nickname,
			u.MainGroup,
			cellType(u, models.DimensionTimePattern),
			cellPeakHours(u),
			strconv.Itoa(u.MessageCount),
			strconv.Itoa(u.GroupCount()),
		}
	case models.DimensionSocialBehavior:
		archetype, score := stats.SocialCategory(u)
		return []string{
			strconv.Itoa(rank),
			u.Nickname,
			u.MainGroup,
			archetype,
			strconv.Itoa(score),
			cellConfidence(u),
			strconv.Itoa(u.MessageCount),
			strconv.Itoa(u.GroupCount()),
		}
	case models.DimensionMemberJoinTime:
		c := u.Classification(models.DimensionMemberJoinTime)
		if c == nil {
			c = &models.Classification{
				Type:          models.UnknownCategory,
				JoinDate:      models.MissingCell,
				JoinPeriod:    models.MissingCell,
				ActivityLevel: models.MissingCell,
			}
		}
		return []string{
			strconv.Itoa(rank),
			u.Nickname,
			u.MainGroup,
			c.Type,
			c.JoinDate,
			strconv.Itoa(c.DaysSinceJoin),
			c.ActivityLevel,
			strconv.Itoa(u.MessageCount),
		}
	default:
		return []string{
			strconv.Itoa(rank),
			u.Nickname,
			u.MainGroup,
			strconv.Itoa(u.MessageCount),
			fmt.Sprintf("%.1f", u.AvgMessageLength),
			cellType(u, models.DimensionMessageVolume),
			strconv.Itoa(u.GroupCount()),
		}
	}
}

func cellType(u *models.User, dim models.Dimension) string {
	if c := u.Classification(dim); c != nil && c.Type != "" {
		return c.Type
	}
	return models.UnknownCategory
}

func cellPeakHours(u *models.User) string {
	c := u.Classification(models.DimensionTimePattern)
	if c == nil || len(c.PeakHours) == 0 {
		return models.MissingCell
	}
	parts := make([]string, len(c.PeakHours))
	for i, h := range c.PeakHours {
		parts[i] = fmt.Sprintf("%02d:00", h)
	}
	return strings.Join(parts, ", ")
}

func cellConfidence(u *models.User) string {
	if c := u.Classification(models.DimensionSocialBehavior); c != nil && c.Confidence > 0 {
		return fmt.Sprintf("%.0f%%", c.Confidence*100)
	}
	r := social.Classify(u.ID, u.MessageCount, u.GroupCount())
	return fmt.Sprintf("%.0f%%", r.Confidence*100)
}
