// Groupscope - Chat Group Member Profiling Dashboard
// Copyright 2026 X. Fang (xlfang)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/xlfang/groupscope

// Package stats aggregates user classifications into per-dimension
// bundles: distribution, percentages, top lists, and templated insights.
//
// Each dimension registers one compute function in a strategy table.
// Adding a dimension means adding one entry here, nothing else.
package stats

import (
	"sort"
	"strconv"

	"github.com/samber/lo"

	"github.com/xlfang/groupscope/internal/enrich"
	"github.com/xlfang/groupscope/internal/models"
	"github.com/xlfang/groupscope/internal/social"
)

type computeFunc func(users []*models.User) *models.StatsBundle

// Engine computes stats bundles for analysis dimensions.
type Engine struct {
	table map[models.Dimension]computeFunc
}

// NewEngine builds the engine with every dimension registered.
func NewEngine() *Engine {
	e := &Engine{table: make(map[models.Dimension]computeFunc)}
	e.table[models.DimensionMessageVolume] = e.messageVolume
	e.table[models.DimensionContentType] = e.contentType
	e.table[models.DimensionTimePattern] = e.timePattern
	e.table[models.DimensionSocialBehavior] = e.socialBehavior
	e.table[models.DimensionMemberJoinTime] = e.memberJoinTime
	e.table[models.DimensionOverview] = e.overview
	return e
}

// Compute returns the bundle for dim over users. An unregistered dimension
// or empty user set yields an all-zero bundle, never nil.
func (e *Engine) Compute(dim models.Dimension, users []*models.User) *models.StatsBundle {
	fn, ok := e.table[dim]
	if !ok || len(users) == 0 {
		return &models.StatsBundle{Type: dim}
	}
	return fn(users)
}

// distribution counts users per classification type for dim, mapping
// missing classifications to the explicit unknown bucket so percentages
// still close to 100.
func distribution(users []*models.User, dim models.Dimension) map[string]int {
	return lo.CountValuesBy(users, func(u *models.User) string {
		if c := u.Classification(dim); c != nil && c.Type != "" {
			return c.Type
		}
		return models.UnknownCategory
	})
}

// percentages converts counts to percent of total, rounded to 1 decimal.
func percentages(dist map[string]int, total int) map[string]float64 {
	out := make(map[string]float64, len(dist))
	if total == 0 {
		return out
	}
	for k, v := range dist {
		out[k] = round1(float64(v) / float64(total) * 100)
	}
	return out
}

// topUsers ranks users by key descending and keeps the first 10. The sort
// is stable so ties keep collection order.
func topUsers(users []*models.User, key func(*models.User) int, category func(*models.User) string) []models.TopUser {
	ranked := make([]*models.User, len(users))
	copy(ranked, users)
	sort.SliceStable(ranked, func(i, j int) bool {
		return key(ranked[i]) > key(ranked[j])
	})
	if len(ranked) > 10 {
		ranked = ranked[:10]
	}
	return lo.Map(ranked, func(u *models.User, _ int) models.TopUser {
		return models.TopUser{
			ID:       u.ID,
			Nickname: u.Nickname,
			Count:    u.MessageCount,
			Category: category(u),
		}
	})
}

func (e *Engine) messageVolume(users []*models.User) *models.StatsBundle {
	dist := distribution(users, models.DimensionMessageVolume)
	total := lo.SumBy(users, func(u *models.User) int { return u.MessageCount })

	b := &models.StatsBundle{
		Type:          models.DimensionMessageVolume,
		Title:         "Message Volume Analysis",
		TotalUsers:    len(users),
		TotalMessages: total,
		AvgMessages:   avgOf(total, len(users)),
		Distribution:  dist,
		Percentages:   percentages(dist, len(users)),
		TopUsers: topUsers(users,
			func(u *models.User) int { return u.MessageCount },
			func(u *models.User) string { return classType(u, models.DimensionMessageVolume) }),
	}
	b.Insights = messageVolumeInsights(dist, total, len(users))
	return b
}

func (e *Engine) contentType(users []*models.User) *models.StatsBundle {
	dist := distribution(users, models.DimensionContentType)
	return &models.StatsBundle{
		Type:         models.DimensionContentType,
		Title:        "Content Type Analysis",
		TotalUsers:   len(users),
		Distribution: dist,
		Percentages:  percentages(dist, len(users)),
		Insights:     contentTypeInsights(dist, len(users)),
	}
}

func (e *Engine) timePattern(users []*models.User) *models.StatsBundle {
	dist := distribution(users, models.DimensionTimePattern)

	hourly := make([]int, 24)
	for _, u := range users {
		c := u.Classification(models.DimensionTimePattern)
		if c == nil {
			continue
		}
		for hs, n := range c.Hourly {
			if h, err := strconv.Atoi(hs); err == nil && h >= 0 && h < 24 {
				hourly[h] += n
			}
		}
	}
	peak := 0
	for h, n := range hourly {
		if n > hourly[peak] {
			peak = h
		}
	}

	b := &models.StatsBundle{
		Type:         models.DimensionTimePattern,
		Title:        "Time Pattern Analysis",
		TotalUsers:   len(users),
		Distribution: dist,
		Percentages:  percentages(dist, len(users)),
		Hourly:       hourly,
		PeakHour:     peak,
	}
	b.Insights = timePatternInsights(dist, len(users), peak, hourly[peak])
	return b
}

func (e *Engine) socialBehavior(users []*models.User) *models.StatsBundle {
	// Users without a precomputed classification get a derived one. The
	// derivation is deterministic, so recomputing per call is safe.
	dist := make(map[string]int)
	scores := make(map[string]int, len(users))
	for _, u := range users {
		category, score := SocialCategory(u)
		dist[category]++
		scores[u.ID] = score
	}

	b := &models.StatsBundle{
		Type:         models.DimensionSocialBehavior,
		Title:        "Social Behavior Analysis",
		TotalUsers:   len(users),
		Distribution: dist,
		Percentages:  percentages(dist, len(users)),
		TopUsers: topUsers(users,
			func(u *models.User) int { return scores[u.ID] },
			func(u *models.User) string { c, _ := SocialCategory(u); return c }),
	}
	for i := range b.TopUsers {
		b.TopUsers[i].Score = float64(scores[b.TopUsers[i].ID])
	}
	b.Insights = socialBehaviorInsights(dist, len(users))
	return b
}

// SocialCategory returns the user's social archetype and an integer rank
// score, deriving both when the record has no precomputed classification.
func SocialCategory(u *models.User) (string, int) {
	if c := u.Classification(models.DimensionSocialBehavior); c != nil && c.Type != "" && c.Type != models.UnknownCategory {
		return c.Type, int(c.Score * 100)
	}
	r := social.Classify(u.ID, u.MessageCount, u.GroupCount())
	return r.Archetype, int(r.Score * 100)
}

func (e *Engine) memberJoinTime(users []*models.User) *models.StatsBundle {
	dist := make(map[string]int)
	periodDist := make(map[string]int)
	activityDist := make(map[string]int)
	totalDays := 0

	veterans := &models.SubgroupStats{}
	newcomers := &models.SubgroupStats{}
	var veteranUsers, newcomerUsers []*models.User

	for _, u := range users {
		c := u.Classification(models.DimensionMemberJoinTime)
		if c == nil {
			dist[models.UnknownCategory]++
			continue
		}
		dist[c.Type]++
		periodDist[c.JoinPeriod]++
		activityDist[c.ActivityLevel]++
		totalDays += c.DaysSinceJoin

		if c.Type == enrich.TypeVeteran {
			veterans.Users++
			veterans.Messages += u.MessageCount
			veteranUsers = append(veteranUsers, u)
		} else {
			newcomers.Users++
			newcomers.Messages += u.MessageCount
			newcomerUsers = append(newcomerUsers, u)
		}
	}
	veterans.AvgMessages = avgOf(veterans.Messages, veterans.Users)
	newcomers.AvgMessages = avgOf(newcomers.Messages, newcomers.Users)
	veterans.TopUsers = tenureTop(veteranUsers)
	newcomers.TopUsers = tenureTop(newcomerUsers)

	b := &models.StatsBundle{
		Type:                 models.DimensionMemberJoinTime,
		Title:                "Member Tenure Analysis",
		TotalUsers:           len(users),
		Distribution:         dist,
		Percentages:          percentages(dist, len(users)),
		PeriodDistribution:   periodDist,
		ActivityDistribution: activityDist,
		AvgDaysSinceJoin:     avgOf(totalDays, len(users)),
		VeteranStats:         veterans,
		NewcomerStats:        newcomers,
	}
	b.Insights = memberJoinTimeInsights(veterans, newcomers, b.AvgDaysSinceJoin)
	return b
}

func tenureTop(users []*models.User) []models.TopUser {
	top := topUsers(users,
		func(u *models.User) int { return u.MessageCount },
		func(u *models.User) string { return classType(u, models.DimensionMemberJoinTime) })
	for i := range top {
		if u := lo.FindOrElse(users, nil, func(x *models.User) bool { return x.ID == top[i].ID }); u != nil {
			if c := u.Classification(models.DimensionMemberJoinTime); c != nil {
				top[i].Days = c.DaysSinceJoin
			}
		}
	}
	return top
}

func (e *Engine) overview(users []*models.User) *models.StatsBundle {
	total := lo.SumBy(users, func(u *models.User) int { return u.MessageCount })
	return &models.StatsBundle{
		Type:          models.DimensionOverview,
		Title:         "Overview",
		TotalUsers:    len(users),
		TotalMessages: total,
		AvgMessages:   avgOf(total, len(users)),
		TopUsers: topUsers(users,
			func(u *models.User) int { return u.MessageCount },
			func(u *models.User) string { return classType(u, models.DimensionMessageVolume) }),
	}
}

func classType(u *models.User, dim models.Dimension) string {
	if c := u.Classification(dim); c != nil && c.Type != "" {
		return c.Type
	}
	return models.UnknownCategory
}

// avgOf is the rounded integer mean carried as a float field.
func avgOf(total, n int) float64 {
	return float64(roundDiv(total, n))
}

func roundDiv(total, n int) int {
	if n == 0 {
		return 0
	}
	return int(float64(total)/float64(n) + 0.5)
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}

func pct(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return round1(float64(count) / float64(total) * 100)
}
