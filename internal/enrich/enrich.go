// Groupscope - Chat Group Member Profiling Dashboard
// Copyright 2026 X. Fang (xlfang)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/xlfang/groupscope

// Package enrich attaches derived per-user fields that the offline
// pipeline does not produce. Currently that is the simulated group-join
// tenure under the member_join_time dimension.
//
// The join age is a deterministic function of the user identifier and
// message count, not an observed value. Determinism is what matters here:
// the same collection must render the same tenure figures on every
// process start.
package enrich

import (
	"hash/fnv"
	"strconv"
	"time"

	"github.com/xlfang/groupscope/internal/logging"
	"github.com/xlfang/groupscope/internal/models"
)

// Member type labels.
const (
	TypeVeteran  = "veteran"
	TypeNewcomer = "newcomer"
)

// Join period buckets.
const (
	PeriodWeek    = "0-7 days"
	PeriodMonth   = "8-30 days"
	PeriodQuarter = "31-60 days"
	PeriodOlder   = "60+ days"
)

// Activity levels derived from messages per day since joining.
const (
	ActivityHigh    = "high"
	ActivityMedium  = "medium"
	ActivityLow     = "low"
	ActivityDormant = "dormant"
)

// Enrich attaches a member_join_time classification to every user that
// does not already carry one and returns the number of users enriched.
// A second call over the same collection is a per-user no-op, so derived
// tenure never drifts between dimension switches.
func Enrich(users []*models.User, asOf time.Time) int {
	enriched := 0
	for _, u := range users {
		if u == nil || u.Dimensions == nil {
			continue
		}
		if _, ok := u.Dimensions[models.DimensionMemberJoinTime.String()]; ok {
			continue
		}

		days := joinAgeDays(u.ID, u.MessageCount)
		joinDate := asOf.AddDate(0, 0, -days)

		u.Dimensions[models.DimensionMemberJoinTime.String()] = &models.Classification{
			Type:          memberType(days),
			JoinDate:      joinDate.Format("2006-01-02"),
			DaysSinceJoin: days,
			JoinPeriod:    joinPeriod(days),
			ActivityLevel: activityLevel(u.MessageCount, days),
		}
		enriched++
	}
	if enriched > 0 {
		logging.Debug().Int("enriched", enriched).Msg("tenure enrichment applied")
	}
	return enriched
}

// joinAgeDays maps a user to a stable days-since-join value. Heavier
// posters land in older buckets and silent users in recent ones, which
// makes the tenure view plausible without any real join records.
func joinAgeDays(id string, messageCount int) int {
	n := identityNumber(id)
	switch {
	case messageCount > 100:
		return 40 + int(n%40)
	case messageCount > 20:
		return 20 + int(n%30)
	case messageCount > 0:
		return int(n % 45)
	default:
		return int(n % 25)
	}
}

// identityNumber parses a numeric user ID directly and hashes everything
// else with FNV-1a, so non-numeric identifiers still get a stable value.
func identityNumber(id string) uint64 {
	if n, err := strconv.ParseUint(id, 10, 64); err == nil {
		return n
	}
	h := fnv.New32a()
	h.Write([]byte(id))
	return uint64(h.Sum32())
}

func memberType(days int) string {
	if days > 30 {
		return TypeVeteran
	}
	return TypeNewcomer
}

func joinPeriod(days int) string {
	switch {
	case days <= 7:
		return PeriodWeek
	case days <= 30:
		return PeriodMonth
	case days <= 60:
		return PeriodQuarter
	default:
		return PeriodOlder
	}
}

func activityLevel(messageCount, days int) string {
	perDay := float64(messageCount)
	if days > 0 {
		perDay = float64(messageCount) / float64(days)
	}
	switch {
	case perDay > 5:
		return ActivityHigh
	case perDay > 1:
		return ActivityMedium
	case perDay > 0:
		return ActivityLow
	default:
		return ActivityDormant
	}
}
