// Groupscope - Chat Group Member Profiling Dashboard
// Copyright 2026 X. Fang (xlfang)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/xlfang/groupscope

package dataset

import (
	"sort"

	"github.com/xlfang/groupscope/internal/models"
)

// Collection is the loaded, normalized user collection. It is mutated
// exactly once after load (tenure enrichment) and treated as read-only by
// every statistics and render path afterwards.
type Collection struct {
	Stats models.DatasetStats
	Users []*models.User

	byID   map[string]*models.User
	groups []string
}

func newCollection(doc document) *Collection {
	col := &Collection{
		Stats: doc.Stats,
		Users: doc.Users,
		byID:  make(map[string]*models.User, len(doc.Users)),
	}

	seen := make(map[string]struct{})
	for _, u := range col.Users {
		if u == nil {
			continue
		}
		normalizeUser(u)
		col.byID[u.ID] = u
		for _, g := range u.AllGroups {
			if _, ok := seen[g]; !ok {
				seen[g] = struct{}{}
				col.groups = append(col.groups, g)
			}
		}
	}
	sort.Strings(col.groups)
	return col
}

// NewCollection builds a collection directly from user records. Intended
// for tests and fixtures; applies the same normalization as Load.
func NewCollection(stats models.DatasetStats, users []*models.User) *Collection {
	return newCollection(document{Stats: stats, Users: users})
}

// Len returns the number of users.
func (c *Collection) Len() int { return len(c.Users) }

// ByID looks up a user in the FULL collection, independent of any active
// group filter. The boolean reports whether the user exists.
func (c *Collection) ByID(id string) (*models.User, bool) {
	u, ok := c.byID[id]
	return u, ok
}

// Groups returns the deduplicated, sorted set of non-empty group names
// across all users, suitable for populating the group selector.
func (c *Collection) Groups() []string {
	out := make([]string, len(c.groups))
	copy(out, c.groups)
	return out
}

// FilterByGroup returns the subset of users belonging to group (main group
// equality or membership in the all-groups set), preserving collection
// order. An empty group name returns all users unchanged.
func (c *Collection) FilterByGroup(group string) []*models.User {
	if group == "" {
		return c.Users
	}
	var out []*models.User
	for _, u := range c.Users {
		if u.InGroup(group) {
			out = append(out, u)
		}
	}
	return out
}

// HasGroup reports whether group appears in the selector list.
func (c *Collection) HasGroup(group string) bool {
	for _, g := range c.groups {
		if g == group {
			return true
		}
	}
	return false
}
