// Groupscope - Chat Group Member Profiling Dashboard
// Copyright 2026 X. Fang (xlfang)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/xlfang/groupscope

// Package view holds the dashboard presentation state: the current
// analysis dimension, the active group filter, and the rendered chart and
// table instances. The controller is the single orchestration point;
// nothing else mutates view state or holds widget handles.
package view

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/xlfang/groupscope/internal/dataset"
	"github.com/xlfang/groupscope/internal/enrich"
	"github.com/xlfang/groupscope/internal/logging"
	"github.com/xlfang/groupscope/internal/metrics"
	"github.com/xlfang/groupscope/internal/models"
	"github.com/xlfang/groupscope/internal/stats"
)

// ErrNoData is returned by queries before a dataset has been attached.
var ErrNoData = errors.New("no dataset loaded")

// ErrUnknownGroup is returned when a group filter names no known group.
var ErrUnknownGroup = errors.New("unknown group")

// Controller is the dashboard state machine. All methods are safe for
// concurrent use; the HTTP layer calls them from concurrent requests and
// a mutex serializes every transition.
type Controller struct {
	mu sync.Mutex

	engine *stats.Engine
	charts *ChartRegistry
	tables *TableRenderer
	modal  *ModalPresenter
	asOf   time.Time

	col       *dataset.Collection
	dimension models.Dimension
	group     string
	bundle    *models.StatsBundle
}

// NewController creates a controller in the initial state: message_volume
// dimension, no group filter, no data.
func NewController(engine *stats.Engine, asOf time.Time) *Controller {
	return &Controller{
		engine:    engine,
		charts:    NewChartRegistry(SlotDistribution, SlotRanking, SlotHourly),
		tables:    NewTableRenderer(),
		modal:     NewModalPresenter(),
		asOf:      asOf,
		dimension: models.DimensionMessageVolume,
	}
}

// SetData attaches the loaded collection, enriches it with derived tenure
// fields exactly once, resets the group filter, and refreshes.
func (c *Controller) SetData(col *dataset.Collection) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.col = col
	c.group = ""
	enrich.Enrich(col.Users, c.asOf)
	metrics.DatasetUsers.Set(float64(col.Len()))
	c.refreshLocked()
}

// SelectDimension switches the current analysis dimension and refreshes.
func (c *Controller) SelectDimension(d models.Dimension) error {
	if !d.Valid() {
		return fmt.Errorf("invalid dimension %q", d)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.dimension = d
	c.refreshLocked()
	return nil
}

// SelectGroup sets the group filter and refreshes. An empty group clears
// the filter; an unknown group is rejected.
func (c *Controller) SelectGroup(group string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if group != "" {
		if c.col == nil {
			return ErrNoData
		}
		if !c.col.HasGroup(group) {
			return fmt.Errorf("%w: %q", ErrUnknownGroup, group)
		}
	}
	c.group = group
	c.refreshLocked()
	return nil
}

// Refresh recomputes the stats bundle and redraws charts and tables. It is
// idempotent and a no-op before data arrives.
func (c *Controller) Refresh() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refreshLocked()
}

func (c *Controller) refreshLocked() {
	if c.col == nil {
		return
	}

	users := c.col.FilterByGroup(c.group)
	c.bundle = c.engine.Compute(c.dimension, users)
	metrics.RefreshTotal.WithLabelValues(c.dimension.String()).Inc()

	c.renderCharts()
	c.renderTable(users)

	logging.Debug().
		Str("dimension", c.dimension.String()).
		Str("group", c.group).
		Int("users", len(users)).
		Msg("view refreshed")
}

func (c *Controller) renderCharts() {
	b := c.bundle

	if len(b.Distribution) > 0 {
		c.charts.Render(SlotDistribution, distributionSpec(b.Title, b.Distribution))
	} else {
		c.charts.Render(SlotDistribution, models.ChartSpec{Kind: "doughnut", Title: b.Title})
	}

	if len(b.TopUsers) > 0 {
		c.charts.Render(SlotRanking, rankingSpec("Top Users", b.TopUsers))
	} else if c.dimension == models.DimensionMemberJoinTime && len(b.PeriodDistribution) > 0 {
		c.charts.Render(SlotRanking, distributionSpec("Join Periods", b.PeriodDistribution))
	} else {
		c.charts.Render(SlotRanking, models.ChartSpec{Kind: "bar", Title: "Top Users"})
	}

	if c.dimension == models.DimensionTimePattern {
		c.charts.Render(SlotHourly, hourlySpec(b.Hourly))
	} else {
		c.charts.Destroy(SlotHourly)
	}
}

// renderTable decides between the shared table and the dedicated tenure
// table so a dimension switch never leaves two tables showing rows.
func (c *Controller) renderTable(users []*models.User) {
	rows := BuildRows(c.dimension, users)
	columns := Columns(c.dimension)

	if c.dimension == models.DimensionMemberJoinTime {
		c.tables.Clear(SlotSharedTable)
		c.tables.Render(SlotTenureTable, rows, columns)
		return
	}
	c.tables.Clear(SlotTenureTable)
	c.tables.Render(SlotSharedTable, rows, columns)
}

// Snapshot captures the current view state for export and API responses.
type Snapshot struct {
	Dimension models.Dimension
	Group     string
	Bundle    *models.StatsBundle
	Users     []*models.User
}

// Snapshot returns the current state. The bundle and user slice must be
// treated as read-only.
func (c *Controller) Snapshot() (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.col == nil || c.bundle == nil {
		return Snapshot{}, ErrNoData
	}
	return Snapshot{
		Dimension: c.dimension,
		Group:     c.group,
		Bundle:    c.bundle,
		Users:     c.col.FilterByGroup(c.group),
	}, nil
}

// Chart returns the live chart payload for slot.
func (c *Controller) Chart(slot string) (models.ChartSpec, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.charts.Spec(slot)
}

// Table returns the active table view, whichever slot currently holds it.
func (c *Controller) Table() (models.TableView, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.tables.View(SlotTenureTable); ok {
		return v, true
	}
	return c.tables.View(SlotSharedTable)
}

// Groups lists the selectable group names.
func (c *Controller) Groups() ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.col == nil {
		return nil, ErrNoData
	}
	return c.col.Groups(), nil
}

// Overview returns the dataset-wide counters for the stat cards.
func (c *Controller) Overview() (models.DatasetStats, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.col == nil {
		return models.DatasetStats{}, ErrNoData
	}
	return c.col.Stats, nil
}

// ShowUserDetail opens the detail dialog for id, looked up against the
// full collection regardless of the active filter.
func (c *Controller) ShowUserDetail(id string) (*models.UserDetail, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.col == nil {
		return nil, ErrNoData
	}
	return c.modal.Show(c.col, id)
}
