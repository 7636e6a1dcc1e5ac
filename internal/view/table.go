// Groupscope - Chat Group Member Profiling Dashboard
// Copyright 2026 X. Fang (xlfang)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/xlfang/groupscope

package view

import (
	"github.com/xlfang/groupscope/internal/logging"
	"github.com/xlfang/groupscope/internal/models"
)

// Table slot names.
const (
	SlotSharedTable = "users"
	SlotTenureTable = "tenure"
)

// scaffoldParts are the auxiliary artifacts a grid widget attaches next to
// itself. The renderer must remove them with the grid or repeated redraws
// accumulate orphans.
var scaffoldParts = []string{"wrapper", "search", "pagination", "info"}

type gridInstance struct {
	view      models.TableView
	destroyed bool
}

func (g *gridInstance) Destroy() { g.destroyed = true }

// TableRenderer owns grid widgets and their scaffold per table slot. Not
// safe for concurrent use; the view controller serializes access.
type TableRenderer struct {
	grids     map[string]*gridInstance
	scaffolds map[string][]string
}

// NewTableRenderer creates an empty renderer.
func NewTableRenderer() *TableRenderer {
	return &TableRenderer{
		grids:     make(map[string]*gridInstance),
		scaffolds: make(map[string][]string),
	}
}

// Render replaces the grid in slot with rows under columns. The previous
// grid and all its scaffold artifacts are removed first, and header labels
// swap atomically with the row data. Rows whose cell count does not match
// the column schema are padded with a placeholder or truncated, with a
// warning, rather than corrupting column alignment.
func (t *TableRenderer) Render(slot string, rows [][]string, columns []models.Column) {
	t.Clear(slot)

	fixed := make([][]string, len(rows))
	for i, row := range rows {
		fixed[i] = conformRow(slot, i, row, len(columns))
	}

	t.grids[slot] = &gridInstance{view: models.TableView{
		Slot:    slot,
		Columns: columns,
		Rows:    fixed,
	}}
	t.scaffolds[slot] = append([]string(nil), scaffoldParts...)
}

// Clear destroys the grid in slot and removes its scaffold.
func (t *TableRenderer) Clear(slot string) {
	if g, ok := t.grids[slot]; ok {
		g.Destroy()
		delete(t.grids, slot)
	}
	delete(t.scaffolds, slot)
}

// View returns the current table view for slot.
func (t *TableRenderer) View(slot string) (models.TableView, bool) {
	g, ok := t.grids[slot]
	if !ok || g.destroyed {
		return models.TableView{}, false
	}
	return g.view, true
}

// ScaffoldCount reports the number of scaffold artifacts attached to slot.
// Stays bounded at len(scaffoldParts) no matter how many redraws happen.
func (t *TableRenderer) ScaffoldCount(slot string) int {
	return len(t.scaffolds[slot])
}

// Live returns the number of live grids.
func (t *TableRenderer) Live() int { return len(t.grids) }

func conformRow(slot string, idx int, row []string, want int) []string {
	if len(row) == want {
		return row
	}

	logging.Warn().
		Str("slot", slot).
		Int("row", idx).
		Int("cells", len(row)).
		Int("columns", want).
		Msg("row does not match column schema, correcting")

	if len(row) > want {
		return row[:want]
	}
	fixed := make([]string, want)
	copy(fixed, row)
	for i := len(row); i < want; i++ {
		fixed[i] = models.MissingCell
	}
	return fixed
}
