// Groupscope - Chat Group Member Profiling Dashboard
// Copyright 2026 X. Fang (xlfang)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/xlfang/groupscope

package models

// ChartSpec is the renderable payload for one chart slot, shaped for a
// Chart.js-style front end: parallel label/data arrays per dataset.
type ChartSpec struct {
	Kind     string         `json:"kind"` // doughnut, bar, line
	Title    string         `json:"title"`
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}

// ChartDataset is one series within a chart.
type ChartDataset struct {
	Label  string    `json:"label,omitempty"`
	Data   []float64 `json:"data"`
	Colors []string  `json:"colors,omitempty"`
}

// Column declares one column of a table view.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// TableView is the row/column projection rendered for the current
// dimension. Every row has exactly len(Columns) cells; the table renderer
// enforces this before handing data to the grid widget.
type TableView struct {
	Slot    string     `json:"slot"`
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// MissingCell is the explicit placeholder written into padded table cells
// when a row arrives shorter than the declared column schema.
const MissingCell = "—"

// UserDetail is the read-only field list rendered into the detail dialog.
type UserDetail struct {
	ID             string            `json:"user_id"`
	Nickname       string            `json:"nickname"`
	MainGroup      string            `json:"main_group"`
	AllGroups      []string          `json:"all_groups"`
	MessageCount   int               `json:"message_count"`
	AvgLength      float64           `json:"avg_message_length"`
	GroupCount     int               `json:"group_count"`
	Classification map[string]string `json:"classifications"` // dimension -> category
	JoinDate       string            `json:"join_date,omitempty"`
	DaysSinceJoin  int               `json:"days_since_join,omitempty"`
	ActivityLevel  string            `json:"activity_level,omitempty"`
	Tags           []string          `json:"tags"`
	Description    string            `json:"description"`
	ActiveScore    float64           `json:"active_score"`
}
