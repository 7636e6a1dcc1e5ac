// Groupscope - Chat Group Member Profiling Dashboard
// Copyright 2026 X. Fang (xlfang)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/xlfang/groupscope

// Package export serializes the current view state to downloadable
// documents. Exports mirror in-memory state exactly; no re-validation or
// recomputation happens here.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/xlfang/groupscope/internal/metrics"
	"github.com/xlfang/groupscope/internal/models"
	"github.com/xlfang/groupscope/internal/view"
)

// Document is the JSON export shape.
type Document struct {
	Dimension  string              `json:"dimension"`
	Group      string              `json:"group,omitempty"`
	ExportedAt string              `json:"exported_at"`
	Stats      *models.StatsBundle `json:"stats"`
	Users      []*models.User      `json:"users"`
}

// JSON renders the snapshot as an indented JSON document and returns the
// suggested filename alongside the payload.
func JSON(snap view.Snapshot, now time.Time) (string, []byte, error) {
	doc := Document{
		Dimension:  snap.Dimension.String(),
		Group:      snap.Group,
		ExportedAt: now.Format(time.RFC3339),
		Stats:      snap.Bundle,
		Users:      snap.Users,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", nil, fmt.Errorf("marshaling export: %w", err)
	}
	metrics.ExportTotal.WithLabelValues("json").Inc()
	return filename(snap.Dimension, now, "json"), data, nil
}

// CSV renders the snapshot's table projection (current dimension's column
// schema over the filtered users) as CSV with a header row.
func CSV(snap view.Snapshot, now time.Time) (string, []byte, error) {
	columns := view.Columns(snap.Dimension)
	rows := view.BuildRows(snap.Dimension, snap.Users)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := make([]string, len(columns))
	for i, c := range columns {
		header[i] = c.Label
	}
	if err := w.Write(header); err != nil {
		return "", nil, fmt.Errorf("writing csv header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return "", nil, fmt.Errorf("writing csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", nil, fmt.Errorf("flushing csv: %w", err)
	}

	metrics.ExportTotal.WithLabelValues("csv").Inc()
	return filename(snap.Dimension, now, "csv"), buf.Bytes(), nil
}

func filename(dim models.Dimension, now time.Time, ext string) string {
	return fmt.Sprintf("profile_%s_%s.%s", dim, now.Format("2006-01-02"), ext)
}
