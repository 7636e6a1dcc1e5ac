// Groupscope - Chat Group Member Profiling Dashboard
// Copyright 2026 X. Fang (xlfang)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/xlfang/groupscope

package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/xlfang/groupscope/internal/export"
	"github.com/xlfang/groupscope/internal/logging"
	"github.com/xlfang/groupscope/internal/models"
	"github.com/xlfang/groupscope/internal/view"
)

// Handler holds the dependencies shared by all endpoint handlers.
type Handler struct {
	controller *view.Controller
	loadErr    error
	startTime  time.Time
	version    string
}

// NewHandler creates the handler set. loadErr is the startup dataset load
// failure, nil when the dataset is available; a non-nil value puts every
// data endpoint into degraded 503 responses until restart.
func NewHandler(controller *view.Controller, loadErr error, version string) *Handler {
	return &Handler{
		controller: controller,
		loadErr:    loadErr,
		startTime:  time.Now(),
		version:    version,
	}
}

// degraded writes the 503 envelope when the dataset never loaded.
func (h *Handler) degraded(rw *ResponseWriter) bool {
	if h.loadErr == nil {
		return false
	}
	rw.DatasetUnavailable(h.loadErr.Error())
	return true
}

// Health reports liveness, dataset availability, uptime, and version.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	status := "ok"
	if h.loadErr != nil {
		status = "degraded"
	}
	rw.Success(map[string]interface{}{
		"status":         status,
		"dataset_loaded": h.loadErr == nil,
		"uptime_seconds": int(time.Since(h.startTime).Seconds()),
		"version":        h.version,
	})
}

// Stats returns the stats bundle for the current dimension and filter.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.degraded(rw) {
		return
	}

	snap, err := h.controller.Snapshot()
	if err != nil {
		rw.DatasetUnavailable(err.Error())
		return
	}
	rw.Success(map[string]interface{}{
		"dimension": snap.Dimension,
		"group":     snap.Group,
		"stats":     snap.Bundle,
	})
}

// Overview returns the dataset-wide counters for the stat cards.
func (h *Handler) Overview(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.degraded(rw) {
		return
	}

	stats, err := h.controller.Overview()
	if err != nil {
		rw.DatasetUnavailable(err.Error())
		return
	}
	rw.Success(stats)
}

// SelectDimension switches the analysis dimension and refreshes the view.
func (h *Handler) SelectDimension(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.degraded(rw) {
		return
	}

	var req SelectDimensionRequest
	if err := decodeRequest(w, r, &req); err != nil {
		rw.ValidationFailed(err.Error(), validationDetails(err))
		return
	}

	if err := h.controller.SelectDimension(models.Dimension(req.Dimension)); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	logging.Ctx(r.Context()).Info().Str("dimension", req.Dimension).Msg("dimension selected")
	rw.Success(map[string]string{"dimension": req.Dimension})
}

// SelectGroup sets or clears the group filter and refreshes the view.
func (h *Handler) SelectGroup(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.degraded(rw) {
		return
	}

	var req SelectGroupRequest
	if err := decodeRequest(w, r, &req); err != nil {
		rw.ValidationFailed(err.Error(), validationDetails(err))
		return
	}

	if err := h.controller.SelectGroup(req.Group); err != nil {
		if errors.Is(err, view.ErrUnknownGroup) {
			rw.BadRequest(err.Error())
			return
		}
		rw.InternalError(err.Error())
		return
	}
	rw.Success(map[string]string{"group": req.Group})
}

// Groups lists the selectable group names.
func (h *Handler) Groups(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.degraded(rw) {
		return
	}

	groups, err := h.controller.Groups()
	if err != nil {
		rw.DatasetUnavailable(err.Error())
		return
	}
	rw.Success(map[string]interface{}{"groups": groups, "count": len(groups)})
}

// Chart returns the live chart payload for the requested slot.
func (h *Handler) Chart(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.degraded(rw) {
		return
	}

	slot := chi.URLParam(r, "slot")
	spec, ok := h.controller.Chart(slot)
	if !ok {
		rw.NotFound(fmt.Sprintf("no chart rendered for slot %q", slot))
		return
	}
	rw.Success(spec)
}

// Table returns the current table view.
func (h *Handler) Table(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.degraded(rw) {
		return
	}

	table, ok := h.controller.Table()
	if !ok {
		rw.NotFound("no table rendered")
		return
	}
	rw.Success(table)
}

// UserDetail returns the detail dialog payload for one user, looked up
// against the full collection regardless of the active filter.
func (h *Handler) UserDetail(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.degraded(rw) {
		return
	}

	id := chi.URLParam(r, "id")
	detail, err := h.controller.ShowUserDetail(id)
	if err != nil {
		if errors.Is(err, view.ErrNoData) {
			rw.DatasetUnavailable(err.Error())
			return
		}
		rw.NotFound(err.Error())
		return
	}
	rw.Success(detail)
}

// Export streams the current view state as a downloadable JSON or CSV
// document.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.degraded(rw) {
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}

	snap, err := h.controller.Snapshot()
	if err != nil {
		rw.DatasetUnavailable(err.Error())
		return
	}

	var (
		name        string
		data        []byte
		contentType string
	)
	switch format {
	case "json":
		name, data, err = export.JSON(snap, time.Now())
		contentType = "application/json"
	case "csv":
		name, data, err = export.CSV(snap, time.Now())
		contentType = "text/csv"
	default:
		rw.BadRequest(fmt.Sprintf("unsupported export format %q", format))
		return
	}
	if err != nil {
		rw.InternalError(err.Error())
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("failed to write export")
	}
}
