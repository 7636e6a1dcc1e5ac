// Groupscope - Chat Group Member Profiling Dashboard
// Copyright 2026 X. Fang (xlfang)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/xlfang/groupscope

package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xlfang/groupscope/internal/config"
	"github.com/xlfang/groupscope/internal/dataset"
	"github.com/xlfang/groupscope/internal/models"
	"github.com/xlfang/groupscope/internal/stats"
	"github.com/xlfang/groupscope/internal/view"
)

func testServerConfig() config.ServerConfig {
	return config.ServerConfig{
		Host:        "127.0.0.1",
		Port:        0,
		RateLimit:   1000,
		CORSOrigins: []string{"*"},
	}
}

func fixtureController() *view.Controller {
	users := []*models.User{
		{ID: "1", Nickname: "alice", MainGroup: "golang",
			AllGroups: []string{"golang"}, MessageCount: 120,
			Dimensions: map[string]*models.Classification{
				"message_volume": {Type: "major speaker"},
			}},
		{ID: "2", Nickname: "bob", MainGroup: "devops",
			AllGroups: []string{"devops"}, MessageCount: 4,
			Dimensions: map[string]*models.Classification{
				"message_volume": {Type: "rare speaker"},
			}},
	}
	col := dataset.NewCollection(models.DatasetStats{TotalUsers: 2, TotalMessages: 124}, users)

	c := view.NewController(stats.NewEngine(), time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC))
	c.SetData(col)
	return c
}

func newTestRouter(t *testing.T, loadErr error) http.Handler {
	t.Helper()
	handler := NewHandler(fixtureController(), loadErr, "test")
	return NewRouter(testServerConfig(), handler)
}

func doRequest(t *testing.T, router http.Handler, method, path, body string) (*httptest.ResponseRecorder, APIResponse) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var resp APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestHealthOK(t *testing.T) {
	router := newTestRouter(t, nil)
	rec, resp := doRequest(t, router, http.MethodGet, "/api/v1/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "ok", data["status"])
	assert.Equal(t, true, data["dataset_loaded"])
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestHealthDegraded(t *testing.T) {
	router := newTestRouter(t, errors.New("fetch failed"))
	rec, resp := doRequest(t, router, http.MethodGet, "/api/v1/health", "")

	assert.Equal(t, http.StatusOK, rec.Code, "health stays reachable when degraded")
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "degraded", data["status"])
}

func TestDataRoutesDegraded(t *testing.T) {
	router := newTestRouter(t, errors.New("fetch failed"))

	for _, path := range []string{"/api/v1/stats", "/api/v1/groups", "/api/v1/table", "/api/v1/export"} {
		rec, resp := doRequest(t, router, http.MethodGet, path, "")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, path)
		require.NotNil(t, resp.Error, path)
		assert.Equal(t, ErrCodeDatasetUnavailable, resp.Error.Code, path)
	}
}

func TestStats(t *testing.T) {
	router := newTestRouter(t, nil)
	rec, resp := doRequest(t, router, http.MethodGet, "/api/v1/stats", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "message_volume", data["dimension"])

	stats := data["stats"].(map[string]interface{})
	assert.Equal(t, float64(2), stats["total_users"])
}

func TestSelectDimension(t *testing.T) {
	router := newTestRouter(t, nil)

	rec, resp := doRequest(t, router, http.MethodPut, "/api/v1/dimension",
		`{"dimension":"member_join_time"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)

	_, resp = doRequest(t, router, http.MethodGet, "/api/v1/table", "")
	table := resp.Data.(map[string]interface{})
	assert.Equal(t, "tenure", table["slot"])
}

func TestSelectDimensionValidation(t *testing.T) {
	router := newTestRouter(t, nil)

	tests := []struct {
		name string
		body string
	}{
		{"unknown dimension", `{"dimension":"sentiment"}`},
		{"missing field", `{}`},
		{"unknown field", `{"dim":"overview"}`},
		{"malformed body", `{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := doRequest(t, router, http.MethodPut, "/api/v1/dimension", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			require.NotNil(t, resp.Error)
		})
	}
}

func TestSelectGroup(t *testing.T) {
	router := newTestRouter(t, nil)

	rec, _ := doRequest(t, router, http.MethodPut, "/api/v1/group", `{"group":"golang"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	_, resp := doRequest(t, router, http.MethodGet, "/api/v1/stats", "")
	data := resp.Data.(map[string]interface{})
	stats := data["stats"].(map[string]interface{})
	assert.Equal(t, float64(1), stats["total_users"])

	// Unknown group is rejected, empty group clears.
	rec, resp = doRequest(t, router, http.MethodPut, "/api/v1/group", `{"group":"rustaceans"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, resp.Error)

	rec, _ = doRequest(t, router, http.MethodPut, "/api/v1/group", `{"group":""}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGroups(t *testing.T) {
	router := newTestRouter(t, nil)
	_, resp := doRequest(t, router, http.MethodGet, "/api/v1/groups", "")

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(2), data["count"])
}

func TestChartSlot(t *testing.T) {
	router := newTestRouter(t, nil)

	rec, resp := doRequest(t, router, http.MethodGet, "/api/v1/charts/distribution", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	spec := resp.Data.(map[string]interface{})
	assert.Equal(t, "doughnut", spec["kind"])

	rec, _ = doRequest(t, router, http.MethodGet, "/api/v1/charts/sidebar", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUserDetail(t *testing.T) {
	router := newTestRouter(t, nil)

	rec, resp := doRequest(t, router, http.MethodGet, "/api/v1/users/1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	detail := resp.Data.(map[string]interface{})
	assert.Equal(t, "alice", detail["nickname"])

	rec, resp = doRequest(t, router, http.MethodGet, "/api/v1/users/404", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
}

func TestExportJSON(t *testing.T) {
	router := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/export?format=json", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "profile_message_volume_")
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
}

func TestExportUnsupportedFormat(t *testing.T) {
	router := newTestRouter(t, nil)
	rec, resp := doRequest(t, router, http.MethodGet, "/api/v1/export?format=xml", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, resp.Error)
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "groupscope_")
}
