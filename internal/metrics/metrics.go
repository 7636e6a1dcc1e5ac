// Groupscope - Chat Group Member Profiling Dashboard
// Copyright 2026 X. Fang (xlfang)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/xlfang/groupscope

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// View refresh metrics
	RefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "groupscope_view_refresh_total",
			Help: "Total number of view controller refreshes",
		},
		[]string{"dimension"},
	)

	RenderFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "groupscope_render_failures_total",
			Help: "Total number of chart or table render failures",
		},
		[]string{"slot", "stage"}, // stage: "construct", "fallback"
	)

	ChartsLive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "groupscope_charts_live",
			Help: "Number of live chart instances across all slots",
		},
	)

	// Dataset metrics
	DatasetUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "groupscope_dataset_users",
			Help: "Number of users in the loaded dataset",
		},
	)

	DatasetLoadFailed = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "groupscope_dataset_load_failed",
			Help: "1 when the startup dataset load failed and the server is degraded",
		},
	)

	// HTTP metrics
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "groupscope_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "groupscope_http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		},
	)

	ExportTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "groupscope_export_total",
			Help: "Total number of dataset exports",
		},
		[]string{"format"},
	)
)

// RecordHTTPRequest observes one served request.
func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, strconv.Itoa(status)).Observe(duration.Seconds())
}
