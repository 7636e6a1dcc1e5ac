// Groupscope - Chat Group Member Profiling Dashboard
// Copyright 2026 X. Fang (xlfang)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/xlfang/groupscope

package view

import (
	"errors"
	"fmt"

	"github.com/xlfang/groupscope/internal/logging"
	"github.com/xlfang/groupscope/internal/metrics"
	"github.com/xlfang/groupscope/internal/models"
)

// Chart slot names. A slot is a named mount point on the dashboard layout;
// rendering into an unknown slot is a silent skip, not an error, because
// partial layouts are expected when dimensions share a content area.
const (
	SlotDistribution = "distribution"
	SlotRanking      = "ranking"
	SlotHourly       = "hourly"
)

// ErrDestroyed is returned when a destroyed chart handle is used.
var ErrDestroyed = errors.New("chart instance destroyed")

// chartInstance is a live chart widget. Handles are owned exclusively by
// the registry; nothing else may retain one across redraws.
type chartInstance struct {
	spec      models.ChartSpec
	destroyed bool
}

// newChartInstance validates the spec the way a real charting widget
// would: a known kind and dataset lengths matching the label axis.
func newChartInstance(spec models.ChartSpec) (*chartInstance, error) {
	switch spec.Kind {
	case "doughnut", "bar", "line", "pie":
	default:
		return nil, fmt.Errorf("unsupported chart kind %q", spec.Kind)
	}
	for _, ds := range spec.Datasets {
		if len(ds.Data) != len(spec.Labels) {
			return nil, fmt.Errorf("dataset %q has %d points for %d labels",
				ds.Label, len(ds.Data), len(spec.Labels))
		}
	}
	return &chartInstance{spec: spec}, nil
}

// minimalSpec strips a failing spec down to something a widget cannot
// reject: bar kind, no colors, datasets truncated to the label axis.
func minimalSpec(spec models.ChartSpec) models.ChartSpec {
	out := models.ChartSpec{Kind: "bar", Title: spec.Title, Labels: spec.Labels}
	for _, ds := range spec.Datasets {
		data := ds.Data
		if len(data) > len(out.Labels) {
			data = data[:len(out.Labels)]
		}
		for len(data) < len(out.Labels) {
			data = append(data, 0)
		}
		out.Datasets = append(out.Datasets, models.ChartDataset{Label: ds.Label, Data: data})
	}
	return out
}

func (c *chartInstance) Destroy() {
	c.destroyed = true
}

// Spec returns the rendered spec, refusing after Destroy.
func (c *chartInstance) Spec() (models.ChartSpec, error) {
	if c.destroyed {
		return models.ChartSpec{}, ErrDestroyed
	}
	return c.spec, nil
}

// ChartRegistry maps slots to live chart instances. It is the sole owner
// of instance handles and guarantees at most one live instance per slot.
// Not safe for concurrent use; the view controller serializes access.
type ChartRegistry struct {
	slots     map[string]struct{}
	instances map[string]*chartInstance
}

// NewChartRegistry creates a registry with the given mount points.
func NewChartRegistry(slots ...string) *ChartRegistry {
	r := &ChartRegistry{
		slots:     make(map[string]struct{}, len(slots)),
		instances: make(map[string]*chartInstance),
	}
	for _, s := range slots {
		r.slots[s] = struct{}{}
	}
	return r
}

// Render draws spec into slot, destroying any previous instance first.
// Construction failure triggers one minimal-config retry; if that also
// fails the slot is left empty and the failure logged, never raised.
func (r *ChartRegistry) Render(slot string, spec models.ChartSpec) {
	if _, ok := r.slots[slot]; !ok {
		logging.Debug().Str("slot", slot).Msg("chart slot not on active layout, skipping")
		return
	}

	if prev, ok := r.instances[slot]; ok {
		prev.Destroy()
		delete(r.instances, slot)
	}

	inst, err := newChartInstance(spec)
	if err != nil {
		metrics.RenderFailures.WithLabelValues(slot, "construct").Inc()
		logging.Warn().Err(err).Str("slot", slot).Msg("chart construction failed, retrying with minimal config")

		inst, err = newChartInstance(minimalSpec(spec))
		if err != nil {
			metrics.RenderFailures.WithLabelValues(slot, "fallback").Inc()
			logging.Error().Err(err).Str("slot", slot).Msg("chart fallback failed, leaving slot empty")
			r.updateLiveGauge()
			return
		}
	}

	r.instances[slot] = inst
	r.updateLiveGauge()
}

// Spec returns the live chart payload for slot.
func (r *ChartRegistry) Spec(slot string) (models.ChartSpec, bool) {
	inst, ok := r.instances[slot]
	if !ok {
		return models.ChartSpec{}, false
	}
	spec, err := inst.Spec()
	if err != nil {
		return models.ChartSpec{}, false
	}
	return spec, true
}

// Destroy tears down the live instance in slot, if any.
func (r *ChartRegistry) Destroy(slot string) {
	if inst, ok := r.instances[slot]; ok {
		inst.Destroy()
		delete(r.instances, slot)
		r.updateLiveGauge()
	}
}

// Live returns the number of live instances.
func (r *ChartRegistry) Live() int { return len(r.instances) }

// DestroyAll tears down every live instance.
func (r *ChartRegistry) DestroyAll() {
	for slot, inst := range r.instances {
		inst.Destroy()
		delete(r.instances, slot)
	}
	r.updateLiveGauge()
}

func (r *ChartRegistry) updateLiveGauge() {
	metrics.ChartsLive.Set(float64(len(r.instances)))
}
