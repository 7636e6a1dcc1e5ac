// Groupscope - Chat Group Member Profiling Dashboard
// Copyright 2026 X. Fang (xlfang)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/xlfang/groupscope

package view

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xlfang/groupscope/internal/models"
)

func doughnut(labels ...string) models.ChartSpec {
	data := make([]float64, len(labels))
	for i := range data {
		data[i] = float64(i + 1)
	}
	return models.ChartSpec{
		Kind:     "doughnut",
		Title:    "test",
		Labels:   labels,
		Datasets: []models.ChartDataset{{Label: "Users", Data: data}},
	}
}

func TestRenderSingleLiveInstance(t *testing.T) {
	r := NewChartRegistry(SlotDistribution)

	// Many successive renders into the same slot must never accumulate
	// instances.
	for i := 0; i < 50; i++ {
		r.Render(SlotDistribution, doughnut(fmt.Sprintf("cat-%d", i)))
		assert.Equal(t, 1, r.Live())
	}

	spec, ok := r.Spec(SlotDistribution)
	require.True(t, ok)
	assert.Equal(t, []string{"cat-49"}, spec.Labels, "latest render wins")
}

func TestRenderUnknownSlotSilentSkip(t *testing.T) {
	r := NewChartRegistry(SlotDistribution)

	r.Render("sidebar", doughnut("a"))

	assert.Equal(t, 0, r.Live())
	_, ok := r.Spec("sidebar")
	assert.False(t, ok)
}

func TestRenderFallbackOnBadSpec(t *testing.T) {
	r := NewChartRegistry(SlotRanking)

	// Mismatched data length fails strict construction; the minimal-config
	// retry truncates and succeeds.
	bad := models.ChartSpec{
		Kind:   "bar",
		Labels: []string{"a", "b"},
		Datasets: []models.ChartDataset{{
			Label: "Messages",
			Data:  []float64{1, 2, 3, 4},
		}},
	}
	r.Render(SlotRanking, bad)

	spec, ok := r.Spec(SlotRanking)
	require.True(t, ok)
	assert.Equal(t, "bar", spec.Kind)
	assert.Len(t, spec.Datasets[0].Data, 2)
}

func TestRenderUnknownKindFallsBack(t *testing.T) {
	r := NewChartRegistry(SlotDistribution)

	spec := doughnut("a", "b")
	spec.Kind = "hologram"
	r.Render(SlotDistribution, spec)

	got, ok := r.Spec(SlotDistribution)
	require.True(t, ok)
	assert.Equal(t, "bar", got.Kind, "fallback coerces to a safe kind")
}

func TestDestroyedHandleRefusesUse(t *testing.T) {
	inst, err := newChartInstance(doughnut("a"))
	require.NoError(t, err)

	inst.Destroy()
	_, err = inst.Spec()
	assert.ErrorIs(t, err, ErrDestroyed)
}

func TestDestroyAll(t *testing.T) {
	r := NewChartRegistry(SlotDistribution, SlotRanking)
	r.Render(SlotDistribution, doughnut("a"))
	r.Render(SlotRanking, doughnut("b"))
	require.Equal(t, 2, r.Live())

	r.DestroyAll()
	assert.Equal(t, 0, r.Live())
}
