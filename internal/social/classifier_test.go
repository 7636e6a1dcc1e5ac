// Groupscope - Chat Group Member Profiling Dashboard
// Copyright 2026 X. Fang (xlfang)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/xlfang/groupscope

package social

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyDeterministic(t *testing.T) {
	inputs := []struct {
		id       string
		messages int
		groups   int
	}{
		{"100001", 250, 3},
		{"wxid_k3j2h", 45, 1},
		{"silent", 0, 2},
		{"", 10, 1},
	}

	for _, in := range inputs {
		t.Run(fmt.Sprintf("%s/%d/%d", in.id, in.messages, in.groups), func(t *testing.T) {
			first := Classify(in.id, in.messages, in.groups)
			for i := 0; i < 20; i++ {
				assert.Equal(t, first, Classify(in.id, in.messages, in.groups))
			}
		})
	}
}

func TestClassifyKnownArchetype(t *testing.T) {
	valid := map[string]bool{
		Proactive:  true,
		Responsive: true,
		Passive:    true,
		Observer:   true,
	}
	for i := 0; i < 200; i++ {
		r := Classify(fmt.Sprintf("user-%d", i), i*7, i%6)
		assert.True(t, valid[r.Archetype], "archetype %q", r.Archetype)
	}
}

func TestClassifyConfidenceBounds(t *testing.T) {
	for i := 0; i < 200; i++ {
		r := Classify(fmt.Sprintf("user-%d", i), i*3, i%5)
		assert.GreaterOrEqual(t, r.Confidence, 0.5)
		assert.LessOrEqual(t, r.Confidence, 0.99)
	}
}

func TestClassifySilentUserRatios(t *testing.T) {
	r := Classify("ghost", 0, 1)
	assert.Zero(t, r.Ratios.Initiation)
	assert.Zero(t, r.Ratios.Question)
	assert.Zero(t, r.Ratios.Mention)
	assert.Zero(t, r.Ratios.Reply)
}

func TestClassifyRatiosClamped(t *testing.T) {
	for i := 0; i < 100; i++ {
		r := Classify(fmt.Sprintf("u%d", i), 1000, 10).Ratios
		for _, v := range []float64{r.Initiation, r.Question, r.Mention, r.Reply, r.Mentioned} {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	}
}

func TestTier(t *testing.T) {
	tests := []struct {
		messages int
		want     int
	}{
		{0, 0},
		{1, 1},
		{19, 1},
		{20, 2},
		{99, 2},
		{100, 3},
		{499, 3},
		{500, 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tier(tt.messages), "messages=%d", tt.messages)
	}
}

func TestHighVolumeUsersSkewProactive(t *testing.T) {
	// Heavy posters get boosted initiation and reply ratios, so across a
	// population the proactive and responsive archetypes should dominate.
	counts := map[string]int{}
	for i := 0; i < 100; i++ {
		r := Classify(fmt.Sprintf("heavy-%d", i), 800, 4)
		counts[r.Archetype]++
	}
	engaged := counts[Proactive] + counts[Responsive]
	assert.Greater(t, engaged, counts[Observer])
}
