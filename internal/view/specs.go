// Groupscope - Chat Group Member Profiling Dashboard
// Copyright 2026 X. Fang (xlfang)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/xlfang/groupscope

package view

import (
	"sort"

	"github.com/samber/lo"

	"github.com/xlfang/groupscope/internal/models"
)

// palette cycles through the dashboard chart colors.
var palette = []string{
	"#4e79a7", "#f28e2b", "#e15759", "#76b7b2", "#59a14f",
	"#edc948", "#b07aa1", "#ff9da7", "#9c755f", "#bab0ac",
}

func colorsFor(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = palette[i%len(palette)]
	}
	return out
}

// distributionSpec turns a category histogram into a doughnut payload.
// Labels are sorted so the same bundle always yields the same spec.
func distributionSpec(title string, dist map[string]int) models.ChartSpec {
	labels := lo.Keys(dist)
	sort.Strings(labels)
	data := lo.Map(labels, func(l string, _ int) float64 { return float64(dist[l]) })

	return models.ChartSpec{
		Kind:   "doughnut",
		Title:  title,
		Labels: labels,
		Datasets: []models.ChartDataset{{
			Label:  "Users",
			Data:   data,
			Colors: colorsFor(len(labels)),
		}},
	}
}

// rankingSpec turns a top-user list into a bar payload.
func rankingSpec(title string, top []models.TopUser) models.ChartSpec {
	labels := lo.Map(top, func(t models.TopUser, _ int) string { return t.Nickname })
	data := lo.Map(top, func(t models.TopUser, _ int) float64 { return float64(t.Count) })

	return models.ChartSpec{
		Kind:   "bar",
		Title:  title,
		Labels: labels,
		Datasets: []models.ChartDataset{{
			Label:  "Messages",
			Data:   data,
			Colors: colorsFor(len(labels)),
		}},
	}
}

// hourlySpec turns the 24-slot histogram into a line payload.
func hourlySpec(hourly []int) models.ChartSpec {
	labels := make([]string, 24)
	data := make([]float64, 24)
	for h := 0; h < 24; h++ {
		labels[h] = twoDigit(h)
		if h < len(hourly) {
			data[h] = float64(hourly[h])
		}
	}
	return models.ChartSpec{
		Kind:   "line",
		Title:  "Hourly Activity",
		Labels: labels,
		Datasets: []models.ChartDataset{{
			Label: "Messages",
			Data:  data,
		}},
	}
}

func twoDigit(h int) string {
	return string([]byte{'0' + byte(h/10), '0' + byte(h%10)})
}
