// Groupscope - Chat Group Member Profiling Dashboard
// Copyright 2026 X. Fang (xlfang)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/xlfang/groupscope

// Package social derives a behavioral archetype for users whose records
// carry no precomputed social_behavior classification.
//
// The classifier has no access to message content, so the five interaction
// ratios it scores are deterministic pseudo-random estimates seeded from
// the user identifier and biased by message volume and group spread. Same
// identifier, same counts, same result, always; the classifier runs on
// every filter change and any nondeterminism would flicker the charts.
package social

import (
	"hash/fnv"
)

// Archetype labels.
const (
	Proactive  = "proactive"
	Responsive = "responsive"
	Passive    = "passive"
	Observer   = "observer"
)

// Result is one classification outcome.
type Result struct {
	Archetype  string
	Score      float64
	Confidence float64
	Ratios     Ratios
}

// Ratios are the five estimated interaction rates, each in [0,1].
type Ratios struct {
	Initiation float64
	Question   float64
	Mention    float64
	Reply      float64
	Mentioned  float64
}

// tier buckets users by absolute message count. Weights below shift with
// the tier: at very high volume the initiation ratio alone stops being
// informative and raw activity dominates.
func tier(messageCount int) int {
	switch {
	case messageCount >= 500:
		return 4
	case messageCount >= 100:
		return 3
	case messageCount >= 20:
		return 2
	case messageCount > 0:
		return 1
	default:
		return 0
	}
}

// scoreFloor is the minimum winning score. Anything quieter is an observer
// no matter which archetype nominally leads.
const scoreFloor = 0.18

// Classify returns the archetype for a user. It is a pure function of its
// arguments.
func Classify(userID string, messageCount, groupCount int) Result {
	r := estimateRatios(userID, messageCount, groupCount)
	t := tier(messageCount)

	scores := map[string]float64{
		Proactive:  scoreProactive(r, t),
		Responsive: scoreResponsive(r, t),
		Passive:    scorePassive(r, t),
		Observer:   scoreObserver(r, t),
	}

	best, runnerUp := Observer, 0.0
	bestScore := -1.0
	for _, a := range []string{Proactive, Responsive, Passive, Observer} {
		s := scores[a]
		if s > bestScore {
			runnerUp = bestScore
			best, bestScore = a, s
		} else if s > runnerUp {
			runnerUp = s
		}
	}

	if bestScore < scoreFloor {
		return Result{
			Archetype:  Observer,
			Score:      round3(scores[Observer]),
			Confidence: 0.5,
			Ratios:     r,
		}
	}

	gap := bestScore - runnerUp
	confidence := 0.5 + gap
	if confidence > 0.99 {
		confidence = 0.99
	}
	return Result{
		Archetype:  best,
		Score:      round3(bestScore),
		Confidence: round3(confidence),
		Ratios:     r,
	}
}

// estimateRatios draws the five ratios from a splitmix-style generator
// seeded by FNV-1a of the identifier, then biases them by message tier and
// group count. Heavier posters initiate and reply more; users spread over
// many groups get mentioned more.
func estimateRatios(userID string, messageCount, groupCount int) Ratios {
	h := fnv.New64a()
	h.Write([]byte(userID))
	rng := splitmix{state: h.Sum64()}

	t := float64(tier(messageCount)) / 4
	g := float64(groupCount)
	if g > 5 {
		g = 5
	}
	groupBias := g / 5

	r := Ratios{
		Initiation: clamp01(rng.float()*0.30 + t*0.35),
		Question:   clamp01(rng.float()*0.25 + t*0.15),
		Mention:    clamp01(rng.float()*0.20 + groupBias*0.20),
		Reply:      clamp01(rng.float()*0.35 + t*0.25),
		Mentioned:  clamp01(rng.float()*0.15 + t*0.10 + groupBias*0.15),
	}
	if messageCount == 0 {
		// Silent users cannot initiate, question, reply, or mention.
		r.Initiation, r.Question, r.Mention, r.Reply = 0, 0, 0, 0
	}
	return r
}

func scoreProactive(r Ratios, t int) float64 {
	w := 0.40
	if t >= 3 {
		// At high volume, absolute initiation matters more than its ratio.
		w = 0.50
	}
	return r.Initiation*w + r.Question*0.30 + r.Mention*0.20 + r.Mentioned*0.10
}

func scoreResponsive(r Ratios, t int) float64 {
	w := 0.45
	if t <= 1 {
		w = 0.35
	}
	return r.Reply*w + r.Mentioned*0.30 + r.Question*0.15 + r.Mention*0.10
}

func scorePassive(r Ratios, _ int) float64 {
	return r.Mentioned*0.50 + r.Reply*0.30 + (1-r.Initiation)*0.20
}

func scoreObserver(r Ratios, t int) float64 {
	s := (1-r.Initiation)*0.30 + (1-r.Reply)*0.30 + (1-r.Mentioned)*0.20
	// Raw message volume argues against the observer label no matter how
	// the ratios fall.
	s *= 1 - 0.15*float64(t)
	if t == 0 {
		s += 0.20
	}
	return s
}

// splitmix is SplitMix64, enough PRNG for biased ratio sampling.
type splitmix struct {
	state uint64
}

func (s *splitmix) next() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

func (s *splitmix) float() float64 {
	return float64(s.next()>>11) / float64(1<<53)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func round3(v float64) float64 {
	return float64(int(v*1000+0.5)) / 1000
}
