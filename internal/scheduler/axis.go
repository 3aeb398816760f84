package scheduler

import (
	"sync"

	"github.com/piwi3910/cutstock/internal/config"
	"github.com/piwi3910/cutstock/internal/placement"
)

// axisStats tracks, per material and cut_first_axis variant, how many
// times that axis was tried and how many times it produced the pool's
// new best solution ("won"). An axis is eligible for a fresh worker job
// when it has not yet accumulated AxisEligibilityMinSamples attempts
// (everything gets a fair first look), or its observed win ratio is
// within AxisEligibilityFloor of the best ratio seen for this material.
type axisStats struct {
	mu       sync.Mutex
	cfg      config.SchedulerConfig
	attempts map[placement.CutFirstAxis]int
	wins     map[placement.CutFirstAxis]int
}

func newAxisStats(cfg config.SchedulerConfig) *axisStats {
	return &axisStats{
		cfg:      cfg,
		attempts: make(map[placement.CutFirstAxis]int),
		wins:     make(map[placement.CutFirstAxis]int),
	}
}

// RecordAttempt registers that axis was tried, and whether its job's
// result became the pool's new best.
func (a *axisStats) RecordAttempt(axis placement.CutFirstAxis, won bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.attempts[axis]++
	if won {
		a.wins[axis]++
	}
}

// Eligible reports whether axis should still be enqueued.
func (a *axisStats) Eligible(axis placement.CutFirstAxis) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.attempts[axis] < a.cfg.AxisEligibilityMinSamples {
		return true
	}

	best := -1.0
	for _, candidate := range []placement.CutFirstAxis{placement.Both, placement.HorizontalFirst, placement.VerticalFirst} {
		if a.attempts[candidate] == 0 {
			continue
		}
		ratio := float64(a.wins[candidate]) / float64(a.attempts[candidate])
		if ratio > best {
			best = ratio
		}
	}
	if best < 0 {
		return true
	}

	ratio := float64(a.wins[axis]) / float64(a.attempts[axis])
	return ratio >= best-a.cfg.AxisEligibilityFloor
}
