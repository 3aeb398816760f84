package worker

import (
	"context"
	"time"

	"github.com/piwi3910/cutstock/internal/placement"
	"github.com/piwi3910/cutstock/internal/ranking"
	"github.com/piwi3910/cutstock/internal/solution"
	"github.com/piwi3910/cutstock/internal/stock"
	"github.com/piwi3910/cutstock/internal/tile"
)

// Job bundles every input a single permutation-worker run needs, per
// spec.md §4.6.
type Job struct {
	Permutation    []tile.Dimensions
	Selection      stock.Selection
	Kerf, MinTrim  int64
	Grain          placement.GrainPolicy
	Axis           placement.CutFirstAxis
	Intermediate   ranking.Sequence
	AccuracyFactor int
}

// ProgressFunc is called periodically (after each tile addition) with
// the count of tiles placed so far out of the total in the permutation.
type ProgressFunc func(placedSoFar, total int)

// Run executes one permutation-worker job: seed, extend tile by tile
// with intermediate-rank truncation, then publish every survivor into
// pool. It reports progress via report (may be nil) and checks
// cancelled at every tile boundary, returning early (without
// publishing) if it fires.
//
// minTrimInfluenced reports whether min-trim rejected at least one
// placement anywhere during this run. The scheduler does not read it,
// and no task field records it.
func Run(ctx context.Context, job Job, pool *Pool, cancelled <-chan struct{}, report ProgressFunc) (minTrimInfluenced bool) {
	idGen := &solution.IDGen{}
	survivors := []*solution.Solution{solution.New(idGen.Next(), job.Selection)}

	total := len(job.Permutation)
	for i, t := range job.Permutation {
		select {
		case <-ctx.Done():
			return minTrimInfluenced
		case <-cancelled:
			return minTrimInfluenced
		default:
		}

		var next []*solution.Solution
		for _, s := range survivors {
			successors, influenced := s.AddTile(t, job.Kerf, job.MinTrim, job.Grain, job.Axis, idGen)
			minTrimInfluenced = minTrimInfluenced || influenced
			next = append(next, successors...)
		}

		next = dedupeByCanonicalShape(next)
		job.Intermediate.Sort(next)
		if job.AccuracyFactor > 0 && len(next) > job.AccuracyFactor {
			next = next[:job.AccuracyFactor]
		}
		survivors = next

		if report != nil {
			report(i+1, total)
		}
	}

	select {
	case <-cancelled:
		return minTrimInfluenced
	default:
		pool.Publish(survivors)
	}
	return minTrimInfluenced
}

// dedupeByCanonicalShape removes structurally-equivalent survivors,
// keeping the first (best-ranked-so-far, since survivors arrives in
// extension order from an already-sorted predecessor set) occurrence of
// each distinct shape.
func dedupeByCanonicalShape(survivors []*solution.Solution) []*solution.Solution {
	seen := make(map[string]bool, len(survivors))
	out := make([]*solution.Solution, 0, len(survivors))
	for _, s := range survivors {
		key := canonicalKey(s)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}

func canonicalKey(s *solution.Solution) string {
	key := ""
	for _, m := range s.Mosaics {
		key += m.Tree.CanonicalID() + ";"
	}
	return key
}

// ThrottledProgress wraps a ProgressFunc so it fires at most once per
// interval, regardless of how often Run calls it; the final call
// (placedSoFar == total) always fires.
func ThrottledProgress(interval time.Duration, fn ProgressFunc) ProgressFunc {
	var last time.Time
	return func(placedSoFar, total int) {
		now := time.Now()
		if placedSoFar != total && now.Sub(last) < interval {
			return
		}
		last = now
		fn(placedSoFar, total)
	}
}
