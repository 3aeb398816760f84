// Package ranking implements the sub-comparator set and the two fixed
// final-comparator sequences used to order candidate solutions,
// generalizing the teacher's two-key best-strategy comparison to the
// full multi-key vector named by the optimizer's priority setting.
package ranking

import (
	"sort"

	"github.com/piwi3910/cutstock/internal/solution"
)

// Comparator compares a and b on a single key and returns a signed
// result (see the sub-comparator set below for the sign convention).
// Comparators are combined into a total order by Sequence, which falls
// back to id for any pair left tied by every key.
type Comparator func(a, b *solution.Solution) int

// The closed set of named sub-comparators. Each returns negative when a
// is better, positive when b is better, and zero when tied on this key
// alone.
var (
	MostTiles = Comparator(func(a, b *solution.Solution) int {
		return intCompare(b.PlacedTiles(), a.PlacedTiles())
	})

	LeastWastedArea = Comparator(func(a, b *solution.Solution) int {
		return int64Compare(a.WastedArea(), b.WastedArea())
	})

	LeastCuts = Comparator(func(a, b *solution.Solution) int {
		return intCompare(a.CutCount(), b.CutCount())
	})

	HvDiscrepancy = Comparator(func(a, b *solution.Solution) int {
		return int64Compare(a.HVDiscrepancy(), b.HVDiscrepancy())
	})

	BiggestUnusedTileArea = Comparator(func(a, b *solution.Solution) int {
		return int64Compare(b.BiggestFreeArea(), a.BiggestFreeArea())
	})

	SmallestCenterOfMassToOrigin = Comparator(func(a, b *solution.Solution) int {
		return floatCompare(a.CenterOfMassDistance(), b.CenterOfMassDistance())
	})

	LeastMosaics = Comparator(func(a, b *solution.Solution) int {
		return intCompare(a.MosaicCount(), b.MosaicCount())
	})

	LeastUnusedTiles = Comparator(func(a, b *solution.Solution) int {
		return intCompare(a.NoFitCount(), b.NoFitCount())
	})

	MostUnusedPanelArea = Comparator(func(a, b *solution.Solution) int {
		return int64Compare(b.LargestUnusedStockArea(), a.LargestUnusedStockArea())
	})
)

func intCompare(x, y int) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

func int64Compare(x, y int64) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

func floatCompare(x, y float64) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

// Sequence is an ordered vector of sub-comparators evaluated left to
// right; the first key that distinguishes two solutions decides. A pair
// still tied after every key falls back to ascending Solution id, which
// makes Sequence a total order and keeps the final winner deterministic
// across repeated single-worker runs.
type Sequence []Comparator

// Less reports whether a ranks strictly ahead of b under the sequence.
func (seq Sequence) Less(a, b *solution.Solution) bool {
	for _, cmp := range seq {
		if d := cmp(a, b); d != 0 {
			return d < 0
		}
	}
	return a.ID < b.ID
}

// Best returns the highest-ranked solution in candidates under seq.
// Panics if candidates is empty; callers are expected to have already
// filtered out an empty survivor set.
func (seq Sequence) Best(candidates []*solution.Solution) *solution.Solution {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if seq.Less(c, best) {
			best = c
		}
	}
	return best
}

// Sort orders candidates best-first under seq, in place.
func (seq Sequence) Sort(candidates []*solution.Solution) {
	sort.SliceStable(candidates, func(i, j int) bool { return seq.Less(candidates[i], candidates[j]) })
}
