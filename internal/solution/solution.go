package solution

import (
	"sort"
	"strconv"

	"github.com/piwi3910/cutstock/internal/tile"
)

// IDGen hands out monotonically increasing Solution ids. Each
// worker.Run starts its own IDGen, so ids are unique within one worker
// run only; solutions from different runs in the same pool can share an
// id. Using a small integer rather than a random id keeps the final
// comparator's id tie-break deterministic across repeated runs with
// worker count = 1 (testable property 3 in spec.md §8).
type IDGen struct{ next int64 }

func (g *IDGen) Next() int64 {
	g.next++
	return g.next
}

// Solution is a complete candidate layout: a set of Mosaics (kept sorted
// by ascending free area so the tightest panel comes first), a queue of
// stock panels not yet materialized into a Mosaic, and a list of demand
// tiles that could not be placed anywhere. A Solution exclusively owns
// its Mosaics and lists.
type Solution struct {
	ID          int64
	Mosaics     []*Mosaic
	UnusedStock []tile.Dimensions
	NoFit       []tile.Dimensions
}

// New creates an empty Solution seeded with the given unused-stock queue
// (the StockSelection for a permutation worker run).
func New(id int64, unusedStock []tile.Dimensions) *Solution {
	return &Solution{
		ID:          id,
		UnusedStock: append([]tile.Dimensions(nil), unusedStock...),
	}
}

// Clone deep-copies every Mosaic and both lists.
func (s *Solution) Clone(newID int64) *Solution {
	mosaics := make([]*Mosaic, len(s.Mosaics))
	for i, m := range s.Mosaics {
		mosaics[i] = m.Clone()
	}
	return &Solution{
		ID:          newID,
		Mosaics:     mosaics,
		UnusedStock: append([]tile.Dimensions(nil), s.UnusedStock...),
		NoFit:       append([]tile.Dimensions(nil), s.NoFit...),
	}
}

// SortMosaics orders mosaics by ascending free area, tightest first.
func (s *Solution) SortMosaics() {
	sort.SliceStable(s.Mosaics, func(i, j int) bool {
		return s.Mosaics[i].FreeArea() < s.Mosaics[j].FreeArea()
	})
}

// DistinctTileSetSize returns the number of distinct material+dimension
// tile types placed across every mosaic in the solution.
func (s *Solution) DistinctTileSetSize() int {
	seen := make(map[string]struct{})
	for _, m := range s.Mosaics {
		for _, leaf := range m.Tree.UsedLeaves() {
			r := m.Tree.Rect(leaf)
			key := m.Material + ":" + strconv.FormatInt(r.Width(), 10) + "x" + strconv.FormatInt(r.Height(), 10)
			seen[key] = struct{}{}
		}
	}
	return len(seen)
}
