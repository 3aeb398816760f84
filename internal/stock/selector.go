package stock

import (
	"errors"
	"sort"
	"strconv"

	"github.com/piwi3910/cutstock/internal/tile"
)

// ErrGeneratorLimit is returned by Next when the selector has enumerated
// beyond its configured ceiling without producing a feasible candidate.
var ErrGeneratorLimit = errors.New("stock selector: exceeded enumeration ceiling without a feasible candidate")

// distinctType groups identical-dimension stock panels together so the
// selector enumerates by type-and-multiplicity rather than by individual
// panel identity.
type distinctType struct {
	panels []tile.Dimensions // every panel of this exact (w,h,material,orientation)
}

func (d distinctType) unit() tile.Dimensions { return d.panels[0] }

// Selector lazily enumerates StockSelection combinations of increasing
// length, most-promising (largest max-dimension, then largest area)
// first, skipping any combination that cannot in principle hold the
// demand and deduplicating by multiset identity.
type Selector struct {
	types       []distinctType
	demandArea  int64
	demandMaxD  int64
	length      int
	cursor      []int // current combination, as indices into types (with repetition)
	exhausted   bool
	seen        map[string]bool
	limit       int
	scanned     int
	uniquePanel bool
	uniqueNext  int // next multiplicity to emit in the unique-panel scenario
	uniqueMax   int
}

// NewSelector builds a Selector over the given stock inventory for the
// given total demand area and max dimension. lengthHint seeds the
// initial combination length (the caller's best guess at how many
// panels the demand will need); limit bounds total enumeration attempts
// before Next returns ErrGeneratorLimit.
func NewSelector(inventory []tile.Dimensions, demandArea, demandMaxDim int64, lengthHint, limit int) *Selector {
	groups := make(map[string]*distinctType)
	var order []string
	for _, t := range inventory {
		key := t.Material + "|" + strconv.FormatInt(t.Width, 10) + "x" + strconv.FormatInt(t.Height, 10) + "|" + strconv.Itoa(int(t.Orientation))
		g, ok := groups[key]
		if !ok {
			g = &distinctType{}
			groups[key] = g
			order = append(order, key)
		}
		g.panels = append(g.panels, t)
	}

	types := make([]distinctType, 0, len(order))
	for _, key := range order {
		types = append(types, *groups[key])
	}
	// Largest max-dimension first, then largest area, for most-promising-first order.
	sort.SliceStable(types, func(i, j int) bool {
		di, dj := types[i].unit(), types[j].unit()
		if di.MaxDim() != dj.MaxDim() {
			return di.MaxDim() > dj.MaxDim()
		}
		return di.Area() > dj.Area()
	})

	sel := &Selector{
		types:      types,
		demandArea: demandArea,
		demandMaxD: demandMaxDim,
		length:     max(1, lengthHint),
		seen:       make(map[string]bool),
		limit:      limit,
	}
	if len(types) == 1 {
		sel.uniquePanel = true
		sel.uniqueMax = len(types[0].panels)
		sel.uniqueNext = 1
	} else {
		sel.cursor = firstCombination(len(types), sel.length)
	}
	return sel
}

// Next returns the next feasible StockSelection, or (nil, false, nil)
// once the generator is exhausted, or (nil, false, err) if the
// enumeration ceiling is hit first.
func (s *Selector) Next() (Selection, bool, error) {
	if s.uniquePanel {
		return s.nextUnique()
	}
	return s.nextGeneral()
}

func (s *Selector) nextUnique() (Selection, bool, error) {
	for s.uniqueNext <= s.uniqueMax {
		mult := s.uniqueNext
		s.uniqueNext++
		sel := Selection(append([]tile.Dimensions(nil), s.types[0].panels[:mult]...))
		if s.feasible(sel) {
			return sel, true, nil
		}
	}
	return nil, false, nil
}

func (s *Selector) nextGeneral() (Selection, bool, error) {
	for {
		if s.exhausted {
			return nil, false, nil
		}
		if s.cursor == nil {
			s.length++
			if s.length > totalPanels(s.types) {
				s.exhausted = true
				return nil, false, nil
			}
			s.cursor = firstCombination(len(s.types), s.length)
		}

		for s.cursor != nil {
			s.scanned++
			if s.scanned > s.limit {
				return nil, false, ErrGeneratorLimit
			}

			sel := s.materialize(s.cursor)
			s.cursor = nextCombination(s.cursor, len(s.types))

			key := sel.key()
			if s.seen[key] {
				continue
			}
			s.seen[key] = true

			if s.feasible(sel) {
				return sel, true, nil
			}
		}
	}
}

func (s *Selector) feasible(sel Selection) bool {
	return sel.TotalArea() >= s.demandArea && sel.MaxDim() >= s.demandMaxD
}

// materialize expands a combination of type-indices (with repetition,
// one count per type) into a concrete Selection by taking one panel per
// occurrence of each type index, respecting each type's own inventory
// cap.
func (s *Selector) materialize(combo []int) Selection {
	counts := make(map[int]int)
	for _, idx := range combo {
		counts[idx]++
	}
	var sel Selection
	for idx, n := range counts {
		t := s.types[idx]
		if n > len(t.panels) {
			n = len(t.panels)
		}
		sel = append(sel, t.panels[:n]...)
	}
	return sel
}

func totalPanels(types []distinctType) int {
	var n int
	for _, t := range types {
		n += len(t.panels)
	}
	return n
}

// firstCombination returns the lexicographically first combination (with
// repetition) of length k drawn from n type-indices, or nil if n or k is
// zero.
func firstCombination(n, k int) []int {
	if n == 0 || k == 0 {
		return nil
	}
	c := make([]int, k)
	return c
}

// nextCombination advances a fixed-length cursor over [0, n) in odometer
// order, visiting every ordered k-tuple of type indices (nextGeneral
// drops repeated multisets by key), or returns nil once exhausted.
func nextCombination(c []int, n int) []int {
	next := append([]int(nil), c...)
	for i := len(next) - 1; i >= 0; i-- {
		next[i]++
		if next[i] < n {
			return next
		}
		next[i] = 0
		if i == 0 {
			return nil
		}
	}
	return nil
}
