// Package stock implements StockSelection (an ordered multiset of stock
// panels) and the lazy Selector that enumerates candidate multisets in
// most-promising-first order, generalizing the teacher's single-best-pick
// selectBestStock into a full enumeration the scheduler can iterate.
package stock

import (
	"sort"
	"strings"

	"github.com/piwi3910/cutstock/internal/tile"
)

// Selection is an ordered multiset of stock tile.Dimensions chosen as
// the raw material for one worker run.
type Selection []tile.Dimensions

// TotalArea sums the area of every panel in the selection.
func (s Selection) TotalArea() int64 {
	var total int64
	for _, t := range s {
		total += t.Area()
	}
	return total
}

// MaxDim returns the largest max(width,height) across the selection.
func (s Selection) MaxDim() int64 {
	var best int64
	for _, t := range s {
		if d := t.MaxDim(); d > best {
			best = d
		}
	}
	return best
}

// key is the multiset-equality key for a Selection: the sorted list of
// member ids, joined. Two selections with the same ids in any order are
// the same multiset per spec.md's StockSelection equality rule.
func (s Selection) key() string {
	ids := make([]string, len(s))
	for i, t := range s {
		ids[i] = t.ID
	}
	sort.Strings(ids)
	return strings.Join(ids, ",")
}
