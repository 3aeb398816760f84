package scheduler

import (
	"sort"
	"strconv"
	"strings"

	"github.com/piwi3910/cutstock/internal/tile"
)

// GroupPermutations generates every distinct ordering of groups, per
// spec.md §4.7 step 4: if there are more than permuteCap distinct
// groups, only the first permuteCap (by descending area) are permuted,
// and the rest are appended in a fixed tail order. Permutations are
// deduplicated by a dimension-hash of their sequence.
func GroupPermutations(groups []Group, permuteCap int) [][]Group {
	if len(groups) == 0 {
		return nil
	}

	ordered := append([]Group(nil), groups...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Unit.Area() > ordered[j].Unit.Area()
	})

	head := ordered
	var tail []Group
	if len(ordered) > permuteCap {
		head = ordered[:permuteCap]
		tail = ordered[permuteCap:]
	}

	seen := make(map[string]bool)
	var out [][]Group
	permuteGroups(head, func(perm []Group) {
		full := append(append([]Group(nil), perm...), tail...)
		key := dimensionHash(full)
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, full)
	})
	return out
}

// permuteGroups calls emit once per distinct permutation of items
// (Heap's algorithm), in place.
func permuteGroups(items []Group, emit func([]Group)) {
	n := len(items)
	buf := append([]Group(nil), items...)

	var generate func(k int)
	generate = func(k int) {
		if k == 1 {
			emit(append([]Group(nil), buf...))
			return
		}
		for i := 0; i < k; i++ {
			generate(k - 1)
			if k%2 == 0 {
				buf[i], buf[k-1] = buf[k-1], buf[i]
			} else {
				buf[0], buf[k-1] = buf[k-1], buf[0]
			}
		}
	}
	generate(n)
}

func dimensionHash(groups []Group) string {
	var b strings.Builder
	for _, g := range groups {
		b.WriteString(strconv.FormatInt(g.Unit.Width, 10))
		b.WriteByte('x')
		b.WriteString(strconv.FormatInt(g.Unit.Height, 10))
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(g.Count))
		b.WriteByte('|')
	}
	return b.String()
}

// DemandOrdering flattens a group permutation into individual
// tile.Dimensions, preserving per-group internal order, ready to feed a
// permutation-worker job.
func DemandOrdering(groups []Group) []tile.Dimensions {
	return Expand(groups)
}
