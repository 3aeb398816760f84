// Package edgebanding is a pure post-pass: given a finished task's
// placed tiles, it accumulates per-edge-material linear length totals,
// plus a waste-adjusted figure and a per-tile breakdown.
package edgebanding

import (
	"math"

	"github.com/piwi3910/cutstock/internal/tile"
)

// LinearLength is the total banding length a single tile needs, in the
// tile's own length units: each banded side contributes its adjacent
// dimension (Top/Bottom run along Width, Left/Right run along Height).
func LinearLength(t tile.Dimensions) float64 {
	var length float64
	if t.EdgeBanding.Top != "" {
		length += float64(t.Width)
	}
	if t.EdgeBanding.Bottom != "" {
		length += float64(t.Width)
	}
	if t.EdgeBanding.Left != "" {
		length += float64(t.Height)
	}
	if t.EdgeBanding.Right != "" {
		length += float64(t.Height)
	}
	return length
}

// EdgeCount is the number of banded sides on a tile.
func EdgeCount(t tile.Dimensions) int {
	var n int
	if t.EdgeBanding.Top != "" {
		n++
	}
	if t.EdgeBanding.Bottom != "" {
		n++
	}
	if t.EdgeBanding.Left != "" {
		n++
	}
	if t.EdgeBanding.Right != "" {
		n++
	}
	return n
}

// MaterialTotal holds the accumulated banding length for one
// edge-banding material, independent of the tiles' own cut material.
type MaterialTotal struct {
	Material       string
	TotalLength    float64
	TotalWithWaste float64
	TileCount      int
	EdgeCount      int
}

// Accumulate sums per-edge-material linear length across every placed
// tile. wastePercent is an additional percentage added to every
// material's total (e.g. 10 for 10%).
func Accumulate(placed []tile.Dimensions, wastePercent float64) []MaterialTotal {
	totals := make(map[string]*MaterialTotal)
	var order []string

	add := func(material string, length float64) {
		if material == "" {
			return
		}
		m, ok := totals[material]
		if !ok {
			m = &MaterialTotal{Material: material}
			totals[material] = m
			order = append(order, material)
		}
		m.TotalLength += length
		m.EdgeCount++
	}

	for _, t := range placed {
		if !t.EdgeBanding.HasAny() {
			continue
		}
		if t.EdgeBanding.Top != "" {
			add(t.EdgeBanding.Top, float64(t.Width))
		}
		if t.EdgeBanding.Bottom != "" {
			add(t.EdgeBanding.Bottom, float64(t.Width))
		}
		if t.EdgeBanding.Left != "" {
			add(t.EdgeBanding.Left, float64(t.Height))
		}
		if t.EdgeBanding.Right != "" {
			add(t.EdgeBanding.Right, float64(t.Height))
		}
	}

	// Count each distinct banded tile once per material it contributes
	// to, independent of how many of its sides use that material.
	seen := make(map[string]map[string]bool)
	for _, t := range placed {
		if !t.EdgeBanding.HasAny() {
			continue
		}
		for _, mat := range []string{t.EdgeBanding.Top, t.EdgeBanding.Bottom, t.EdgeBanding.Left, t.EdgeBanding.Right} {
			if mat == "" {
				continue
			}
			if seen[mat] == nil {
				seen[mat] = make(map[string]bool)
			}
			if !seen[mat][t.ID] {
				seen[mat][t.ID] = true
				totals[mat].TileCount++
			}
		}
	}

	out := make([]MaterialTotal, 0, len(order))
	for _, mat := range order {
		m := *totals[mat]
		m.TotalWithWaste = math.Ceil(m.TotalLength * (100 + wastePercent) / 100)
		out = append(out, m)
	}
	return out
}
