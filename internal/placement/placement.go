// Package placement implements the guillotine placement algorithm: given a
// demand tile and a free leaf of a cut tree, it enumerates every legal way
// to place the tile (by orientation and by cut ordering) and returns the
// resulting trees. The input tree is never mutated; every Result carries a
// freshly cloned tree.
package placement

import (
	"github.com/piwi3910/cutstock/internal/geometry"
	"github.com/piwi3910/cutstock/internal/tile"
)

// CutFirstAxis controls which guillotine cut orderings are attempted when a
// tile doesn't fit a free leaf exactly.
type CutFirstAxis int

const (
	// Both tries the horizontal-first and vertical-first cut order and
	// emits both resulting trees as separate candidates.
	Both CutFirstAxis = iota
	HorizontalFirst
	VerticalFirst
)

// GrainPolicy controls whether a tile's Orientation is honored.
type GrainPolicy int

const (
	// Respect honors tile/mosaic Orientation: a tile is only rotated when
	// its orientation differs from the mosaic's, and only that one
	// orientation is attempted.
	Respect GrainPolicy = iota
	// Ignore tries both the original and rotated tile regardless of
	// Orientation.
	Ignore
)

// Result is one legal placement: a freshly cloned tree with the tile
// placed as a used leaf, and whether that placement used the rotated
// orientation.
type Result struct {
	Tree    *geometry.Tree
	Rotated bool
}

// Outcome is the full result of Fit: every legal placement variant, in
// the deterministic order original-before-rotated, HV-before-VH,
// exact-before-split, plus whether any rejection was purely due to the
// min-trim rule (as opposed to the tile simply being too large).
type Outcome struct {
	Variants          []Result
	MinTrimInfluenced bool
}

// Fit enumerates every legal guillotine placement of t onto source,
// given the mosaic's own orientation (for grain comparison), kerf, the
// minimum retained-offcut dimension, the grain policy, and which cut
// orderings to attempt. source is never mutated.
func Fit(t tile.Dimensions, mosaicOrientation tile.Orientation, source *geometry.Tree, kerf, minTrim int64, grain GrainPolicy, axis CutFirstAxis) Outcome {
	var out Outcome

	orientations := candidateOrientations(t, mosaicOrientation, grain)

	for _, leaf := range source.FreeLeaves() {
		r := source.Rect(leaf)
		for _, ot := range orientations {
			if ot.Width > r.Width() || ot.Height > r.Height() {
				continue // too large: not a min-trim rejection
			}

			wOK := r.Width() == ot.Width || r.Width() >= ot.Width+minTrim
			hOK := r.Height() == ot.Height || r.Height() >= ot.Height+minTrim
			if !wOK || !hOK {
				out.MinTrimInfluenced = true
				continue
			}

			out.Variants = append(out.Variants, placeOn(source, leaf, r, ot, kerf, axis)...)
		}
	}

	return out
}

// candidateOrientations returns the ordered list of tile orientations to
// attempt. With free rotation: original first, then rotated (skipped if
// square). Under Respect with a grain constraint: the single orientation
// that matches the mosaic (rotated when the orientations differ).
func candidateOrientations(t tile.Dimensions, mosaicOrientation tile.Orientation, grain GrainPolicy) []tile.Dimensions {
	freeRotation := grain == Ignore || mosaicOrientation == tile.OrientationAny || t.Orientation == tile.OrientationAny

	if freeRotation {
		out := []tile.Dimensions{t}
		if !t.IsSquare() {
			out = append(out, t.Rotate())
		}
		return out
	}

	if mosaicOrientation != t.Orientation {
		return []tile.Dimensions{t.Rotate()}
	}
	return []tile.Dimensions{t}
}

// placeOn produces every placement variant of ot onto the free leaf at
// id (whose rect is r) within a fresh clone of source, per the requested
// cut-first-axis policy.
func placeOn(source *geometry.Tree, id geometry.NodeID, r geometry.Rect, ot tile.Dimensions, kerf int64, axis CutFirstAxis) []Result {
	w, h := ot.Width, ot.Height
	rotated := ot.IsRotated

	if w == r.Width() && h == r.Height() {
		clone := source.Clone()
		clone.ConvertToUsed(id, ot.ID, rotated)
		return []Result{{Tree: clone, Rotated: rotated}}
	}

	var results []Result
	if axis == HorizontalFirst || axis == Both {
		results = append(results, splitHV(source, id, r, w, h, ot.ID, rotated, kerf))
	}
	if axis == VerticalFirst || axis == Both {
		results = append(results, splitVH(source, id, r, w, h, ot.ID, rotated, kerf))
	}
	return results
}

// splitHV places the tile using the horizontal-cut-first order: split
// along X first, then (if needed) along Y on the near child.
func splitHV(source *geometry.Tree, id geometry.NodeID, r geometry.Rect, w, h int64, externalID string, rotated bool, kerf int64) Result {
	clone := source.Clone()

	switch {
	case w == r.Width():
		// Width already matches; a single Y split suffices.
		used, _, _ := clone.Split(id, geometry.AxisV, r.Y1+h, kerf)
		clone.ConvertToUsed(used, externalID, rotated)
	case h == r.Height():
		// Height already matches; a single X split suffices.
		used, _, _ := clone.Split(id, geometry.AxisH, r.X1+w, kerf)
		clone.ConvertToUsed(used, externalID, rotated)
	default:
		left, _, _ := clone.Split(id, geometry.AxisH, r.X1+w, kerf)
		used, _, _ := clone.Split(left, geometry.AxisV, r.Y1+h, kerf)
		clone.ConvertToUsed(used, externalID, rotated)
	}

	return Result{Tree: clone, Rotated: rotated}
}

// splitVH places the tile using the vertical-cut-first order: split
// along Y first, then (if needed) along X on the near child.
func splitVH(source *geometry.Tree, id geometry.NodeID, r geometry.Rect, w, h int64, externalID string, rotated bool, kerf int64) Result {
	clone := source.Clone()

	switch {
	case h == r.Height():
		used, _, _ := clone.Split(id, geometry.AxisH, r.X1+w, kerf)
		clone.ConvertToUsed(used, externalID, rotated)
	case w == r.Width():
		used, _, _ := clone.Split(id, geometry.AxisV, r.Y1+h, kerf)
		clone.ConvertToUsed(used, externalID, rotated)
	default:
		top, _, _ := clone.Split(id, geometry.AxisV, r.Y1+h, kerf)
		used, _, _ := clone.Split(top, geometry.AxisH, r.X1+w, kerf)
		clone.ConvertToUsed(used, externalID, rotated)
	}

	return Result{Tree: clone, Rotated: rotated}
}
