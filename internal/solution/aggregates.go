package solution

import "math"

// PlacedTiles returns the number of demand tiles placed across every
// mosaic.
func (s *Solution) PlacedTiles() int {
	var n int
	for _, m := range s.Mosaics {
		n += len(m.Tree.UsedLeaves())
	}
	return n
}

// WastedArea sums the free-leaf area across every mosaic.
func (s *Solution) WastedArea() int64 {
	var total int64
	for _, m := range s.Mosaics {
		total += m.Tree.WastedArea()
	}
	return total
}

// CutCount sums the number of cuts across every mosaic.
func (s *Solution) CutCount() int {
	var n int
	for _, m := range s.Mosaics {
		n += m.Tree.CutCount()
	}
	return n
}

// MosaicCount is the number of mosaics (used stock panels) in the
// solution.
func (s *Solution) MosaicCount() int { return len(s.Mosaics) }

// NoFitCount is the number of demand tiles that could not be placed.
func (s *Solution) NoFitCount() int { return len(s.NoFit) }

// BiggestFreeArea returns the largest single free-leaf area across every
// mosaic.
func (s *Solution) BiggestFreeArea() int64 {
	var best int64
	for _, m := range s.Mosaics {
		if a := m.Tree.BiggestFreeArea(); a > best {
			best = a
		}
	}
	return best
}

// LargestUnusedStockArea returns the area of the largest panel still in
// the unused-stock queue.
func (s *Solution) LargestUnusedStockArea() int64 {
	var best int64
	for _, t := range s.UnusedStock {
		if a := t.Area(); a > best {
			best = a
		}
	}
	return best
}

// HVDiscrepancy sums, across every mosaic, the absolute difference
// between its horizontal-axis and vertical-axis cut counts.
func (s *Solution) HVDiscrepancy() int64 {
	var total int64
	for _, m := range s.Mosaics {
		h, v := m.Tree.AxisCutCounts()
		d := int64(h - v)
		if d < 0 {
			d = -d
		}
		total += d
	}
	return total
}

// CenterOfMassDistance returns the Euclidean distance from the
// area-weighted centroid of every used leaf (across every mosaic) to the
// origin.
func (s *Solution) CenterOfMassDistance() float64 {
	var sumArea, sumX, sumY float64
	for _, m := range s.Mosaics {
		for _, id := range m.Tree.UsedLeaves() {
			r := m.Tree.Rect(id)
			area := float64(r.Area())
			cx := float64(r.X1+r.X2) / 2
			cy := float64(r.Y1+r.Y2) / 2
			sumArea += area
			sumX += area * cx
			sumY += area * cy
		}
	}
	if sumArea == 0 {
		return 0
	}
	cx, cy := sumX/sumArea, sumY/sumArea
	return math.Sqrt(cx*cx + cy*cy)
}
