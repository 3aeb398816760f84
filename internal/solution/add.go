package solution

import (
	"github.com/piwi3910/cutstock/internal/placement"
	"github.com/piwi3910/cutstock/internal/tile"
)

// AddTile extends the receiver by one demand tile, per spec.md §4.3:
//
//  1. Every mosaic with matching material is offered the tile by the
//     placement engine; each legal variant becomes a successor clone.
//  2. If no mosaic placed it, every unused stock panel large enough (by
//     area and max-dimension) is tried as a fresh mosaic; each legal
//     variant becomes a successor clone with that panel consumed.
//  3. If still unplaced, a single successor is emitted with the tile
//     appended to NoFit.
//
// The receiver itself is never mutated. minTrimInfluenced reports
// whether any rejection anywhere in the attempt was due purely to the
// min-trim rule.
func (s *Solution) AddTile(t tile.Dimensions, kerf, minTrim int64, grain placement.GrainPolicy, axis placement.CutFirstAxis, idGen *IDGen) (successors []*Solution, minTrimInfluenced bool) {
	for i, m := range s.Mosaics {
		if m.Material != t.Material {
			continue
		}
		outcome := placement.Fit(t, m.StockOrientation, m.Tree, kerf, minTrim, grain, axis)
		minTrimInfluenced = minTrimInfluenced || outcome.MinTrimInfluenced

		for _, variant := range outcome.Variants {
			clone := s.Clone(idGen.Next())
			clone.Mosaics[i] = &Mosaic{
				ID:               m.ID,
				StockID:          m.StockID,
				Material:         m.Material,
				StockOrientation: m.StockOrientation,
				Tree:             variant.Tree,
			}
			clone.SortMosaics()
			successors = append(successors, clone)
		}
	}

	if len(successors) > 0 {
		return successors, minTrimInfluenced
	}

	// No existing mosaic could take it: try every distinct unused stock
	// type large enough in area and max-dimension. Consuming any one
	// instance of a repeated stock type yields an isomorphic solution, so
	// only the first instance of each distinct (dims, material,
	// orientation) combination is attempted.
	type stockKey struct {
		w, h int64
		mat  string
		or   tile.Orientation
	}
	triedTypes := make(map[stockKey]bool)
	for idx, stock := range s.UnusedStock {
		if stock.Material != t.Material {
			continue
		}
		if stock.Area() < t.Area() || stock.MaxDim() < t.MaxDim() {
			continue
		}
		key := stockKey{stock.Width, stock.Height, stock.Material, stock.Orientation}
		if triedTypes[key] {
			continue
		}
		triedTypes[key] = true

		fresh := NewMosaic(stock)
		outcome := placement.Fit(t, stock.Orientation, fresh.Tree, kerf, minTrim, grain, axis)
		minTrimInfluenced = minTrimInfluenced || outcome.MinTrimInfluenced

		for _, variant := range outcome.Variants {
			clone := s.Clone(idGen.Next())
			clone.UnusedStock = removeAt(s.UnusedStock, idx)
			clone.Mosaics = append(clone.Mosaics, &Mosaic{
				ID:               fresh.ID,
				StockID:          fresh.StockID,
				Material:         fresh.Material,
				StockOrientation: fresh.StockOrientation,
				Tree:             variant.Tree,
			})
			clone.SortMosaics()
			successors = append(successors, clone)
		}
	}

	if len(successors) > 0 {
		return successors, minTrimInfluenced
	}

	clone := s.Clone(idGen.Next())
	clone.NoFit = append(clone.NoFit, t)
	return []*Solution{clone}, minTrimInfluenced
}

func removeAt(ts []tile.Dimensions, idx int) []tile.Dimensions {
	out := make([]tile.Dimensions, 0, len(ts)-1)
	out = append(out, ts[:idx]...)
	out = append(out, ts[idx+1:]...)
	return out
}
