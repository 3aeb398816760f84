// Package solution implements the candidate-layout model: mosaics (one
// cut tree per stock panel), the full solution (mosaics + unused stock +
// no-fit list), survivor extension, and the ranking metrics solutions
// expose to the comparator vector in package ranking.
package solution

import (
	"github.com/google/uuid"

	"github.com/piwi3910/cutstock/internal/geometry"
	"github.com/piwi3910/cutstock/internal/tile"
)

// Mosaic is a rooted cut tree for one stock panel, plus that panel's
// material and stock id. A Mosaic exclusively owns its tree; Clone deep
// copies it.
type Mosaic struct {
	ID               string
	StockID          string
	Material         string
	StockOrientation tile.Orientation
	Tree             *geometry.Tree
}

// NewMosaic creates a fresh single-free-leaf mosaic from a stock panel.
func NewMosaic(stock tile.Dimensions) *Mosaic {
	return &Mosaic{
		ID:               uuid.New().String(),
		StockID:          stock.ID,
		Material:         stock.Material,
		StockOrientation: stock.Orientation,
		Tree:             geometry.NewTree(geometry.NewRect(0, 0, stock.Width, stock.Height)),
	}
}

// Clone deep-copies the mosaic's tree; the two Mosaics share no mutable
// state afterward.
func (m *Mosaic) Clone() *Mosaic {
	return &Mosaic{
		ID:               m.ID,
		StockID:          m.StockID,
		Material:         m.Material,
		StockOrientation: m.StockOrientation,
		Tree:             m.Tree.Clone(),
	}
}

// FreeArea is the mosaic's total unused area, used to keep a Solution's
// mosaic list sorted so the tightest panel comes first.
func (m *Mosaic) FreeArea() int64 { return m.Tree.WastedArea() }
