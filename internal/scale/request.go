// Package scale implements request validation and the decimal→integer
// scaling step (spec.md §4.8): every dimension is multiplied by the
// smallest shared power of ten that makes it an integer, so the rest of
// the engine operates entirely in integer units.
package scale

import (
	"github.com/google/uuid"

	"github.com/piwi3910/cutstock/internal/tile"
)

const (
	MaxPanels      = 5000
	maxDigitBudget = 6
)

// DemandItem is one row of the caller's demand list: a tile type
// repeated Count times.
type DemandItem struct {
	ID          string           `json:"id"`
	Width       float64          `json:"width"`
	Height      float64          `json:"height"`
	Count       int              `json:"count"`
	Material    string           `json:"material"`
	Enabled     bool             `json:"enabled"`
	Orientation tile.Orientation `json:"orientation"`
	Label       string           `json:"label,omitempty"`
}

// StockItem is one row of the caller's stock list.
type StockItem struct {
	ID          string           `json:"id"`
	Width       float64          `json:"width"`
	Height      float64          `json:"height"`
	Count       int              `json:"count"`
	Material    string           `json:"material"`
	Enabled     bool             `json:"enabled"`
	Orientation tile.Orientation `json:"orientation"`
	Label       string           `json:"label,omitempty"`
}

// NewDemandItem mirrors the teacher's construction-with-fresh-id style.
func NewDemandItem(label string, w, h float64, count int, material string) DemandItem {
	return DemandItem{
		ID:       uuid.New().String(),
		Label:    label,
		Width:    w,
		Height:   h,
		Count:    count,
		Material: material,
		Enabled:  true,
	}
}

// NewStockItem mirrors the teacher's construction-with-fresh-id style.
func NewStockItem(label string, w, h float64, count int, material string) StockItem {
	return StockItem{
		ID:       uuid.New().String(),
		Label:    label,
		Width:    w,
		Height:   h,
		Count:    count,
		Material: material,
		Enabled:  true,
	}
}
