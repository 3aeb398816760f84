package scale

import (
	"math"
	"strconv"
	"strings"

	"github.com/piwi3910/cutstock/internal/task"
	"github.com/piwi3910/cutstock/internal/tile"
)

// Result is the scaled, validated request: every dimension is now an
// integer in the chosen unit, kerf and min-trim included. Factor is the
// exponent: every input dimension was multiplied by 10^Factor.
type Result struct {
	Demand  []tile.Dimensions
	Stock   []tile.Dimensions
	Kerf    int64
	MinTrim int64
	Factor  int64
}

// Validate rejects a request per spec.md §6's submit() status codes,
// before any scaling is attempted. It returns nil for an admissible
// request; callers map a non-nil error to a status code with
// task.StatusCodeForError.
func Validate(demand []DemandItem, stock []StockItem) error {
	enabledDemand := filterEnabledDemand(demand)
	enabledStock := filterEnabledStock(stock)

	if len(enabledDemand) == 0 {
		return task.ErrInvalidTiles
	}
	for _, d := range enabledDemand {
		if d.Width <= 0 || d.Height <= 0 || d.Count <= 0 {
			return task.ErrInvalidTiles
		}
	}
	if len(enabledStock) == 0 {
		return task.ErrInvalidStockTiles
	}
	for _, s := range enabledStock {
		if s.Width <= 0 || s.Height <= 0 || s.Count <= 0 {
			return task.ErrInvalidStockTiles
		}
	}

	if totalCount(enabledDemand) > MaxPanels {
		return task.ErrTooManyPanels
	}
	if totalStockCount(enabledStock) > MaxPanels {
		return task.ErrTooManyStockPanels
	}
	return nil
}

// Scale validates then scales the request, expanding each item's Count
// into that many individual tile.Dimensions (so downstream packages
// never deal with multiplicities directly).
func Scale(demand []DemandItem, stock []StockItem, kerf, minTrim float64) (Result, error) {
	if err := Validate(demand, stock); err != nil {
		return Result{}, err
	}

	enabledDemand := filterEnabledDemand(demand)
	enabledStock := filterEnabledStock(stock)

	factor := commonFactor(enabledDemand, enabledStock, kerf, minTrim)
	mul := int64(math.Pow10(int(factor)))

	scaleDim := func(v float64) int64 { return int64(math.Round(v * float64(mul))) }

	var demandDims []tile.Dimensions
	for _, d := range enabledDemand {
		for i := 0; i < d.Count; i++ {
			demandDims = append(demandDims, tile.Dimensions{
				ID:          instanceID(d.ID, i),
				Width:       scaleDim(d.Width),
				Height:      scaleDim(d.Height),
				Material:    d.Material,
				Orientation: d.Orientation,
				Label:       d.Label,
			})
		}
	}

	var stockDims []tile.Dimensions
	for _, s := range enabledStock {
		for i := 0; i < s.Count; i++ {
			stockDims = append(stockDims, tile.Dimensions{
				ID:          instanceID(s.ID, i),
				Width:       scaleDim(s.Width),
				Height:      scaleDim(s.Height),
				Material:    s.Material,
				Orientation: s.Orientation,
				Label:       s.Label,
			})
		}
	}

	return Result{
		Demand:  demandDims,
		Stock:   stockDims,
		Kerf:    scaleDim(kerf),
		MinTrim: scaleDim(minTrim),
		Factor:  factor,
	}, nil
}

func instanceID(base string, i int) string {
	if i == 0 {
		return base
	}
	return base + "#" + strconv.Itoa(i)
}

func filterEnabledDemand(items []DemandItem) []DemandItem {
	var out []DemandItem
	for _, d := range items {
		if d.Enabled {
			out = append(out, d)
		}
	}
	return out
}

func filterEnabledStock(items []StockItem) []StockItem {
	var out []StockItem
	for _, s := range items {
		if s.Enabled {
			out = append(out, s)
		}
	}
	return out
}

func totalCount(items []DemandItem) int {
	var n int
	for _, d := range items {
		n += d.Count
	}
	return n
}

func totalStockCount(items []StockItem) int {
	var n int
	for _, s := range items {
		n += s.Count
	}
	return n
}

// commonFactor computes dmax (the largest count of fractional digits
// across every enabled dimension, kerf, and min-trim) and imax (the
// largest count of integer digits), then reduces dmax until their sum
// is within the digit budget.
func commonFactor(demand []DemandItem, stock []StockItem, kerf, minTrim float64) int64 {
	var dmax, imax int

	consider := func(v float64) {
		if d := fractionalDigits(v); d > dmax {
			dmax = d
		}
		if d := integerDigits(v); d > imax {
			imax = d
		}
	}

	for _, d := range demand {
		consider(d.Width)
		consider(d.Height)
	}
	for _, s := range stock {
		consider(s.Width)
		consider(s.Height)
	}
	consider(kerf)
	consider(minTrim)

	for dmax > 0 && dmax+imax > maxDigitBudget {
		dmax--
	}
	return int64(dmax)
}

// fractionalDigits counts significant digits after the decimal point in
// v's shortest round-trip decimal representation.
func fractionalDigits(v float64) int {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	i := strings.IndexByte(s, '.')
	if i < 0 {
		return 0
	}
	return len(s) - i - 1
}

// integerDigits counts digits before the decimal point.
func integerDigits(v float64) int {
	s := strconv.FormatFloat(math.Abs(v), 'f', -1, 64)
	i := strings.IndexByte(s, '.')
	if i < 0 {
		return len(s)
	}
	if i == 0 {
		return 1
	}
	return i
}
