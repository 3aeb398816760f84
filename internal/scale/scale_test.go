package scale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/cutstock/internal/task"
)

func TestValidate_EmptyDemandRejected(t *testing.T) {
	stock := []StockItem{{Width: 100, Height: 100, Count: 1, Enabled: true}}
	err := Validate(nil, stock)
	assert.ErrorIs(t, err, task.ErrInvalidTiles)
}

func TestValidate_EmptyStockRejected(t *testing.T) {
	demand := []DemandItem{{Width: 10, Height: 10, Count: 1, Enabled: true}}
	err := Validate(demand, nil)
	assert.ErrorIs(t, err, task.ErrInvalidStockTiles)
}

func TestValidate_TooManyPanelsRejected(t *testing.T) {
	demand := []DemandItem{{Width: 10, Height: 10, Count: MaxPanels + 1, Enabled: true}}
	stock := []StockItem{{Width: 100, Height: 100, Count: 1, Enabled: true}}
	err := Validate(demand, stock)
	assert.ErrorIs(t, err, task.ErrTooManyPanels)
}

func TestScale_IntegerDimensionsUnchanged(t *testing.T) {
	demand := []DemandItem{{ID: "d1", Width: 100, Height: 50, Count: 1, Enabled: true, Material: "ply"}}
	stock := []StockItem{{ID: "s1", Width: 200, Height: 100, Count: 1, Enabled: true, Material: "ply"}}

	res, err := Scale(demand, stock, 3, 0)
	require.NoError(t, err)
	require.Len(t, res.Demand, 1)
	assert.Equal(t, int64(100), res.Demand[0].Width)
	assert.Equal(t, int64(50), res.Demand[0].Height)
	assert.Equal(t, int64(0), res.Factor)
}

func TestScale_FractionalDimensionsScaledToIntegers(t *testing.T) {
	demand := []DemandItem{{ID: "d1", Width: 10.5, Height: 5.25, Count: 1, Enabled: true, Material: "ply"}}
	stock := []StockItem{{ID: "s1", Width: 100, Height: 100, Count: 1, Enabled: true, Material: "ply"}}

	res, err := Scale(demand, stock, 0.1, 0)
	require.NoError(t, err)
	require.Len(t, res.Demand, 1)
	// dmax = 2 (5.25 has two fractional digits) -> Factor 2 (multiplier 100).
	assert.Equal(t, int64(2), res.Factor)
	assert.Equal(t, int64(1050), res.Demand[0].Width)
	assert.Equal(t, int64(525), res.Demand[0].Height)
}

func TestScale_ExpandsCountIntoIndividualTiles(t *testing.T) {
	demand := []DemandItem{{ID: "d1", Width: 10, Height: 10, Count: 3, Enabled: true, Material: "ply"}}
	stock := []StockItem{{ID: "s1", Width: 100, Height: 100, Count: 2, Enabled: true, Material: "ply"}}

	res, err := Scale(demand, stock, 0, 0)
	require.NoError(t, err)
	assert.Len(t, res.Demand, 3)
	assert.Len(t, res.Stock, 2)
}
