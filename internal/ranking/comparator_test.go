package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/cutstock/internal/placement"
	"github.com/piwi3910/cutstock/internal/solution"
	"github.com/piwi3910/cutstock/internal/tile"
)

func stock(w, h int64) tile.Dimensions {
	return tile.Dimensions{ID: "s", Width: w, Height: h, Material: "ply"}
}

func demand(id string, w, h int64) tile.Dimensions {
	return tile.Dimensions{ID: id, Width: w, Height: h, Material: "ply"}
}

func TestMostTiles_PrefersMorePlacedTiles(t *testing.T) {
	idGen := &solution.IDGen{}
	base := solution.New(idGen.Next(), []tile.Dimensions{stock(200, 100)})

	oneTile, _ := base.AddTile(demand("A", 100, 100), 0, 0, placement.Respect, placement.Both, idGen)
	require.NotEmpty(t, oneTile)

	twoTile, _ := oneTile[0].AddTile(demand("B", 100, 100), 0, 0, placement.Respect, placement.Both, idGen)
	require.NotEmpty(t, twoTile)

	assert.True(t, MostTiles(twoTile[0], oneTile[0]) < 0)
	assert.True(t, MostTiles(oneTile[0], twoTile[0]) > 0)
}

func TestFinalSequence_IdTieBreakIsTotalOrder(t *testing.T) {
	idGen := &solution.IDGen{}
	a := solution.New(idGen.Next(), nil)
	b := solution.New(idGen.Next(), nil)

	seq := FinalSequence(PriorityMostTiles)
	// Two otherwise-identical empty solutions differ only by id.
	assert.True(t, seq.Less(a, b))
	assert.False(t, seq.Less(b, a))
}

func TestFinalSequence_BothPrioritiesHaveSixKeysAndShareIdTieBreak(t *testing.T) {
	mostTiles := FinalSequence(PriorityMostTiles)
	leastWaste := FinalSequence(PriorityLeastWastedArea)

	require.Len(t, mostTiles, 6)
	require.Len(t, leastWaste, 6)

	idGen := &solution.IDGen{}
	a := solution.New(idGen.Next(), nil)
	b := solution.New(idGen.Next(), nil)

	// Both sequences fall back identically on two empty solutions: only
	// the id tie-break applies regardless of priority.
	assert.Equal(t, mostTiles.Less(a, b), leastWaste.Less(a, b))
}

func TestSequence_Best(t *testing.T) {
	idGen := &solution.IDGen{}
	base := solution.New(idGen.Next(), []tile.Dimensions{stock(200, 100)})

	successors, _ := base.AddTile(demand("A", 100, 100), 0, 0, placement.Respect, placement.Both, idGen)
	require.NotEmpty(t, successors)

	seq := FinalSequence(PriorityMostTiles)
	best := seq.Best(successors)
	require.NotNil(t, best)
}
