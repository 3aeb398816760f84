package worker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/cutstock/internal/placement"
	"github.com/piwi3910/cutstock/internal/ranking"
	"github.com/piwi3910/cutstock/internal/stock"
	"github.com/piwi3910/cutstock/internal/tile"
)

func TestRun_PlacesEveryTileAndPublishes(t *testing.T) {
	selection := stock.Selection{{ID: "s1", Width: 200, Height: 100, Material: "ply"}}
	permutation := []tile.Dimensions{
		{ID: "t1", Width: 100, Height: 100, Material: "ply"},
		{ID: "t2", Width: 100, Height: 100, Material: "ply"},
	}

	job := Job{
		Permutation:    permutation,
		Selection:      selection,
		Grain:          placement.Respect,
		Axis:           placement.Both,
		Intermediate:   ranking.Sequence{ranking.MostTiles, ranking.LeastWastedArea},
		AccuracyFactor: 10,
	}

	pool := NewPool(ranking.FinalSequence(ranking.PriorityMostTiles), 20)
	cancelled := make(chan struct{})

	var progressCalls int
	Run(context.Background(), job, pool, cancelled, func(done, total int) {
		progressCalls++
		assert.LessOrEqual(t, done, total)
	})

	assert.Equal(t, 2, progressCalls)
	best := pool.Best()
	require.NotNil(t, best)
	assert.Equal(t, 2, best.PlacedTiles())
	assert.True(t, pool.HasAllFitSolution())
}

func TestRun_CooperativeCancelStopsPublishing(t *testing.T) {
	selection := stock.Selection{{ID: "s1", Width: 200, Height: 100, Material: "ply"}}
	permutation := []tile.Dimensions{{ID: "t1", Width: 100, Height: 100, Material: "ply"}}

	job := Job{
		Permutation:    permutation,
		Selection:      selection,
		Grain:          placement.Respect,
		Axis:           placement.Both,
		Intermediate:   ranking.Sequence{ranking.MostTiles},
		AccuracyFactor: 10,
	}

	pool := NewPool(ranking.FinalSequence(ranking.PriorityMostTiles), 20)
	cancelled := make(chan struct{})
	close(cancelled) // already cancelled before Run starts

	Run(context.Background(), job, pool, cancelled, nil)
	assert.Nil(t, pool.Best())
}

func TestPool_PublishTruncatesToCapacity(t *testing.T) {
	pool := NewPool(ranking.FinalSequence(ranking.PriorityMostTiles), 1)
	selection := stock.Selection{{ID: "s1", Width: 100, Height: 100, Material: "ply"}}

	jobA := Job{
		Permutation:    []tile.Dimensions{{ID: "a", Width: 100, Height: 100, Material: "ply"}},
		Selection:      selection,
		Grain:          placement.Respect,
		Axis:           placement.Both,
		Intermediate:   ranking.Sequence{ranking.MostTiles},
		AccuracyFactor: 10,
	}
	jobB := jobA
	jobB.Permutation = []tile.Dimensions{{ID: "b", Width: 50, Height: 50, Material: "ply"}}

	Run(context.Background(), jobA, pool, make(chan struct{}), nil)
	Run(context.Background(), jobB, pool, make(chan struct{}), nil)

	assert.Len(t, pool.Snapshot(), 1)
}
