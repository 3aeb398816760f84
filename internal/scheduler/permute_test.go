package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupPermutations_AllDistinctOrderingsWhenUnderCap(t *testing.T) {
	groups := []Group{
		{Unit: dim(100, 100, "ply"), Count: 1},
		{Unit: dim(200, 200, "ply"), Count: 1},
		{Unit: dim(300, 300, "ply"), Count: 1},
	}

	perms := GroupPermutations(groups, 3)

	assert.Len(t, perms, 6)
}

func TestGroupPermutations_CapLimitsPermutedPrefixAndKeepsTailFixed(t *testing.T) {
	groups := []Group{
		{Unit: dim(400, 400, "ply"), Count: 1},
		{Unit: dim(300, 300, "ply"), Count: 1},
		{Unit: dim(200, 200, "ply"), Count: 1},
		{Unit: dim(100, 100, "ply"), Count: 1},
	}

	perms := GroupPermutations(groups, 2)

	require.NotEmpty(t, perms)
	for _, p := range perms {
		require.Len(t, p, 4)
		// The two smallest groups never move out of the fixed tail.
		assert.Equal(t, int64(200), p[2].Unit.Width)
		assert.Equal(t, int64(100), p[3].Unit.Width)
	}
	// Only the 2-group head permutes: at most 2! = 2 distinct orderings.
	assert.LessOrEqual(t, len(perms), 2)
}

func TestGroupPermutations_DedupesIdenticalDimensionShapes(t *testing.T) {
	groups := []Group{
		{Unit: dim(100, 100, "ply"), Count: 1},
		{Unit: dim(100, 100, "ply"), Count: 1},
	}

	perms := GroupPermutations(groups, 2)

	assert.Len(t, perms, 1)
}

func TestGroupPermutations_EmptyInputProducesNil(t *testing.T) {
	assert.Nil(t, GroupPermutations(nil, 4))
}

func TestDemandOrdering_FlattensPreservingGroupOrder(t *testing.T) {
	groups := []Group{
		{Unit: dim(100, 100, "ply"), Count: 1},
		{Unit: dim(200, 200, "ply"), Count: 2},
	}

	flat := DemandOrdering(groups)

	require.Len(t, flat, 3)
	assert.Equal(t, int64(100), flat[0].Width)
	assert.Equal(t, int64(200), flat[1].Width)
	assert.Equal(t, int64(200), flat[2].Width)
}
