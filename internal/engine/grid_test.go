package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOccupancyGrid_OccupyAndQuery(t *testing.T) {
	g := newOccupancyGrid(3, 2, 4)

	assert.True(t, g.boxFree(0, 0, 0, 3, 2, 4), "new grid is empty")

	g.occupy(0, 0, 0, 2, 1, 2)

	assert.True(t, g.occupied(0, 0, 0))
	assert.True(t, g.occupied(1, 0, 1))
	assert.False(t, g.occupied(2, 0, 0))
	assert.False(t, g.occupied(0, 1, 0))

	assert.False(t, g.boxFree(0, 0, 0, 1, 1, 1))
	assert.True(t, g.boxFree(2, 0, 0, 1, 2, 4))
	assert.True(t, g.boxFree(0, 1, 0, 3, 1, 4))
}

func TestOccupancyGrid_SupportedCells(t *testing.T) {
	g := newOccupancyGrid(4, 2, 4)
	g.occupy(0, 0, 0, 2, 1, 2)

	// Footprint directly above the occupied slab
	assert.Equal(t, 4, g.supportedCells(0, 1, 0, 2, 2))
	// Footprint half over the slab, half over empty floor
	assert.Equal(t, 2, g.supportedCells(1, 1, 0, 2, 2))
	// Footprint entirely over empty floor
	assert.Equal(t, 0, g.supportedCells(2, 1, 2, 2, 2))
}
