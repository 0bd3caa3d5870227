package engine

import (
	"fmt"
	"slices"
)

// Power is the exponent of a tile: a tile with power p shows the value 2^p.
// The zero value marks an empty cell.
type Power uint32

// Empty is the power stored in a cell without a tile.
const Empty Power = 0

// Value returns the displayed tile value (2^p), or 0 for an empty cell.
func (p Power) Value() int {
	if p == Empty {
		return 0
	}
	return 1 << p
}

// Grid holds one power per cell, indexed linearly.
type Grid []Power

// NewGrid returns an all-empty grid for the shape.
func NewGrid(shape Shape) Grid {
	shape.mustBeValid()
	return make(Grid, shape.Cells())
}

// Clone returns an independent copy of the grid.
func (g Grid) Clone() Grid {
	return slices.Clone(g)
}

// Clear empties every cell in place.
func (g Grid) Clear() {
	clear(g)
}

// Equal reports whether both grids hold the same powers in the same cells.
func (g Grid) Equal(other Grid) bool {
	return slices.Equal(g, other)
}

// Empty returns the indices of all empty cells in ascending order.
func (g Grid) Empty() []int {
	var free []int
	for i, p := range g {
		if p == Empty {
			free = append(free, i)
		}
	}
	return free
}

// Occupied returns the number of cells holding a tile.
func (g Grid) Occupied() int {
	n := 0
	for _, p := range g {
		if p != Empty {
			n++
		}
	}
	return n
}

// MaxPower returns the highest power on the grid (Empty if the grid is empty).
func (g Grid) MaxPower() Power {
	var best Power
	for _, p := range g {
		best = max(best, p)
	}
	return best
}

// Values returns the displayed tile values row by row.
func (g Grid) Values(shape Shape) [][]int {
	g.mustFit(shape)
	rows := make([][]int, shape.Rows)
	for r := range shape.Rows {
		rows[r] = make([]int, shape.Columns)
		for c := range shape.Columns {
			rows[r][c] = g[shape.Index(r, c)].Value()
		}
	}
	return rows
}

func (g Grid) mustFit(shape Shape) {
	shape.mustBeValid()
	if len(g) != shape.Cells() {
		panic(fmt.Sprintf("engine: grid has %d cells, shape %s needs %d", len(g), shape, shape.Cells()))
	}
}
