// Package engine implements the board transition rules of the sliding-tile
// puzzle: directional slide and merge, tile spawning, scoring and the
// one-shot win trigger.
//
// The package is pure logic with no I/O. Front ends drive a Controller with
// directions and react to the typed events it returns.
package engine

import "fmt"

// Default board dimensions.
const (
	DefaultRows    = 4
	DefaultColumns = 4
)

// Shape holds the board dimensions. Cells are addressed by a linear index
// i = row*Columns + col.
type Shape struct {
	Rows    int
	Columns int
}

// NewShape returns a shape with the given dimensions.
// Panics if either dimension is not positive.
func NewShape(rows, columns int) Shape {
	s := Shape{Rows: rows, Columns: columns}
	s.mustBeValid()
	return s
}

// DefaultShape returns the standard 4x4 board.
func DefaultShape() Shape {
	return NewShape(DefaultRows, DefaultColumns)
}

// Cells returns the number of cells on the board.
func (s Shape) Cells() int {
	return s.Rows * s.Columns
}

// Index converts a (row, col) pair to a linear index.
func (s Shape) Index(row, col int) int {
	return row*s.Columns + col
}

// Coords converts a linear index to its (row, col) pair.
func (s Shape) Coords(i int) (row, col int) {
	return i / s.Columns, i % s.Columns
}

// Contains reports whether i is a valid linear index for this shape.
func (s Shape) Contains(i int) bool {
	return i >= 0 && i < s.Cells()
}

func (s Shape) String() string {
	return fmt.Sprintf("%dx%d", s.Rows, s.Columns)
}

func (s Shape) mustBeValid() {
	if s.Rows <= 0 || s.Columns <= 0 {
		panic(fmt.Sprintf("engine: invalid board shape %dx%d", s.Rows, s.Columns))
	}
}
