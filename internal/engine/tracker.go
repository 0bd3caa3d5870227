package engine

import "fmt"

// MoveResult is the outcome of sliding a grid in one direction.
type MoveResult struct {
	Grid    Grid
	Merges  []MergeEvent
	Changed bool
}

// Slide applies a full move (compact, merge, compact) to a copy of grid.
// The input grid is never modified.
// Panics if grid does not match shape or dir is not a valid direction.
func Slide(shape Shape, grid Grid, dir Direction) MoveResult {
	t := newTracker(shape, grid, dir)
	t.compact()
	t.merge()
	t.compact()

	return MoveResult{
		Grid:    t.cells,
		Merges:  t.merges,
		Changed: t.changed,
	}
}

// tracker works on a private copy of the cells through direction-ordered
// stacks. Position 0 of every stack is the leading edge.
type tracker struct {
	cells   Grid
	stacks  [][]int
	merges  []MergeEvent
	changed bool
}

func newTracker(shape Shape, grid Grid, dir Direction) *tracker {
	grid.mustFit(shape)
	if !dir.Valid() {
		panic(fmt.Sprintf("engine: invalid direction %d", int(dir)))
	}
	return &tracker{
		cells:  grid.Clone(),
		stacks: stacksFor(shape, dir),
	}
}

// stacksFor builds the linear indices of every stack for dir.
// Rows for Left/Right, columns for Up/Down.
func stacksFor(shape Shape, dir Direction) [][]int {
	count, length := shape.Rows, shape.Columns
	if dir.vertical() {
		count, length = shape.Columns, shape.Rows
	}

	stacks := make([][]int, count)
	for n := range count {
		stack := make([]int, length)
		for pos := range length {
			stack[pos] = stackIndex(shape, dir, n, pos)
		}
		stacks[n] = stack
	}
	return stacks
}

// stackIndex maps position pos of stack n to a linear index.
func stackIndex(shape Shape, dir Direction, n, pos int) int {
	switch dir {
	case Left:
		return shape.Index(n, pos)
	case Right:
		return shape.Index(n, shape.Columns-1-pos)
	case Up:
		return shape.Index(pos, n)
	case Down:
		return shape.Index(shape.Rows-1-pos, n)
	}
	panic(fmt.Sprintf("engine: invalid direction %d", int(dir)))
}

// compact packs tiles toward the leading edge of every stack.
// Only a tile that lands in a different cell counts as a change.
func (t *tracker) compact() {
	for _, stack := range t.stacks {
		free := 0
		for cursor, idx := range stack {
			p := t.cells[idx]
			if p == Empty {
				continue
			}
			if cursor != free {
				t.cells[stack[free]] = p
				t.cells[idx] = Empty
				t.changed = true
			}
			free++
		}
	}
}

// merge combines equal neighbours of already compacted stacks in a single
// forward pass. A merged tile leaves a gap behind it, so it can never take
// part in a second merge during the same move.
func (t *tracker) merge() {
	for _, stack := range t.stacks {
		for j := 0; j+1 < len(stack); j++ {
			a, b := stack[j], stack[j+1]
			p := t.cells[a]
			if p == Empty || p != t.cells[b] {
				continue
			}
			t.merges = append(t.merges, MergeEvent{Power: p})
			t.cells[a] = p + 1
			t.cells[b] = Empty
			t.changed = true
		}
	}
}

// CanMove reports whether any direction would change grid.
// It does not affect the loss rule; front ends use it for hints.
func CanMove(shape Shape, grid Grid) bool {
	for _, dir := range Directions() {
		if Slide(shape, grid, dir).Changed {
			return true
		}
	}
	return false
}
