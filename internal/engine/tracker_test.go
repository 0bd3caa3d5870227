package engine

import (
	"math/rand/v2"
	"slices"
	"testing"
)

func TestSlideStackLeft(t *testing.T) {
	tests := []struct {
		name     string
		input    Grid
		expected Grid
		merges   []MergeEvent
		changed  bool
	}{
		{
			name:     "merge then compact",
			input:    Grid{1, 1, 2, 0},
			expected: Grid{2, 2, 0, 0},
			merges:   []MergeEvent{{Power: 1}},
			changed:  true,
		},
		{
			name:     "simple merge",
			input:    Grid{1, 1, 0, 0},
			expected: Grid{2, 0, 0, 0},
			merges:   []MergeEvent{{Power: 1}},
			changed:  true,
		},
		{
			name:     "merge with trailing tile",
			input:    Grid{1, 1, 1, 0},
			expected: Grid{2, 1, 0, 0},
			merges:   []MergeEvent{{Power: 1}},
			changed:  true,
		},
		{
			name:     "four equal tiles merge pairwise",
			input:    Grid{3, 3, 3, 3},
			expected: Grid{4, 4, 0, 0},
			merges:   []MergeEvent{{Power: 3}, {Power: 3}},
			changed:  true,
		},
		{
			name:     "no merge possible",
			input:    Grid{1, 2, 3, 4},
			expected: Grid{1, 2, 3, 4},
			changed:  false,
		},
		{
			name:     "slide with gap",
			input:    Grid{0, 0, 1, 1},
			expected: Grid{2, 0, 0, 0},
			merges:   []MergeEvent{{Power: 1}},
			changed:  true,
		},
		{
			name:     "slide with multiple gaps",
			input:    Grid{1, 0, 0, 1},
			expected: Grid{2, 0, 0, 0},
			merges:   []MergeEvent{{Power: 1}},
			changed:  true,
		},
		{
			name:     "already packed",
			input:    Grid{2, 1, 0, 0},
			expected: Grid{2, 1, 0, 0},
			changed:  false,
		},
		{
			name:     "empty row",
			input:    Grid{0, 0, 0, 0},
			expected: Grid{0, 0, 0, 0},
			changed:  false,
		},
		{
			name:     "single tile slides",
			input:    Grid{0, 2, 0, 0},
			expected: Grid{2, 0, 0, 0},
			changed:  true,
		},
		{
			name:     "merged tile does not merge again",
			input:    Grid{1, 1, 2, 2},
			expected: Grid{2, 3, 0, 0},
			merges:   []MergeEvent{{Power: 1}, {Power: 2}},
			changed:  true,
		},
	}

	shape := NewShape(1, 4)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Slide(shape, tt.input, Left)
			if !res.Grid.Equal(tt.expected) {
				t.Errorf("Slide(%v, Left) = %v, want %v", tt.input, res.Grid, tt.expected)
			}
			if !slices.Equal(res.Merges, tt.merges) {
				t.Errorf("Slide(%v, Left) merges = %v, want %v", tt.input, res.Merges, tt.merges)
			}
			if res.Changed != tt.changed {
				t.Errorf("Slide(%v, Left) changed = %v, want %v", tt.input, res.Changed, tt.changed)
			}
		})
	}
}

func TestSlideRightAtTrailingEdge(t *testing.T) {
	input := Grid{0, 0, 0, 1}
	res := Slide(NewShape(1, 4), input, Right)

	if res.Changed {
		t.Error("tile already at the right edge should not count as a change")
	}
	if !res.Grid.Equal(input) {
		t.Errorf("grid = %v, want %v", res.Grid, input)
	}
	if len(res.Merges) != 0 {
		t.Errorf("merges = %v, want none", res.Merges)
	}
}

func TestSlideDirections(t *testing.T) {
	shape := DefaultShape()

	tests := []struct {
		name     string
		dir      Direction
		input    Grid
		expected Grid
	}{
		{
			name: "left",
			dir:  Left,
			input: Grid{
				1, 1, 0, 0,
				2, 0, 2, 0,
				1, 1, 1, 1,
				0, 0, 0, 1,
			},
			expected: Grid{
				2, 0, 0, 0,
				3, 0, 0, 0,
				2, 2, 0, 0,
				1, 0, 0, 0,
			},
		},
		{
			name: "right",
			dir:  Right,
			input: Grid{
				1, 1, 0, 0,
				2, 0, 2, 0,
				1, 1, 1, 1,
				0, 0, 0, 1,
			},
			expected: Grid{
				0, 0, 0, 2,
				0, 0, 0, 3,
				0, 0, 2, 2,
				0, 0, 0, 1,
			},
		},
		{
			name: "up",
			dir:  Up,
			input: Grid{
				1, 2, 1, 0,
				1, 0, 1, 0,
				0, 2, 1, 0,
				0, 0, 1, 1,
			},
			expected: Grid{
				2, 3, 2, 1,
				0, 0, 2, 0,
				0, 0, 0, 0,
				0, 0, 0, 0,
			},
		},
		{
			name: "down",
			dir:  Down,
			input: Grid{
				1, 2, 1, 1,
				1, 0, 1, 0,
				0, 2, 1, 0,
				0, 0, 1, 0,
			},
			expected: Grid{
				0, 0, 0, 0,
				0, 0, 0, 0,
				0, 0, 2, 0,
				2, 3, 2, 1,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Slide(shape, tt.input, tt.dir)
			if !res.Grid.Equal(tt.expected) {
				t.Errorf("Slide(%s): got\n%v\nwant\n%v", tt.dir, res.Grid, tt.expected)
			}
			if !res.Changed {
				t.Errorf("Slide(%s) should report a change", tt.dir)
			}
		})
	}
}

func TestSlideNonSquareBoard(t *testing.T) {
	shape := NewShape(2, 3)
	input := Grid{
		1, 0, 2,
		1, 2, 2,
	}

	res := Slide(shape, input, Up)

	expected := Grid{
		2, 2, 3,
		0, 0, 0,
	}
	if !res.Grid.Equal(expected) {
		t.Errorf("Slide(Up) = %v, want %v", res.Grid, expected)
	}

	wantMerges := []MergeEvent{{Power: 1}, {Power: 2}}
	if !slices.Equal(res.Merges, wantMerges) {
		t.Errorf("merges = %v, want %v", res.Merges, wantMerges)
	}
}

func TestSlideDoesNotMutateInput(t *testing.T) {
	input := Grid{1, 1, 0, 2}
	before := input.Clone()

	Slide(NewShape(1, 4), input, Left)

	if !input.Equal(before) {
		t.Errorf("input grid changed to %v, want %v", input, before)
	}
}

func TestSlideProperties(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	shapes := []Shape{NewShape(4, 4), NewShape(3, 5), NewShape(1, 6), NewShape(5, 1)}

	for round := range 500 {
		shape := shapes[round%len(shapes)]
		grid := NewGrid(shape)
		for i := range grid {
			if rng.IntN(3) > 0 {
				grid[i] = Power(1 + rng.IntN(4))
			}
		}

		for _, dir := range Directions() {
			res := Slide(shape, grid, dir)

			// Conservation: every merge turns {p, p} into {p+1}.
			want := powerCounts(grid)
			for _, m := range res.Merges {
				want[m.Power] -= 2
				want[m.Result()]++
			}
			got := powerCounts(res.Grid)
			for p, n := range want {
				if got[p] != n {
					t.Fatalf("%s %v %s: power %d count = %d, want %d (result %v)",
						shape, grid, dir, p, got[p], n, res.Grid)
				}
			}

			// No gaps behind the leading edge.
			for _, stack := range stacksFor(shape, dir) {
				seenEmpty := false
				for _, idx := range stack {
					if res.Grid[idx] == Empty {
						seenEmpty = true
					} else if seenEmpty {
						t.Fatalf("%s %v %s: gap in stack %v of %v", shape, grid, dir, stack, res.Grid)
					}
				}
			}

			if !res.Changed && !res.Grid.Equal(grid) {
				t.Fatalf("%s %v %s: unchanged move altered grid to %v", shape, grid, dir, res.Grid)
			}
			if res.Changed && res.Grid.Equal(grid) {
				t.Fatalf("%s %v %s: reported change but grid is identical", shape, grid, dir)
			}
		}
	}
}

func TestSlidePanicsOnMismatchedGrid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Slide with a grid of the wrong size should panic")
		}
	}()
	Slide(DefaultShape(), Grid{1, 2, 3}, Left)
}

func powerCounts(g Grid) map[Power]int {
	counts := make(map[Power]int)
	for _, p := range g {
		if p != Empty {
			counts[p]++
		}
	}
	return counts
}
