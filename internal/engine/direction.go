package engine

import (
	"fmt"
	"strings"
)

// Direction is the way tiles slide during a move.
type Direction int

const (
	Left Direction = iota
	Up
	Right
	Down
)

var directionNames = [...]string{
	Left:  "left",
	Up:    "up",
	Right: "right",
	Down:  "down",
}

// Directions lists every direction in input priority order.
func Directions() []Direction {
	return []Direction{Left, Up, Right, Down}
}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	return d >= Left && d <= Down
}

func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// ParseDirection converts a name such as "left" or "Up" into a Direction.
func ParseDirection(s string) (Direction, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range directionNames {
		if n == name {
			return Direction(i), nil
		}
	}
	return 0, fmt.Errorf("engine: unknown direction %q", s)
}

// vertical reports whether stacks for d run along columns.
func (d Direction) vertical() bool {
	return d == Up || d == Down
}
