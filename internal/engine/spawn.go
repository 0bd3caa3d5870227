package engine

import (
	"errors"
	"fmt"
	"slices"
)

// ErrNoSpace is returned when a spawn batch needs more free cells than the
// board has. It is the loss condition of the game.
var ErrNoSpace = errors.New("engine: not enough free cells to spawn tiles")

// Source is the random source used for spawning.
// *math/rand/v2.Rand satisfies it; tests inject deterministic fakes.
type Source interface {
	IntN(n int) int
}

// Weight gives a spawnable power its relative probability.
type Weight struct {
	Power  Power
	Weight int
}

// DefaultWeights spawns a 2 seven times out of ten and a 4 otherwise.
var DefaultWeights = []Weight{
	{Power: 1, Weight: 7},
	{Power: 2, Weight: 3},
}

// Spawner picks cells and powers for new tiles.
type Spawner struct {
	src     Source
	weights []Weight
	total   int
}

// NewSpawner creates a spawner drawing from src with the given weight table.
// Panics if the table is empty or holds a non-positive weight or empty power.
func NewSpawner(src Source, weights []Weight) *Spawner {
	if src == nil {
		panic("engine: nil random source")
	}
	if len(weights) == 0 {
		panic("engine: empty spawn weight table")
	}

	total := 0
	for _, w := range weights {
		if w.Weight <= 0 || w.Power == Empty {
			panic(fmt.Sprintf("engine: invalid spawn weight %+v", w))
		}
		total += w.Weight
	}

	return &Spawner{
		src:     src,
		weights: slices.Clone(weights),
		total:   total,
	}
}

// Place resolves a batch of requests against grid and returns one placement
// per request, in request order. It does not modify grid.
//
// The capacity check runs once for the whole batch: if the requests without a
// position need more cells than remain free, nothing is placed and ErrNoSpace
// is returned.
func (s *Spawner) Place(shape Shape, grid Grid, reqs []SpawnRequest) ([]TilePlaced, error) {
	grid.mustFit(shape)

	occupied := make([]bool, len(grid))
	for i, p := range grid {
		occupied[i] = p != Empty
	}

	random := 0
	for _, r := range reqs {
		if r.Position == nil {
			random++
			continue
		}
		if !shape.Contains(*r.Position) {
			panic(fmt.Sprintf("engine: spawn position %d outside %s board", *r.Position, shape))
		}
		occupied[*r.Position] = true
	}

	var free []int
	for i, taken := range occupied {
		if !taken {
			free = append(free, i)
		}
	}
	if random > len(free) {
		return nil, ErrNoSpace
	}

	chosen := s.choose(free, random)

	placed := make([]TilePlaced, 0, len(reqs))
	for _, r := range reqs {
		var idx int
		if r.Position != nil {
			idx = *r.Position
		} else {
			idx, chosen = chosen[0], chosen[1:]
		}

		var p Power
		if r.Power != nil {
			p = *r.Power
			if p == Empty {
				panic("engine: spawn request with empty power")
			}
		} else {
			p = s.drawPower()
		}

		placed = append(placed, TilePlaced{Index: idx, Power: p})
	}

	return placed, nil
}

// choose picks n distinct cells uniformly with a partial Fisher-Yates shuffle.
func (s *Spawner) choose(free []int, n int) []int {
	pool := slices.Clone(free)
	for i := range n {
		j := i + s.src.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}

// drawPower picks a power from the weight table.
func (s *Spawner) drawPower() Power {
	r := s.src.IntN(s.total)
	for _, w := range s.weights {
		if r < w.Weight {
			return w.Power
		}
		r -= w.Weight
	}
	return s.weights[len(s.weights)-1].Power
}
