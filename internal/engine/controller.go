package engine

import (
	"errors"
	"fmt"
	"sync"
)

// InitialTiles is the number of random tiles placed by Reset.
const InitialTiles = 2

// State is the lifecycle state of a Controller between calls.
type State int

const (
	Idle State = iota
	// Lost is terminal until Reset.
	Lost
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// MoveOutcome describes what a single ApplyMove call did.
type MoveOutcome struct {
	Direction Direction
	Changed   bool
	Merges    []MergeEvent
	Placed    []TilePlaced
	Won       bool
	Lost      bool
	// Events holds every event of the move in emission order.
	Events []Event
}

// SpawnOutcome describes what a SpawnTiles or Reset call did.
type SpawnOutcome struct {
	Placed []TilePlaced
	Lost   bool
	Events []Event
}

// Option configures a Controller.
type Option func(*Controller)

// WithObserver registers fn to receive every event in emission order.
// fn runs after the controller has released its lock, so it may read
// controller state.
func WithObserver(fn func(Event)) Option {
	return func(c *Controller) {
		c.observer = fn
	}
}

// WithWeights replaces the spawn weight table.
func WithWeights(weights []Weight) Option {
	return func(c *Controller) {
		c.weights = weights
	}
}

// Controller owns the grid and runs complete moves against it.
// Every exported method is atomic with respect to the others.
type Controller struct {
	mu       sync.Mutex
	shape    Shape
	grid     Grid
	spawner  *Spawner
	tracker  *Tracker
	state    State
	moves    int
	weights  []Weight
	observer func(Event)
}

// NewController creates a controller with an empty grid.
// Call Reset to place the opening tiles.
func NewController(shape Shape, src Source, opts ...Option) *Controller {
	c := &Controller{
		shape:   shape,
		grid:    NewGrid(shape),
		tracker: NewTracker(),
		weights: DefaultWeights,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.spawner = NewSpawner(src, c.weights)
	return c
}

// Reset clears the board, score and win flag, then spawns the opening tiles.
func (c *Controller) Reset() SpawnOutcome {
	c.mu.Lock()
	c.grid.Clear()
	c.tracker.Reset()
	c.state = Idle
	c.moves = 0

	reqs := make([]SpawnRequest, InitialTiles)
	out := c.spawnLocked(reqs)
	c.mu.Unlock()

	c.notify(out.Events)
	return out
}

// ApplyMove slides the board in dir. When the board changes it records the
// merges and spawns one random tile. A move that changes nothing emits no
// events. Moves on a lost game do nothing.
// Panics if dir is not a valid direction.
func (c *Controller) ApplyMove(dir Direction) MoveOutcome {
	if !dir.Valid() {
		panic(fmt.Sprintf("engine: invalid direction %d", int(dir)))
	}

	c.mu.Lock()
	out := c.moveLocked(dir)
	c.mu.Unlock()

	c.notify(out.Events)
	return out
}

func (c *Controller) moveLocked(dir Direction) MoveOutcome {
	out := MoveOutcome{Direction: dir, Lost: c.state == Lost}
	if c.state == Lost {
		return out
	}

	res := Slide(c.shape, c.grid, dir)
	if !res.Changed {
		return out
	}

	copy(c.grid, res.Grid)
	c.moves++

	out.Changed = true
	out.Merges = res.Merges
	for _, m := range res.Merges {
		out.Events = append(out.Events, m)
	}

	if c.tracker.Record(res.Merges) {
		out.Won = true
		out.Events = append(out.Events, WinSignal{})
	}

	spawn := c.spawnLocked([]SpawnRequest{RandomTile()})
	out.Placed = spawn.Placed
	out.Lost = spawn.Lost
	out.Events = append(out.Events, spawn.Events...)

	return out
}

// SpawnTiles places a batch of tiles. Requests may pin a position, a power,
// both or neither. If the batch does not fit, the grid is left untouched and
// the controller moves to Lost.
func (c *Controller) SpawnTiles(reqs ...SpawnRequest) SpawnOutcome {
	c.mu.Lock()
	out := c.spawnLocked(reqs)
	c.mu.Unlock()

	c.notify(out.Events)
	return out
}

func (c *Controller) spawnLocked(reqs []SpawnRequest) SpawnOutcome {
	var out SpawnOutcome
	if c.state == Lost {
		out.Lost = true
		return out
	}

	for _, r := range reqs {
		out.Events = append(out.Events, r)
	}

	placed, err := c.spawner.Place(c.shape, c.grid, reqs)
	if errors.Is(err, ErrNoSpace) {
		c.state = Lost
		out.Lost = true
		out.Events = append(out.Events, LossSignal{})
		return out
	}

	for _, p := range placed {
		c.grid[p.Index] = p.Power
		out.Events = append(out.Events, p)
	}
	out.Placed = placed
	return out
}

// Acknowledge confirms a pending win signal so play can continue.
func (c *Controller) Acknowledge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tracker.Acknowledge()
}

// Shape returns the board shape.
func (c *Controller) Shape() Shape {
	return c.shape
}

// Grid returns a copy of the current grid.
func (c *Controller) Grid() Grid {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.grid.Clone()
}

// State returns the controller lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Score returns the accumulated score.
func (c *Controller) Score() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tracker.Score()
}

// Congratulation returns the win flag.
func (c *Controller) Congratulation() Congratulation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tracker.Congratulation()
}

// Moves returns the number of moves that changed the board since Reset.
func (c *Controller) Moves() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.moves
}

func (c *Controller) notify(events []Event) {
	if c.observer == nil {
		return
	}
	for _, e := range events {
		c.observer(e)
	}
}
