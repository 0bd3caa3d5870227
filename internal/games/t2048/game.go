// Package t2048 is the playable 2048 game. It drives an engine.Controller
// from platform input frames and draws the board into a core.Screen.
package t2048

import (
	"math/rand/v2"

	"github.com/vovakirdan/b2048/internal/core"
	"github.com/vovakirdan/b2048/internal/engine"
	"github.com/vovakirdan/b2048/internal/registry"
)

// ID is the registry and storage identifier of the game.
const ID = "2048"

// Direction priority when several direction keys land in the same tick.
var directionActions = []core.Action{
	core.ActionLeft,
	core.ActionUp,
	core.ActionRight,
	core.ActionDown,
}

var actionDirections = map[core.Action]engine.Direction{
	core.ActionLeft:  engine.Left,
	core.ActionUp:    engine.Up,
	core.ActionRight: engine.Right,
	core.ActionDown:  engine.Down,
}

// Game implements registry.Game on top of the engine controller.
type Game struct {
	ctrl  *engine.Controller
	shape engine.Shape
	seed  int64
	tick  uint64

	screenW int
	screenH int

	paused   bool
	tooSmall bool
	stuck    bool

	// events collects controller events until the next Step drains them.
	events []core.Event
}

// New creates a game. Call Reset before stepping it.
func New() *Game {
	return &Game{shape: engine.DefaultShape()}
}

func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "2048"
}

// Reset starts a new session. A zero seed is used as is, so callers that want
// varied games pick the seed themselves.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.shape = engine.DefaultShape()
	if cfg.Rows > 0 && cfg.Columns > 0 {
		g.shape = engine.NewShape(cfg.Rows, cfg.Columns)
	}

	g.seed = cfg.Seed
	s := uint64(cfg.Seed)
	g.ctrl = engine.NewController(g.shape, rand.New(rand.NewPCG(s, s)),
		engine.WithObserver(g.collect))

	g.tick = 0
	g.paused = false
	g.stuck = false
	g.events = nil
	g.Resize(cfg.ScreenW, cfg.ScreenH)

	g.ctrl.Reset()
}

func (g *Game) collect(e engine.Event) {
	g.events = append(g.events, e)
}

// Resize follows a terminal size change without restarting the session.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	w, h := g.minSize()
	g.tooSmall = width < w || height < h
}

// Step advances the game by one tick. At most one direction is applied per
// tick; simultaneous direction keys resolve as left, up, right, down.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	switch {
	case g.tooSmall:
	case g.ctrl.Congratulation() == engine.Pending:
		// Any key dismisses the congratulations and is consumed by it.
		if !in.Empty() {
			g.ctrl.Acknowledge()
		}
	case in.Has(core.ActionPause):
		g.paused = !g.paused
	case g.paused, g.ctrl.State() == engine.Lost:
	default:
		if a := in.First(directionActions...); a != core.ActionNone {
			g.ctrl.ApplyMove(actionDirections[a])
			g.stuck = !engine.CanMove(g.shape, g.ctrl.Grid())
		}
	}

	return core.StepResult{State: g.State(), Events: g.drain()}
}

func (g *Game) drain() []core.Event {
	events := g.events
	g.events = nil
	return events
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.ctrl == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.ctrl.Score(),
		GameOver: g.ctrl.State() == engine.Lost,
		Paused:   g.paused || g.tooSmall,
		Won:      g.ctrl.Congratulation() != engine.NotYet,
		Stuck:    g.stuck,
		MaxTile:  g.ctrl.Grid().MaxPower().Value(),
		Moves:    g.ctrl.Moves(),
	}
}

// Describe returns the session snapshot for spectators.
func (g *Game) Describe() any {
	return g.Snapshot()
}

// Controller exposes the engine controller, mainly for tests and tools.
func (g *Game) Controller() *engine.Controller {
	return g.ctrl
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD/hjkl: Move | P: Pause | R: Restart | Q: Quit"
}
