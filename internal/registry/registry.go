// Package registry is the global table of playable games. Games register a
// factory from init() so front ends can create them by ID.
package registry

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/vovakirdan/b2048/internal/core"
)

// Game is what a front end drives: it feeds one InputFrame per tick, renders
// into a Screen and reads the resulting state. Games do no I/O.
type Game interface {
	// ID is the stable identifier used by the CLI and score storage.
	ID() string

	// Title is the human-readable name.
	Title() string

	// Reset starts a fresh session with the given runtime config.
	Reset(cfg core.RuntimeConfig)

	// Step advances the game by one tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into dst.
	Render(dst *core.Screen)

	State() core.GameState
}

// Resizer is implemented by games that can follow terminal size changes
// without restarting the session.
type Resizer interface {
	Resize(width, height int)
}

// Describer is implemented by games that can report a JSON-encodable
// snapshot of their state, for spectators.
type Describer interface {
	Describe() any
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new game instance.
type Factory func() Game

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
)

// Register adds a game factory.
// Panics if the ID is already taken.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns all registered games sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{ID: id, Title: titles[id]})
	}
	slices.SortFunc(result, func(a, b GameInfo) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return result
}

// Create instantiates a game by ID.
func Create(id string) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// Exists reports whether a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
