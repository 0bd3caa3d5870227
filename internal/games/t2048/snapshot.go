package t2048

import "github.com/vovakirdan/b2048/internal/engine"

// Phase is the high-level state of a session.
type Phase string

const (
	PhasePlaying     Phase = "playing"
	PhasePaused      Phase = "paused"
	PhaseCongrats    Phase = "congratulations"
	PhaseStuck       Phase = "stuck"
	PhaseLost        Phase = "lost"
	PhaseSmallWindow Phase = "paused_small_window"
)

// Snapshot is a point-in-time copy of a session, used by spectators, tests
// and determinism checks.
type Snapshot struct {
	Tick           uint64  `json:"tick"`
	Seed           int64   `json:"seed"`
	Rows           int     `json:"rows"`
	Columns        int     `json:"columns"`
	Score          int     `json:"score"`
	Moves          int     `json:"moves"`
	Board          [][]int `json:"board"`
	MaxTile        int     `json:"max_tile"`
	Congratulation string  `json:"congratulation"`
	Phase          Phase   `json:"phase"`
}

// Snapshot returns the current session state.
func (g *Game) Snapshot() Snapshot {
	grid := g.ctrl.Grid()

	return Snapshot{
		Tick:           g.tick,
		Seed:           g.seed,
		Rows:           g.shape.Rows,
		Columns:        g.shape.Columns,
		Score:          g.ctrl.Score(),
		Moves:          g.ctrl.Moves(),
		Board:          grid.Values(g.shape),
		MaxTile:        grid.MaxPower().Value(),
		Congratulation: g.ctrl.Congratulation().String(),
		Phase:          g.phase(),
	}
}

func (g *Game) phase() Phase {
	switch {
	case g.tooSmall:
		return PhaseSmallWindow
	case g.ctrl.State() == engine.Lost:
		return PhaseLost
	case g.ctrl.Congratulation() == engine.Pending:
		return PhaseCongrats
	case g.paused:
		return PhasePaused
	case g.stuck:
		return PhaseStuck
	default:
		return PhasePlaying
	}
}
