package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/b2048/internal/core"
	"github.com/vovakirdan/b2048/internal/registry"
	"github.com/vovakirdan/b2048/internal/storage"
)

// Publisher receives the events of every tick that produced some, together
// with a snapshot of the game. End is called once when the session closes.
type Publisher interface {
	Publish(session string, events []core.Event, snapshot any)
	End(session string)
}

// Env carries the services a running game uses. Every field is optional.
type Env struct {
	Store     *storage.Store
	Logger    *log.Logger
	Publisher Publisher
	Painter   *Painter
}

func (e Env) withDefaults() Env {
	if e.Logger == nil {
		e.Logger = log.New(io.Discard)
	}
	if e.Painter == nil {
		e.Painter = NewPainter(nil)
	}
	return e
}

// GameModel runs one game: it feeds key presses to the game once per tick,
// renders it and saves the result when a session ends.
type GameModel struct {
	game       registry.Game
	env        Env
	screen     *core.Screen
	config     core.RuntimeConfig
	player     string
	session    string
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	standalone bool // Back ends the program instead of switching views
	quitting   bool
	backToMenu bool
	saved      bool // Result of the current session already stored
}

// NewGameModel creates a model for game. A zero cfg.Seed is replaced with a
// clock-based seed.
func NewGameModel(game registry.Game, env Env, cfg core.RuntimeConfig, player, session string) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = newSeed()
	}
	if player == "" {
		player = "local"
	}

	return GameModel{
		game:       game,
		env:        env.withDefaults(),
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		player:     player,
		session:    session,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

func newSeed() int64 {
	return time.Now().UnixNano()
}

// Init starts the game and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.env.Logger.Debug("game started", "session", m.session, "player", m.player, "seed", m.config.Seed)
	return tickCmd(m.session, m.config.TickRate)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		// Ticks of a session that was left behind stop here.
		if msg.Session != m.session {
			return m, nil
		}
		return m.handleTick()
	}
	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		if path, err := m.saveScreenshot(); err != nil {
			m.env.Logger.Warn("screenshot failed", "error", err)
		} else {
			m.env.Logger.Info("screenshot saved", "path", path)
		}
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.end("quit")
		m.quitting = true
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionBack) && m.canLeave() {
		m.end("back")
		m.backToMenu = true
		if m.standalone {
			return m, tea.Quit
		}
	}
	return m, nil
}

// canLeave reports whether restart or back is accepted right now.
func (m GameModel) canLeave() bool {
	return m.gameState.GameOver || m.gameState.Paused || m.gameState.Stuck
}

func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.canLeave() {
		m.finish("restart")
		m.config.Seed = newSeed()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.saved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.session, m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if len(result.Events) > 0 && m.env.Publisher != nil {
		var snapshot any
		if d, ok := m.game.(registry.Describer); ok {
			snapshot = d.Describe()
		}
		m.env.Publisher.Publish(m.session, result.Events, snapshot)
	}

	if m.gameState.GameOver && !m.saved {
		m.finish("lost")
	}

	return m, tickCmd(m.session, m.config.TickRate)
}

// finish stores the result of the current session once. Sessions without a
// single move are not recorded.
func (m *GameModel) finish(reason string) {
	if m.saved {
		return
	}
	m.saved = true

	st := m.game.State()
	m.env.Logger.Info("game finished",
		"session", m.session,
		"player", m.player,
		"reason", reason,
		"score", st.Score,
		"max_tile", st.MaxTile,
		"moves", st.Moves,
	)

	if st.Moves == 0 || m.env.Store == nil {
		return
	}

	_, err := m.env.Store.SaveResult(storage.Result{
		GameID:  m.game.ID(),
		Player:  m.player,
		Score:   st.Score,
		MaxTile: st.MaxTile,
		Moves:   st.Moves,
		Won:     st.Won,
		Seed:    m.config.Seed,
	})
	if err != nil {
		// Best-effort save, play goes on regardless.
		m.env.Logger.Error("could not save result", "error", err)
	}
}

// end closes the session for good.
func (m *GameModel) end(reason string) {
	m.finish(reason)
	if m.env.Publisher != nil {
		m.env.Publisher.End(m.session)
	}
}

// saveScreenshot writes the current screen as plain text.
func (m GameModel) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".b2048", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	return path, os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the game.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return m.env.Painter.Render(m.screen)
}

// IsQuitting returns true if the user asked to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked to return to the menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// State returns the game state seen on the last tick.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// Run plays game in the local terminal until the user leaves it.
// It reports whether the user asked to quit rather than go back.
func Run(game registry.Game, env Env, cfg core.RuntimeConfig) (quit bool, err error) {
	session := fmt.Sprintf("local-%d", time.Now().UnixNano())
	model := NewGameModel(game, env, cfg, "local", session)
	model.standalone = true

	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return true, err
	}
	m, ok := final.(GameModel)
	return !ok || m.IsQuitting(), nil
}
