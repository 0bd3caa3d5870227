package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/b2048/internal/core"
	"github.com/vovakirdan/b2048/internal/games/t2048"
	"github.com/vovakirdan/b2048/internal/platform/tui"
	"github.com/vovakirdan/b2048/internal/registry"
	"github.com/vovakirdan/b2048/internal/storage"
)

var (
	flagRows    int
	flagColumns int
	flagWatch   string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a game right away",
	Long: `Start a game of 2048 without going through the menu.

Controls:
  Arrows/WASD/hjkl  - Slide the board
  P/Esc             - Pause
  Any key           - Dismiss the 2048 message and keep going
  R                 - Restart (paused, stuck or game over)
  B                 - Leave (paused, stuck or game over)
  Ctrl+S            - Save a text screenshot to ~/.b2048/screenshots
  Q/Ctrl+C          - Quit

Examples:
  b2048 play
  b2048 play --seed 42
  b2048 play --rows 3 --cols 5
  b2048 play --watch :8080`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	addBoardFlags(playCmd)
}

// addBoardFlags registers the flags shared by commands that run local games.
func addBoardFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&flagRows, "rows", 0, "Board rows (default 4)")
	cmd.Flags().IntVar(&flagColumns, "cols", 0, "Board columns (default 4)")
	cmd.Flags().StringVar(&flagWatch, "watch", "", "Serve the spectator feed on this address (default from config)")
}

// runtimeConfig builds the game config from flags, config and terminal size.
func runtimeConfig() (core.RuntimeConfig, error) {
	if (flagRows == 0) != (flagColumns == 0) {
		return core.RuntimeConfig{}, fmt.Errorf("--rows and --cols must be set together")
	}
	if flagRows < 0 || flagColumns < 0 {
		return core.RuntimeConfig{}, fmt.Errorf("invalid board size %dx%d", flagRows, flagColumns)
	}

	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = appConfig.TickRate
	cfg.Seed = flagSeed
	cfg.Rows = flagRows
	cfg.Columns = flagColumns
	return cfg, nil
}

// openStore opens the scores database. Play goes on without one.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(appConfig.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores disabled", "path", appConfig.DBPath, "error", err)
		return nil
	}
	return store
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := runtimeConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newTUILogger()
	if err != nil {
		return err
	}
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	env := tui.Env{Store: store, Logger: logger}
	stop, err := startSpectate(&env)
	if err != nil {
		return err
	}
	defer stop()

	game, err := registry.Create(t2048.ID)
	if err != nil {
		return err
	}

	// The seed is kept for the saved result.
	if cfg.Seed == 0 {
		cfg.Seed = newSeed()
	}
	_, err = tui.Run(game, env, cfg)
	return err
}
