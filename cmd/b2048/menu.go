package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/b2048/internal/games/t2048"
	"github.com/vovakirdan/b2048/internal/platform/tui"
	"github.com/vovakirdan/b2048/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the menu",
	Long: `Start b2048 in interactive menu mode.

Pick a new game or look at the high scores. After a game you return
to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - High scores
  Q            - Quit

Examples:
  b2048 menu
  b2048 menu --fps 60
  b2048 menu --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	addBoardFlags(menuCmd)
}

func newSeed() int64 {
	return time.Now().UnixNano()
}

func runMenu(_ *cobra.Command, _ []string) error {
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

	fixedSeed := cfg.Seed != 0
	for {
		result, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}
		// Keep size changes made while the menu was open.
		cfg = result.Config

		switch result.Choice {
		case tui.ChoiceScores:
			goBack, err := tui.RunScoreboard(store, t2048.ID, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}

		case tui.ChoicePlay:
			game, err := registry.Create(t2048.ID)
			if err != nil {
				return err
			}
			if !fixedSeed {
				cfg.Seed = newSeed()
			}
			quit, err := tui.Run(game, env, cfg)
			if err != nil || quit {
				return err
			}

		default:
			return nil
		}
	}
}
