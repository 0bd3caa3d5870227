// b2048 plays 2048 in the terminal, locally or over SSH.
//
// Usage:
//
//	b2048                    - Start the menu (same as b2048 menu)
//	b2048 play               - Start a game right away
//	b2048 menu               - Menu with new game and high scores
//	b2048 serve              - Start the SSH server for remote play
//	b2048 scores             - Show high scores (scores stats, scores clear)
//
// Global flags:
//
//	--config <path>     - Config file (default: search ~/.b2048, ./configs, embedded)
//	--fps <rate>        - Tick rate
//	--seed <value>      - RNG seed for reproducible games
//	--db <path>         - Scores database path
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/b2048/internal/config"

	// Register the game.
	_ "github.com/vovakirdan/b2048/internal/games/t2048"
)

var (
	// Global flags
	flagConfig   string
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string

	// Set up by loadConfig before any command runs.
	appConfig config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "b2048",
	Short: "2048 in your terminal",
	Long: `b2048 is the sliding tile puzzle for the terminal.

Slide the board with the arrow keys, WASD or hjkl. Equal tiles merge
and a new tile appears after every move that changed the board.
Reach 2048 to win, then keep going for a higher score.

Available commands:
  play     - Start a game right away
  menu     - Menu with new game and high scores (default)
  serve    - Start the SSH server for remote play
  scores   - View, summarize or clear high scores

Examples:
  b2048
  b2048 play --seed 42
  b2048 play --rows 5 --cols 5
  b2048 serve --ssh :2222 --watch :8080
  b2048 scores --limit 20`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
	RunE:              runMenu,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (default from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.TickRate = flagFPS
	}
	if flags.Changed("db") {
		cfg.DBPath = flagDBPath
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	appConfig = cfg
	return nil
}

// newLogger builds the application logger writing to w.
func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(appConfig.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("config: log.level: %w", err)
	}

	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "b2048",
		Level:           level,
	}), nil
}

// newTUILogger builds a logger for commands that own the terminal. Output
// goes to log.file when set and is discarded otherwise. The returned close
// function is never nil.
func newTUILogger() (*log.Logger, func(), error) {
	if appConfig.Log.File == "" {
		logger, err := newLogger(io.Discard)
		return logger, func() {}, err
	}

	path, err := expandHome(appConfig.Log.File)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}

	logger, err := newLogger(f)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, func() { f.Close() }, nil
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot get home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
