package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/b2048/internal/games/t2048"
	"github.com/vovakirdan/b2048/internal/storage"
)

var (
	flagLimit int
	flagYes   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the best results. A * after the best tile marks games that
reached 2048.

Examples:
  b2048 scores
  b2048 scores --limit 25
  b2048 scores stats
  b2048 scores clear --yes`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

var scoresStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate statistics",
	Args:  cobra.NoArgs,
	RunE:  runScoresStats,
}

var scoresClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all recorded results",
	Args:  cobra.NoArgs,
	RunE:  runScoresClear,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", storage.DefaultTopLimit, "Number of results to show")
	scoresClearCmd.Flags().BoolVar(&flagYes, "yes", false, "Confirm deletion")

	scoresCmd.AddCommand(scoresStatsCmd)
	scoresCmd.AddCommand(scoresClearCmd)
}

func runScores(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(appConfig.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	results, err := store.TopScores(t2048.ID, flagLimit)
	if err != nil {
		return err
	}

	fmt.Println("High Scores - 2048")
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Run 'b2048 play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-12s  %-8s  %-6s  %-6s  %s\n", "Rank", "Player", "Score", "Best", "Moves", "Date")
	fmt.Printf("  %-4s  %-12s  %-8s  %-6s  %-6s  %s\n", "----", "------", "-----", "----", "-----", "----")

	for i, r := range results {
		best := fmt.Sprint(r.MaxTile)
		if r.Won {
			best += "*"
		}
		fmt.Printf("  %-4d  %-12s  %-8d  %-6s  %-6d  %s\n",
			i+1, r.Player, r.Score, best, r.Moves, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runScoresStats(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(appConfig.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := store.GetGameStats(t2048.ID)
	if err != nil {
		return err
	}

	if stats.GamesCount == 0 {
		fmt.Println("No games played yet.")
		return nil
	}

	fmt.Printf("Games played:  %d\n", stats.GamesCount)
	fmt.Printf("High score:    %d\n", stats.HighScore)
	fmt.Printf("Average score: %.0f\n", stats.AvgScore)
	fmt.Printf("Best tile:     %d\n", stats.BestTile)
	fmt.Printf("2048 reached:  %d\n", stats.Wins)
	if !stats.LastPlayed.IsZero() {
		fmt.Printf("Last played:   %s\n", stats.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

func runScoresClear(_ *cobra.Command, _ []string) error {
	if !flagYes {
		fmt.Fprintln(os.Stderr, "Refusing to delete scores without --yes.")
		return fmt.Errorf("not confirmed")
	}

	store, err := storage.Open(appConfig.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.ClearScores(t2048.ID); err != nil {
		return err
	}
	fmt.Println("All scores deleted.")
	return nil
}
