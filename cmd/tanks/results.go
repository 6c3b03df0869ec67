package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tank-arena/internal/storage"
)

var (
	flagLast  int
	flagStats bool
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Show recorded match results",
	Long: `Display recently recorded matches, newest first, or aggregated
win/tie counts per map with --stats.

Examples:
  tanks results
  tanks results --last 10
  tanks results --stats`,
	Run: runResults,
}

func init() {
	resultsCmd.Flags().IntVar(&flagLast, "last", 20, "Number of recent matches to show")
	resultsCmd.Flags().BoolVar(&flagStats, "stats", false, "Show per-map aggregates instead of individual matches")
}

func runResults(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening match database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagStats {
		printStats(store)
		return
	}
	printRecent(store)
}

func printRecent(store *storage.Store) {
	matches, err := store.RecentMatches(flagLast)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving matches: %v\n", err)
		os.Exit(1)
	}

	if len(matches) == 0 {
		fmt.Println("No matches recorded yet.")
		fmt.Println()
		fmt.Println("Run 'tanks run <map>' to record the first one.")
		return
	}

	fmt.Println("Recent matches:")
	fmt.Println()

	// Calculate column width for the map name
	maxMapLen := 3 // "Map" header
	for _, m := range matches {
		if len(m.MapName) > maxMapLen {
			maxMapLen = len(m.MapName)
		}
	}

	fmt.Printf("  %-*s  %-18s  %-8s  %-12s  %-6s  %s\n",
		maxMapLen, "Map", "Strategies", "Winner", "Reason", "Ticks", "Date")
	fmt.Printf("  %-*s  %-18s  %-8s  %-12s  %-6s  %s\n",
		maxMapLen, "---", "----------", "------", "------", "-----", "----")

	for _, m := range matches {
		winner := "tie"
		if m.Winner != 0 {
			winner = fmt.Sprintf("player %d", m.Winner)
		}
		strategies := m.Strategy1 + " vs " + m.Strategy2
		dateStr := m.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-*s  %-18s  %-8s  %-12s  %-6d  %s\n",
			maxMapLen, m.MapName, strategies, winner, m.Reason, m.Ticks, dateStr)
	}
}

func printStats(store *storage.Store) {
	stats, err := store.StatsByMap()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		os.Exit(1)
	}

	if len(stats) == 0 {
		fmt.Println("No matches recorded yet.")
		return
	}

	fmt.Println("Results by map:")
	fmt.Println()

	maxMapLen := 3
	for _, st := range stats {
		if len(st.MapName) > maxMapLen {
			maxMapLen = len(st.MapName)
		}
	}

	fmt.Printf("  %-*s  %-8s  %-8s  %-8s  %s\n", maxMapLen, "Map", "Matches", "P1 wins", "P2 wins", "Ties")
	fmt.Printf("  %-*s  %-8s  %-8s  %-8s  %s\n", maxMapLen, "---", "-------", "-------", "-------", "----")
	for _, st := range stats {
		fmt.Printf("  %-*s  %-8d  %-8d  %-8d  %d\n",
			maxMapLen, st.MapName, st.Matches, st.Wins1, st.Wins2, st.Ties)
	}
}
