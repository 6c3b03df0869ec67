package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tank-arena/internal/strategy"
)

var strategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "List all available tank strategies",
	Long:  `Shows every strategy that can be assigned to a player's tanks.`,
	Run:   runStrategies,
}

func runStrategies(cmd *cobra.Command, args []string) {
	infos := strategy.List()

	if len(infos) == 0 {
		fmt.Println("No strategies available.")
		return
	}

	fmt.Println("Available strategies:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, s := range infos {
		if len(s.ID) > maxIDLen {
			maxIDLen = len(s.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Description")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----------")
	for _, s := range infos {
		fmt.Printf("  %-*s  %s\n", maxIDLen, s.ID, s.Description)
	}

	fmt.Println()
	fmt.Println("Run 'tanks run <map> --strategy1 <id> --strategy2 <id>' to pit them against each other.")
}
