// tanks is a deterministic tank battle simulator for the terminal.
//
// Usage:
//
//	tanks run <map>          - Run a match headless and write a transcript
//	tanks watch <map>        - Watch a match live in the terminal
//	tanks results            - Show recently recorded match results
//	tanks strategies         - List available tank strategies
//
// Global flags:
//
//	--db <path>         - Set database path (default: ~/.tanks/matches.db)
//	--config <path>     - Path to custom rules config YAML
//	--log-level <lvl>   - Log verbosity: debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tanks",
	Short: "Tank Arena - deterministic tank battles in your terminal",
	Long: `Tank Arena is a discrete-time tank battle simulator. Two players'
tanks fight on a wraparound grid, driven by pluggable strategies, and
every match replays identically from the same map and strategy choice.

Available commands:
  run         - Run a match headless and write a transcript
  watch       - Watch a match live in the terminal
  results     - Show recorded match results
  strategies  - List available tank strategies

Examples:
  tanks run maps/arena.txt
  tanks run maps/arena.txt --strategy2 rotator --output out.txt
  tanks watch maps/arena.txt --rate 15
  tanks results --last 10
  tanks strategies`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tanks/matches.db", "Path to match results database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom rules config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log verbosity: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(strategiesCmd)
}

// newLogger builds the logger handle every component receives explicitly.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "tanks",
	})
	if lvl, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}
