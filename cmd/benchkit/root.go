package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool

	// diag carries every human-readable diagnostic. Results go to
	// stdout only; the two streams never mix.
	diag *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "benchkit",
	Short: "Benchmark UTF-16LE validation routines with hardware counters",
	Long: `benchkit measures the throughput and hardware efficiency (cycles/byte,
instructions/byte, IPC) of the registered UTF-16LE validation routines
over real input files.

Each (routine, file) pair is run through an adaptive loop that grows the
iteration count until a pass consumes the configured minimum CPU time,
discarding the first pass as warm-up. Results come out one line per
case in the Go benchmark text format.`,
	Version: "0.1.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		diag = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose diagnostics")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
