package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "moodlens-api",
	Short: "MoodLens mood tracking and insights API",
	Long: `MoodLens records segment-level mood ratings and daily context factors,
and serves statistics, factor correlations, and generated insights over them.`,
	// A failed serve run should print the error, not the flag help.
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
