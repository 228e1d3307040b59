// main.go
//
// Entry point for the wordgrid binary.
// Commands (see cmd_*.go):
//   - serve    → run the HTTP API
//   - board    → print a procedural or curated board
//   - play     → apply one tile path to a board and print the result
//   - layouts  → list curated layouts
//   - check    → look words up in the dictionary

package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "wordgrid",
	Short:         "Word-grid puzzle engine and game server",
	Long:          `wordgrid deals letter grids, scores words traced across them and runs the follow-on board effects.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().Bool("pretty", false, "human-readable console logs")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if pretty, _ := cmd.Flags().GetBool("pretty"); pretty {
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
