package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordgrid/internal/board"
	"github.com/robalobadob/wordgrid/internal/game"
	"github.com/robalobadob/wordgrid/internal/generator"
	"github.com/robalobadob/wordgrid/internal/layouts"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Print a procedural or curated board",
	RunE: func(cmd *cobra.Command, args []string) error {
		setup, err := buildSetup(cmd)
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(cmd.OutOrStdout(), setup)
		}
		printSetup(cmd.OutOrStdout(), setup)
		return nil
	},
}

var playCmd = &cobra.Command{
	Use:   "play ROW,COL...",
	Short: "Trace one word on a board and print the result",
	Example: `  wordgrid play --layout first-steps 0,0 0,1 0,2
  wordgrid play --seed 7 3,3 3,4 2,4`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ps, err := parsePositions(args)
		if err != nil {
			return err
		}
		setup, err := buildSetup(cmd)
		if err != nil {
			return err
		}
		dict, err := loadDictionary(flagString(cmd, "words"))
		if err != nil {
			return err
		}
		g, err := game.New(setup, []board.Player{{ID: "cli"}}, false)
		if err != nil {
			return err
		}
		res, err := g.ApplyMove(dict, "cli", ps)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(out, res)
		}
		if !res.Accepted {
			return fmt.Errorf("rejected: %w", res.Reason)
		}
		fmt.Fprintf(out, "%s for %d points", res.Word, res.Score)
		if res.Clamped {
			fmt.Fprint(out, " (held back)")
		}
		fmt.Fprintln(out)
		for _, e := range res.Effects {
			fmt.Fprintf(out, "  %s %s via %s\n", e.Tier, e.Kind, e.Trigger)
		}
		fmt.Fprintf(out, "progress %d/%d (%d%%), %s\n\n", res.Progress.Current, res.Progress.Target, res.Progress.Percentage, res.Outcome)
		fmt.Fprintln(out, res.Board)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{boardCmd, playCmd} {
		c.Flags().String("layout", "", "curated layout id")
		c.Flags().String("layouts-file", "", "layouts YAML (default: built-in)")
		c.Flags().Int("size", 7, "procedural board size")
		c.Flags().Int64("seed", 0, "procedural seed (default: current time)")
		c.Flags().Int("target", 100, "score target for procedural boards")
		c.Flags().Int("turns", 15, "turn limit for procedural boards")
		c.Flags().Bool("json", false, "print JSON")
		rootCmd.AddCommand(c)
	}
	playCmd.Flags().String("words", "", "word list file (default: built-in)")
}

func buildSetup(cmd *cobra.Command) (*generator.Setup, error) {
	lib, err := layouts.Load(flagString(cmd, "layouts-file"))
	if err != nil {
		return nil, err
	}
	target, _ := cmd.Flags().GetInt("target")
	turns, _ := cmd.Flags().GetInt("turns")
	gen := generator.New(lib, target, turns)

	if id := flagString(cmd, "layout"); id != "" {
		return gen.Build(generator.Fixed{LayoutID: id})
	}
	size, _ := cmd.Flags().GetInt("size")
	seed, _ := cmd.Flags().GetInt64("seed")
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return gen.Build(generator.Procedural{Size: size, Seed: seed})
}

func printSetup(w io.Writer, s *generator.Setup) {
	if s.LayoutID != "" {
		fmt.Fprintf(w, "layout %s (%s)\n", s.LayoutID, s.Difficulty)
	} else {
		fmt.Fprintf(w, "seed %d\n", s.Seed)
	}
	fmt.Fprintf(w, "%s: %s", s.Mode, s.Condition.Description)
	if s.Turns > 0 {
		fmt.Fprintf(w, " in %d turns", s.Turns)
	}
	fmt.Fprintf(w, "\n\n%s\n", s.Board)
}

// parsePositions reads "row,col" arguments.
func parsePositions(args []string) ([]board.Position, error) {
	ps := make([]board.Position, 0, len(args))
	for _, a := range args {
		r, c, ok := strings.Cut(a, ",")
		if !ok {
			return nil, fmt.Errorf("position %q: want ROW,COL", a)
		}
		row, err := strconv.Atoi(strings.TrimSpace(r))
		if err != nil {
			return nil, fmt.Errorf("position %q: %w", a, err)
		}
		col, err := strconv.Atoi(strings.TrimSpace(c))
		if err != nil {
			return nil, fmt.Errorf("position %q: %w", a, err)
		}
		ps = append(ps, board.Position{Row: row, Col: col})
	}
	return ps, nil
}

func flagString(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
