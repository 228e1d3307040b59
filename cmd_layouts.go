package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordgrid/internal/layouts"
	"github.com/robalobadob/wordgrid/internal/words"
)

var layoutsCmd = &cobra.Command{
	Use:   "layouts",
	Short: "List curated layouts",
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := layouts.Load(flagString(cmd, "file"))
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(cmd.OutOrStdout(), lib.List())
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tSIZE\tMODE\tTURNS\tDIFFICULTY\tGOAL")
		for _, l := range lib.List() {
			fmt.Fprintf(tw, "%s\t%d\t%s\t%d\t%s\t%s\n", l.ID, l.Size, l.Mode, l.Turns, l.Difficulty, l.Win.Description)
		}
		return tw.Flush()
	},
}

var checkCmd = &cobra.Command{
	Use:   "check WORD...",
	Short: "Look words up in the dictionary",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dict, err := loadDictionary(flagString(cmd, "words"))
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, w := range args {
			status := "unknown"
			if dict.IsValid(w) {
				status = "valid"
			}
			line := fmt.Sprintf("%s\t%s", strings.ToUpper(w), status)
			if cat := words.Classify(w); cat != words.CategoryNone {
				line += "\t" + string(cat)
			}
			fmt.Fprintln(out, line)
		}
		return nil
	},
}

func init() {
	layoutsCmd.Flags().String("file", "", "layouts YAML (default: built-in)")
	layoutsCmd.Flags().Bool("json", false, "print JSON")
	checkCmd.Flags().String("words", "", "word list file (default: built-in)")
	rootCmd.AddCommand(layoutsCmd, checkCmd)
}
