package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lispmeister/hashline/internal/results"
)

var validateCmd = &cobra.Command{
	Use:   "validate <results.json>",
	Short: "Check that a benchmark result document is well-formed",
	Long: `Parses a result document and reports whether it satisfies the expected
shape: version/commit/runner metadata plus a results array where every entry
carries a benchmark name and a value. Exits non-zero on the first problem.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	_, set, err := results.Load(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d results)\n", args[0], len(set.Results))
	return nil
}
