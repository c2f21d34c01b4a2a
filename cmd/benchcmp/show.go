package main

import (
	"github.com/spf13/cobra"

	"github.com/lispmeister/hashline/internal/report"
	"github.com/lispmeister/hashline/internal/results"
)

var showCmd = &cobra.Command{
	Use:   "show <results.json>",
	Short: "Render a single benchmark result set as a table",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	_, set, err := results.Load(args[0])
	if err != nil {
		return err
	}
	report.NewRenderer(colorEnabled()).RenderSet(cmd.OutOrStdout(), set)
	return nil
}
