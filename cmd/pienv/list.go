package main

import (
	"github.com/spf13/cobra"
	"github.com/tsukumogami/pienv/internal/ops"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every managed package",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := ops.List(deps)
		if err != nil {
			return err
		}

		if listJSON {
			printJSON(records)
			return nil
		}

		for _, rec := range records {
			printInfo(rec.FormatShort())
		}
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Print as JSON")
}
