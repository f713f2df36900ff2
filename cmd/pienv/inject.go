package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/tsukumogami/pienv/internal/ops"
)

var injectBinaries string

var injectCmd = &cobra.Command{
	Use:   "inject <name> <spec> [spec...]",
	Short: "Install one or more extra packages into an existing virtual environment",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var binaries []string
		if injectBinaries != "" {
			binaries = strings.Split(injectBinaries, ",")
		}

		msg, err := ops.Inject(cmd.Context(), deps, ops.InjectOptions{
			Name:     args[0],
			Specs:    args[1:],
			Binaries: binaries,
		})
		if err != nil {
			return err
		}
		printInfo(msg)
		return nil
	},
}

func init() {
	injectCmd.Flags().StringVar(&injectBinaries, "binary", "", "Comma-separated list of launcher names to expose (default: all)")
}

var uninjectCmd = &cobra.Command{
	Use:   "uninject <name> <injected>",
	Short: "Remove a previously injected package from a virtual environment",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		msg, err := ops.Uninject(cmd.Context(), deps, ops.UninjectOptions{Name: args[0], Injected: args[1]})
		if err != nil {
			return err
		}
		printInfo(msg)
		return nil
	},
}
