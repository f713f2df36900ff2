package main

import (
	"github.com/spf13/cobra"
	"github.com/tsukumogami/pienv/internal/ops"
)

var (
	uninstallForce bool
	uninstallAll   bool
)

var uninstallCmd = &cobra.Command{
	Use:   "uninstall <name>",
	Short: "Remove a package's virtual environment and its launchers",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if uninstallAll {
			succeeded, err := ops.UninstallAll(cmd.Context(), deps, uninstallForce)
			for _, name := range succeeded {
				printInfo("uninstalled", name)
			}
			if err != nil {
				printError(err)
				exitWithCode(ExitWarning)
			}
			return nil
		}

		if len(args) != 1 {
			return cobra.ExactArgs(1)(cmd, args)
		}

		msg, warning, err := ops.Uninstall(cmd.Context(), deps, ops.UninstallOptions{Name: args[0], Force: uninstallForce})
		if err != nil {
			return err
		}
		printInfo(msg)
		if warning {
			exitWithCode(ExitWarning)
		}
		return nil
	},
}

func init() {
	uninstallCmd.Flags().BoolVar(&uninstallForce, "force", false, "Remove orphaned state even if metadata is missing or invalid")
	uninstallCmd.Flags().BoolVar(&uninstallAll, "all", false, "Uninstall every managed package")
}
