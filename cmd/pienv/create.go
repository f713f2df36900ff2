package main

import (
	"github.com/spf13/cobra"
	"github.com/tsukumogami/pienv/internal/ops"
)

var (
	createPython string
	createForce  bool
	createSeed   bool
)

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a bare virtual environment with no package installed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		msg, err := ops.Create(cmd.Context(), deps, ops.CreateOptions{
			Name:   args[0],
			Python: createPython,
			Force:  createForce,
			Seed:   createSeed,
		})
		if err != nil {
			return err
		}
		printInfo(msg)
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&createPython, "python", "", "Python interpreter to create the venv with")
	createCmd.Flags().BoolVar(&createForce, "force", false, "Overwrite an existing venv of the same name")
	createCmd.Flags().BoolVar(&createSeed, "seed", false, "Seed the venv with pip/setuptools/wheel")
}
