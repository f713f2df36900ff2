package main

import (
	"os/exec"

	"github.com/spf13/cobra"
	"github.com/tsukumogami/pienv/internal/ops"
)

var (
	runBinary string
	runTemp   bool
	runKeep   bool
	runPython string
)

var runCmd = &cobra.Command{
	Use:   "run <spec> [args...]",
	Short: "Run a launcher from an installed package, or a throw-away one with --temp",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		spec, rest := args[0], args[1:]

		var err error
		if runTemp {
			err = ops.RunTemp(cmd.Context(), deps, ops.RunTempOptions{
				Spec:   spec,
				Binary: runBinary,
				Args:   rest,
				Python: runPython,
				Keep:   runKeep,
			})
		} else {
			err = ops.Run(cmd.Context(), deps, ops.RunOptions{
				Name:   spec,
				Binary: runBinary,
				Args:   rest,
			})
		}

		// A launcher that ran and exited non-zero passes its exit code on.
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitWithCode(exitErr.ExitCode())
		}
		return err
	},
}

func init() {
	runCmd.Flags().StringVar(&runBinary, "binary", "", "Launcher name to run (default: auto-detect)")
	runCmd.Flags().BoolVar(&runTemp, "temp", false, "Run from a throw-away venv instead of an installed one")
	runCmd.Flags().BoolVar(&runKeep, "keep", false, "Keep the throw-away venv after running (--temp only)")
	runCmd.Flags().StringVar(&runPython, "python", "", "Python interpreter for the throw-away venv (--temp only)")
}
