package main

import (
	"github.com/spf13/cobra"
	"github.com/tsukumogami/pienv/internal/ops"
)

var (
	reinstallPython         string
	reinstallEditable       bool
	reinstallForce          bool
	reinstallNoCache        bool
	reinstallWithoutInjected bool
	reinstallAll            bool
)

var reinstallCmd = &cobra.Command{
	Use:   "reinstall <name> [spec]",
	Short: "Recreate a package's virtual environment from its recorded spec, or adopt a new one",
	Args:  cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if reinstallAll {
			succeeded, err := ops.ReinstallAll(cmd.Context(), deps)
			for _, name := range succeeded {
				printInfo("reinstalled", name)
			}
			if err != nil {
				return err
			}
			return nil
		}

		if len(args) < 1 {
			return cobra.MinimumNArgs(1)(cmd, args)
		}

		var spec string
		if len(args) == 2 {
			spec = args[1]
		}

		msg, err := ops.Reinstall(cmd.Context(), deps, ops.ReinstallOptions{
			Name:         args[0],
			Spec:         spec,
			Python:       reinstallPython,
			Editable:     reinstallEditable,
			Force:        reinstallForce,
			NoCache:      reinstallNoCache,
			WithInjected: !reinstallWithoutInjected,
		})
		if err != nil {
			return err
		}
		printInfo(msg)
		return nil
	},
}

func init() {
	reinstallCmd.Flags().StringVar(&reinstallPython, "python", "", "Python interpreter to recreate the venv with")
	reinstallCmd.Flags().BoolVar(&reinstallEditable, "editable", false, "Reinstall in editable mode")
	reinstallCmd.Flags().BoolVar(&reinstallForce, "force", false, "Force a fresh resolve, bypassing the installer cache")
	reinstallCmd.Flags().BoolVar(&reinstallNoCache, "no-cache", false, "Bypass the installer cache without forcing other changes")
	reinstallCmd.Flags().BoolVar(&reinstallWithoutInjected, "without-injected", false, "Skip reapplying previously injected packages")
	reinstallCmd.Flags().BoolVar(&reinstallAll, "all", false, "Reinstall every managed package")
}
