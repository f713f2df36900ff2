package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/tsukumogami/pienv/internal/ops"
)

var (
	installVersion     string
	installPython      string
	installExtras      string
	installEditable    bool
	installForce       bool
	installPrereleases bool
)

var installCmd = &cobra.Command{
	Use:   "install <spec>",
	Short: "Install a Python package into a new isolated virtual environment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		spec := args[0]
		name, pinned := splitSpec(spec)
		version := installVersion
		if version == "" {
			version = pinned
		}

		var extras []string
		if installExtras != "" {
			extras = strings.Split(installExtras, ",")
		}

		msg, err := ops.Install(cmd.Context(), deps, ops.InstallOptions{
			Name:             name,
			Spec:             spec,
			RequestedVersion: version,
			Python:           installPython,
			Extras:           extras,
			Editable:         installEditable,
			Force:            installForce,
			Prereleases:      installPrereleases,
		})
		if err != nil {
			return err
		}
		printInfo(msg)
		return nil
	},
}

func init() {
	installCmd.Flags().StringVar(&installVersion, "version", "", "Pin to an exact version")
	installCmd.Flags().StringVar(&installPython, "python", "", "Python interpreter to create the venv with")
	installCmd.Flags().StringVar(&installExtras, "extras", "", "Comma-separated list of extras to install")
	installCmd.Flags().BoolVar(&installEditable, "editable", false, "Install in editable mode (local paths only)")
	installCmd.Flags().BoolVar(&installForce, "force", false, "Overwrite an existing install of the same name")
	installCmd.Flags().BoolVar(&installPrereleases, "pre", false, "Allow pre-release versions when resolving an unpinned spec")
}

// splitSpec splits "name==1.2.3" into ("name", "1.2.3"); a bare name
// returns ("name", "").
func splitSpec(spec string) (name, version string) {
	for _, sep := range []string{"==", "@"} {
		if i := strings.Index(spec, sep); i >= 0 {
			return strings.TrimSpace(spec[:i]), strings.TrimSpace(spec[i+len(sep):])
		}
	}
	return spec, ""
}
