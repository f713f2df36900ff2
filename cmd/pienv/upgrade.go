package main

import (
	"github.com/spf13/cobra"
	"github.com/tsukumogami/pienv/internal/ops"
)

var (
	upgradePrereleases  bool
	upgradeForce        bool
	upgradeNoCache      bool
	upgradeSkipInjected bool
	upgradeAll          bool
)

var upgradeCmd = &cobra.Command{
	Use:   "upgrade <name>",
	Short: "Upgrade an installed package to its latest matching version",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if upgradeAll {
			succeeded, err := ops.UpgradeAll(cmd.Context(), deps, upgradePrereleases)
			for _, name := range succeeded {
				printInfo("upgraded", name)
			}
			if err != nil {
				return err
			}
			return nil
		}

		if len(args) != 1 {
			return cobra.ExactArgs(1)(cmd, args)
		}

		msg, err := ops.Upgrade(cmd.Context(), deps, ops.UpgradeOptions{
			Name:         args[0],
			Prereleases:  upgradePrereleases,
			Force:        upgradeForce,
			NoCache:      upgradeNoCache,
			SkipInjected: upgradeSkipInjected,
		})
		if err != nil {
			return err
		}
		printInfo(msg)
		return nil
	},
}

func init() {
	upgradeCmd.Flags().BoolVar(&upgradePrereleases, "pre", false, "Allow pre-release versions")
	upgradeCmd.Flags().BoolVar(&upgradeForce, "force", false, "Move past any version pin to the current latest release")
	upgradeCmd.Flags().BoolVar(&upgradeNoCache, "no-cache", false, "Bypass the installer cache without forcing past a pin")
	upgradeCmd.Flags().BoolVar(&upgradeSkipInjected, "skip-injected", false, "Don't carry previously injected packages into the upgrade")
	upgradeCmd.Flags().BoolVar(&upgradeAll, "all", false, "Upgrade every managed package")
}
