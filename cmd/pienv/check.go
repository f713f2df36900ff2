package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tsukumogami/pienv/internal/ops"
)

var (
	checkPrereleases       bool
	checkIgnoreConstraints bool
	checkRecheckScripts    bool
	checkJSON              bool
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report outdated packages and broken launcher scripts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		issues, err := ops.CheckAll(cmd.Context(), deps, ops.CheckAllOptions{
			Prereleases:       checkPrereleases,
			IgnoreConstraints: checkIgnoreConstraints,
			RecheckScripts:    checkRecheckScripts,
		})
		if err != nil {
			return err
		}

		if checkJSON {
			printJSON(issues)
		} else {
			printHumanIssues(issues)
		}

		if issues.Total() > 0 {
			exitWithCode(ExitWarning)
		}
		return nil
	},
}

func printHumanIssues(issues *ops.Issues) {
	if issues.Total() == 0 {
		printInfo("everything up to date")
		return
	}
	for _, o := range issues.Outdated {
		printInfo(fmt.Sprintf("%s: %s -> %s available", o.Name, o.Installed, o.Available))
	}
	for _, s := range issues.BrokenScripts {
		printInfo(fmt.Sprintf("%s: broken scripts %v", s.Name, s.Scripts))
	}
}

func init() {
	checkCmd.Flags().BoolVar(&checkPrereleases, "pre", false, "Allow pre-release versions when checking for updates")
	checkCmd.Flags().BoolVar(&checkIgnoreConstraints, "ignore-constraints", false, "Ignore each package's pinned version when checking for updates")
	checkCmd.Flags().BoolVar(&checkRecheckScripts, "recheck-scripts", true, "Re-verify that every recorded launcher still resolves")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "Print as JSON")
}
