package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check whether pienv's bin directory is on PATH and your shell is supported",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		onPath := binDirOnPath(deps.Config.BinDir)
		shell := filepath.Base(os.Getenv("SHELL"))

		if onPath {
			printInfo("OK:", deps.Config.BinDir, "is on PATH")
		} else {
			printInfo("MISSING:", deps.Config.BinDir, "is not on PATH")
			printInfo("  add it to your shell's startup file, e.g.:")
			printInfo("    export PATH=\"" + deps.Config.BinDir + ":$PATH\"")
		}

		switch shell {
		case "bash", "zsh", "fish":
			printInfo("shell:", shell, "(supported)")
		default:
			printInfo("shell:", shellOrUnknown(shell), "(unrecognized; PATH instructions above may need adjusting)")
			exitWithCode(ExitUnsupportedShell)
		}

		return nil
	},
}

func binDirOnPath(binDir string) bool {
	for _, entry := range strings.Split(os.Getenv("PATH"), string(os.PathListSeparator)) {
		if filepath.Clean(entry) == filepath.Clean(binDir) {
			return true
		}
	}
	return false
}

func shellOrUnknown(shell string) string {
	if shell == "" {
		return "unknown"
	}
	return shell
}
