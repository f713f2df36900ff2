package ops

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/tsukumogami/pienv/internal/metadata"
)

// RunOptions describes executing a launcher from an already-installed
// package's venv.
type RunOptions struct {
	Name   string // the installed package
	Binary string // explicit launcher name; empty means auto-detect
	Args   []string
}

// Run resolves a launcher inside an installed package's venv and execs it
// with inherited stdio. If Binary is empty and the venv declares more than
// one console script, Run fails with an error listing every candidate so
// the caller knows to pass --binary, rather than guessing.
func Run(ctx context.Context, d *Deps, opts RunOptions) error {
	rec, err := loadRecord(d, opts.Name)
	if err != nil || rec.InstalledVersion == "" {
		return fmt.Errorf("%s is not installed", opts.Name)
	}

	venvDir := d.Config.VenvDir(opts.Name)
	binary, err := resolveLauncher(venvDir, rec, opts.Binary)
	if err != nil {
		return err
	}

	return execBinary(ctx, filepath.Join(venvDir, "bin", binary), opts.Args)
}

// resolveLauncher picks the launcher to run: an explicit name if given
// (verified against the venv's bin dir), the single recorded script if
// there is exactly one, or an error enumerating every candidate.
func resolveLauncher(venvDir string, rec *metadata.Record, explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(filepath.Join(venvDir, "bin", explicit)); err != nil {
			return "", fmt.Errorf("%s has no launcher named %q", rec.Name, explicit)
		}
		return explicit, nil
	}

	var candidates []string
	for name := range rec.Scripts {
		candidates = append(candidates, name)
	}

	switch len(candidates) {
	case 0:
		return "", fmt.Errorf("%s declares no launchers", rec.Name)
	case 1:
		return candidates[0], nil
	default:
		return "", fmt.Errorf("%s has multiple launchers (%v); pass --binary to pick one", rec.Name, candidates)
	}
}

func execBinary(ctx context.Context, path string, args []string) error {
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
