package ops

import (
	"context"
	"fmt"

	"github.com/tsukumogami/pienv/internal/symlink"
	"github.com/tsukumogami/pienv/internal/venv"
)

func removeVenvDir(path string) error {
	return venv.RemoveVenv(path)
}

// UninstallOptions describes removing a package's venv entirely.
type UninstallOptions struct {
	Name  string
	Force bool
}

// Uninstall removes a package's venv and its launcher symlinks. If Force is
// set and the venv metadata is missing or unreadable, Uninstall still
// removes the launcher symlink named after the package from BinDir (no
// other names are looked for) rather than refusing,
// matching the original's force-with-orphan-symlink-removal behavior; this
// path reports an Exited(2) warning via the returned bool so callers can
// choose the warning exit code.
func Uninstall(ctx context.Context, d *Deps, opts UninstallOptions) (message string, warning bool, err error) {
	venvDir := d.Config.VenvDir(opts.Name)
	rec, loadErr := loadRecord(d, opts.Name)

	if loadErr != nil || rec.InstalledVersion == "" {
		if !opts.Force {
			return "", false, fmt.Errorf("%s is not installed", opts.Name)
		}
		_ = symlink.Remove(d.Config.BinDir, opts.Name)
		return fmt.Sprintf("warning: %s had no valid metadata; removed any orphaned symlink", opts.Name), true, nil
	}

	for name := range rec.Scripts {
		_ = symlink.Remove(d.Config.BinDir, name)
	}

	if err := removeVenvDir(venvDir); err != nil {
		return "", false, fmt.Errorf("remove venv for %s: %w", opts.Name, err)
	}

	return fmt.Sprintf("uninstalled %s", opts.Name), false, nil
}
