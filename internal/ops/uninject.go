package ops

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/tsukumogami/pienv/internal/symlink"
)

// UninjectOptions describes removing a previously injected package from a
// venv.
type UninjectOptions struct {
	Name     string // the venv to remove from
	Injected string // the package to remove
}

// Uninject uninstalls Injected from Name's venv, removes it from the
// recorded Injected set, and unlinks any launcher symlinks that belonged
// only to it.
func Uninject(ctx context.Context, d *Deps, opts UninjectOptions) (string, error) {
	rec, err := loadRecord(d, opts.Name)
	if err != nil || rec.InstalledVersion == "" {
		return "", fmt.Errorf("%s is not installed", opts.Name)
	}

	kept := rec.Injected[:0]
	wasInjected := false
	for _, existing := range rec.Injected {
		if existing == opts.Injected {
			wasInjected = true
			continue
		}
		kept = append(kept, existing)
	}
	if !wasInjected {
		return "", fmt.Errorf("%s was not injected into %s", opts.Injected, opts.Name)
	}
	rec.Injected = kept

	venvDir := d.Config.VenvDir(opts.Name)
	sitePackages := filepath.Join(venvDir, "lib")
	mainScripts := scanScripts(venvDir, sitePackages, opts.Name)
	ownScripts := map[string]bool{}
	for name := range scanScripts(venvDir, sitePackages, opts.Injected) {
		if !mainScripts[name] {
			ownScripts[name] = symlink.Check(d.Config.BinDir, venvDir, name)
		}
	}

	if err := d.Installer.Run(ctx, "pip", "uninstall", "--python", venvDir, opts.Injected); err != nil {
		return "", fmt.Errorf("uninject %s from %s: %w", opts.Injected, opts.Name, err)
	}

	for name, linked := range ownScripts {
		if linked {
			_ = symlink.Remove(d.Config.BinDir, name)
		}
		delete(rec.Scripts, name)
	}

	if err := saveRecord(d, opts.Name, rec); err != nil {
		return "", fmt.Errorf("save metadata for %s: %w", opts.Name, err)
	}

	return fmt.Sprintf("uninjected %s from %s", opts.Injected, opts.Name), nil
}
