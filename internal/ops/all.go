package ops

import (
	"context"
	"os"

	"github.com/tsukumogami/pienv/internal/bulk"
)

// defaultParallelism bounds how many venvs the -All variants touch
// concurrently.
const defaultParallelism = 4

// listInstalledNames returns every package name with a venv under
// config.VenvsDir.
func listInstalledNames(d *Deps) ([]string, error) {
	entries, err := os.ReadDir(d.Config.VenvsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// UpgradeAll upgrades every installed package, bounded to defaultParallelism
// concurrent upgrades. One package's failure never aborts another's.
func UpgradeAll(ctx context.Context, d *Deps, prereleases bool) ([]string, error) {
	names, err := listInstalledNames(d)
	if err != nil {
		return nil, err
	}
	succeeded, err := bulk.RunBounded(ctx, defaultParallelism, names, func(c context.Context, name string) error {
		_, upgradeErr := Upgrade(c, d, UpgradeOptions{Name: name, Prereleases: prereleases})
		return upgradeErr
	})
	return succeeded, err
}

// ReinstallAll reinstalls every installed package.
func ReinstallAll(ctx context.Context, d *Deps) ([]string, error) {
	names, err := listInstalledNames(d)
	if err != nil {
		return nil, err
	}
	succeeded, err := bulk.RunBounded(ctx, defaultParallelism, names, func(c context.Context, name string) error {
		_, reErr := Reinstall(c, d, ReinstallOptions{Name: name, WithInjected: true})
		return reErr
	})
	return succeeded, err
}

// UninstallAll removes every installed package.
func UninstallAll(ctx context.Context, d *Deps, force bool) ([]string, error) {
	names, err := listInstalledNames(d)
	if err != nil {
		return nil, err
	}
	succeeded, err := bulk.RunBounded(ctx, defaultParallelism, names, func(c context.Context, name string) error {
		_, _, uninstallErr := Uninstall(c, d, UninstallOptions{Name: name, Force: force})
		return uninstallErr
	})
	return succeeded, err
}
