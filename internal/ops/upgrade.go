package ops

import (
	"context"
	"fmt"
	"path/filepath"
)

// UpgradeOptions describes moving a package to a newer version.
type UpgradeOptions struct {
	Name        string
	Prereleases bool
	// Force goes unconstrained past any version pin, moving to the current
	// latest release, and forces a fresh resolve by passing --no-cache to
	// the installer.
	Force bool
	// NoCache forces a fresh resolve without otherwise ignoring a pin.
	NoCache bool
	// SkipInjected omits previously injected packages from the upgrade
	// command instead of carrying them along.
	SkipInjected bool
}

// Upgrade resolves the latest version satisfying the package's recorded
// constraint and installs it in place unless it equals the installed
// version (with Force, it is installed even then).
// When the package is already pinned to its requested version and that
// version is current, Upgrade reports "already up to date" with a hint
// about the pin rather than silently doing nothing, matching the original's
// dual messaging. Extras and injected packages recorded on the metadata are
// carried into the upgrade spec, matching the original's _upgrade_package.
func Upgrade(ctx context.Context, d *Deps, opts UpgradeOptions) (string, error) {
	rec, err := loadRecord(d, opts.Name)
	if err != nil || rec.InstalledVersion == "" {
		return "", fmt.Errorf("%s is not installed", opts.Name)
	}

	idxCtx, cancel := contextWithTimeout(ctx)
	defer cancel()
	idx := ensureIndex(d)

	constraint := rec.RequestedVersion
	if opts.Force {
		constraint = ""
	}

	latest, err := idx.Latest(idxCtx, opts.Name, !opts.Prereleases, constraint)
	if err != nil {
		return "", fmt.Errorf("check latest version of %s: %w", opts.Name, err)
	}

	if !opts.Force && latest == rec.InstalledVersion {
		if rec.RequestedVersion != "" {
			return fmt.Sprintf("%s is already up to date at %s (pinned to %s)", opts.Name, latest, rec.RequestedVersion), nil
		}
		return fmt.Sprintf("%s is already up to date at %s", opts.Name, latest), nil
	}

	venvDir := d.Config.VenvDir(opts.Name)
	upgradeSpec := fmt.Sprintf("%s==%s", opts.Name, latest)
	if len(rec.Extras) > 0 {
		upgradeSpec = fmt.Sprintf("%s[%s]==%s", opts.Name, joinExtras(rec.Extras), latest)
	}

	installArgs := []string{"pip", "install", "--python", venvDir, "--upgrade"}
	if opts.Force || opts.NoCache {
		installArgs = append(installArgs, "--no-cache")
	}
	installArgs = append(installArgs, upgradeSpec)
	if !opts.SkipInjected {
		installArgs = append(installArgs, rec.Injected...)
	}
	if err := d.Installer.Run(ctx, installArgs...); err != nil {
		return "", fmt.Errorf("upgrade %s: %w", opts.Name, err)
	}

	previous := rec.InstalledVersion
	rec.InstalledVersion = latest
	rec.AvailableVersion = ""
	rec.Outdated = false
	if opts.Force {
		rec.RequestedVersion = ""
	}
	rec.Scripts = scanScripts(venvDir, filepath.Join(venvDir, "lib"), opts.Name)

	if err := saveRecord(d, opts.Name, rec); err != nil {
		return "", fmt.Errorf("save metadata for %s: %w", opts.Name, err)
	}
	warning := reconcileSymlinks(d, venvDir, rec, true, nil)
	if err := saveRecord(d, opts.Name, rec); err != nil {
		return "", fmt.Errorf("save metadata for %s: %w", opts.Name, err)
	}

	return fmt.Sprintf("%s moved from %s to %s%s", opts.Name, previous, latest, warning), nil
}
