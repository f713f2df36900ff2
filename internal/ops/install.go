package ops

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tsukumogami/pienv/internal/metadata"
	"github.com/tsukumogami/pienv/internal/venv"
)

// InstallOptions describes a single package install, the Absent →
// Installed transition.
type InstallOptions struct {
	// Name is the package to install, or its display name when Spec is a
	// resolved local/VCS spec.
	Name string
	// Spec is the install spec passed to the installer: a bare name,
	// "name==1.2.3", "name @ url", or anything uv's own parser accepts.
	// Defaults to Name when empty.
	Spec             string
	RequestedVersion string
	Python           string
	Extras           []string
	Editable         bool
	Force            bool
	Prereleases      bool
	NoCache          bool
}

// Install creates a venv for a package and installs it, in strict sequence:
// create venv, install the spec, save metadata, reconcile symlinks, save
// metadata again so the persisted Scripts map reflects reconciliation
// results. On installer failure, or on a launcher-name collision in BinDir
// without --force, the venv and any metadata written for it are removed
// and the error propagated, so a failed install never leaves a package
// looking installed.
func Install(ctx context.Context, d *Deps, opts InstallOptions) (string, error) {
	if opts.Name == "" {
		return "", fmt.Errorf("install: name is required")
	}
	spec := opts.Spec
	if spec == "" {
		spec = opts.Name
	}

	venvDir := d.Config.VenvDir(opts.Name)
	if metadata.Exists(d.Config.MetadataFile(opts.Name)) && !opts.Force {
		return "", fmt.Errorf("%s is already installed; pass --force to reinstall", opts.Name)
	}

	if err := venv.CreateVenv(ctx, d.Installer, venvDir, opts.Python, opts.Force, false); err != nil {
		return "", fmt.Errorf("create venv for %s: %w", opts.Name, err)
	}

	installSpec := spec
	if len(opts.Extras) > 0 {
		installSpec = fmt.Sprintf("%s[%s]", spec, joinExtras(opts.Extras))
	}

	installArgs := []string{"pip", "install", "--python", venvDir}
	if opts.Editable {
		installArgs = append(installArgs, "-e")
	}
	if opts.NoCache {
		installArgs = append(installArgs, "--no-cache")
	}
	if opts.Prereleases {
		installArgs = append(installArgs, "--prerelease", "allow")
	}
	installArgs = append(installArgs, installSpec)
	if err := d.Installer.Run(ctx, installArgs...); err != nil {
		ensureVenvDirRemoved(venvDir)
		return "", fmt.Errorf("install %s: %w", opts.Name, err)
	}

	interp, err := venv.Activate(ctx, d.Installer, venvDir)
	if err != nil {
		interp = &venv.Interpreter{}
	}

	installedVersion, err := venv.InstalledVersion(ctx, d.Installer, venvDir, opts.Name)
	if err != nil {
		installedVersion = opts.RequestedVersion
	}

	rec := metadata.New(opts.Name)
	rec.InstallSpec = spec
	rec.RequestedVersion = opts.RequestedVersion
	rec.InstalledVersion = installedVersion
	rec.Extras = opts.Extras
	rec.Editable = opts.Editable
	rec.Fill(interp)
	rec.Scripts = scanScripts(venvDir, filepath.Join(venvDir, "lib"), opts.Name)

	if err := saveRecord(d, opts.Name, rec); err != nil {
		ensureVenvDirRemoved(venvDir)
		return "", fmt.Errorf("save metadata for %s: %w", opts.Name, err)
	}

	reconcileSymlinks(d, venvDir, rec, opts.Force, nil)

	var warning string
	if failed := rec.InvalidScripts(); len(failed) > 0 {
		if !opts.Force {
			ensureVenvDirRemoved(venvDir)
			_ = os.Remove(d.Config.MetadataFile(opts.Name))
			return "", fmt.Errorf("install %s: launcher name(s) %v already exist in %s; pass --force to overwrite", opts.Name, failed, d.Config.BinDir)
		}
		warning = fmt.Sprintf(" (warning: could not link %v)", failed)
	}

	if err := saveRecord(d, opts.Name, rec); err != nil {
		ensureVenvDirRemoved(venvDir)
		return "", fmt.Errorf("save metadata for %s: %w", opts.Name, err)
	}

	return fmt.Sprintf("installed %s %s%s", opts.Name, installedVersion, warning), nil
}

func joinExtras(extras []string) string {
	out := ""
	for i, e := range extras {
		if i > 0 {
			out += ","
		}
		out += e
	}
	return out
}

// ensureVenvDirRemoved removes a venv directory left behind by a failed
// install, so a failed Install or Reinstall never leaves an orphaned venv
// on disk with no corresponding metadata.
func ensureVenvDirRemoved(path string) {
	if _, err := os.Stat(path); err == nil {
		_ = os.RemoveAll(path)
	}
}
