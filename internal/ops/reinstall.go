package ops

import (
	"context"
	"fmt"
)

// ReinstallOptions describes recreating a package's venv from scratch,
// either at its currently recorded spec and version, or adopting a new
// Spec supplied by the caller (e.g. "black==25.0" to pin a different
// version, or a bare name to move off a prior pin).
type ReinstallOptions struct {
	Name   string
	Python string
	// Spec, when non-empty, replaces the recorded install spec instead of
	// replaying it. installSpecChanged is set when Spec is non-empty and
	// differs from the recorded install spec.
	Spec         string
	Force        bool
	NoCache      bool
	Editable     bool
	WithInjected bool
}

// Reinstall removes and recreates a package's venv, either replaying its
// existing metadata as the install spec or adopting opts.Spec in its
// place, and is idempotent: reinstalling twice in a row with no spec
// change produces the same recorded state both times.
func Reinstall(ctx context.Context, d *Deps, opts ReinstallOptions) (string, error) {
	rec, err := loadRecord(d, opts.Name)
	if err != nil || rec.InstalledVersion == "" {
		return "", fmt.Errorf("%s is not installed", opts.Name)
	}

	installSpecChanged := opts.Spec != "" && opts.Spec != rec.InstallSpec

	spec := rec.InstallSpec
	requestedVersion := rec.RequestedVersion
	extras := rec.Extras
	editable := opts.Editable || rec.Editable

	if installSpecChanged {
		_, version, specExtras := parseSpec(opts.Spec)
		spec = opts.Spec
		requestedVersion = version
		if specExtras != nil {
			extras = specExtras
		}
	} else if rec.RequestedVersion != "" {
		spec = fmt.Sprintf("%s==%s", rec.Name, rec.RequestedVersion)
	}

	injected := append([]string(nil), rec.Injected...)

	msg, err := Install(ctx, d, InstallOptions{
		Name:             opts.Name,
		Spec:             spec,
		RequestedVersion: requestedVersion,
		Python:           opts.Python,
		Extras:           extras,
		Editable:         editable,
		Force:            true,
		NoCache:          opts.NoCache || opts.Force,
	})
	if err != nil {
		return "", fmt.Errorf("reinstall %s: %w", opts.Name, err)
	}

	if opts.WithInjected && len(injected) > 0 {
		if _, err := Inject(ctx, d, InjectOptions{Name: opts.Name, Specs: injected}); err != nil {
			return "", fmt.Errorf("reinstall %s: reapply injections: %w", opts.Name, err)
		}
	}

	return fmt.Sprintf("re%s", msg), nil
}
