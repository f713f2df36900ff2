package ops

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// InjectOptions describes installing one or more extra packages into an
// existing venv alongside its primary package, without disturbing the
// primary install.
type InjectOptions struct {
	Name  string   // the venv to inject into
	Specs []string // the package specs to add, resolved together
	// Binaries restricts which of the injected packages' console scripts
	// get a launcher symlink; empty means link everything they declare.
	Binaries []string
}

// Inject installs Specs into Name's existing venv with a single joint pip
// install call, so the packages resolve against each other the way the
// original's inject command does, rather than as independent sequential
// installs that could pick incompatible versions. It links any new console
// scripts and records each addition in the Injected set so Uninject and
// Reinstall know to redo it later. Injection is additive: a package can be
// injected more than once without disturbing previously injected packages.
func Inject(ctx context.Context, d *Deps, opts InjectOptions) (string, error) {
	if len(opts.Specs) == 0 {
		return "", fmt.Errorf("inject: at least one spec is required")
	}

	rec, err := loadRecord(d, opts.Name)
	if err != nil || rec.InstalledVersion == "" {
		return "", fmt.Errorf("%s is not installed", opts.Name)
	}

	venvDir := d.Config.VenvDir(opts.Name)
	installArgs := append([]string{"pip", "install", "--python", venvDir}, opts.Specs...)
	if err := d.Installer.Run(ctx, installArgs...); err != nil {
		return "", fmt.Errorf("inject %s into %s: %w", strings.Join(opts.Specs, ", "), opts.Name, err)
	}

	injectedNames := make([]string, 0, len(opts.Specs))
	for _, spec := range opts.Specs {
		injectedName := requirementNameOf(spec)
		injectedNames = append(injectedNames, injectedName)

		found := false
		for _, existing := range rec.Injected {
			if existing == injectedName {
				found = true
				break
			}
		}
		if !found {
			rec.Injected = append(rec.Injected, injectedName)
		}

		newScripts := scanScripts(venvDir, filepath.Join(venvDir, "lib"), injectedName)
		for name, ok := range newScripts {
			rec.Scripts[name] = ok
		}
	}

	if err := saveRecord(d, opts.Name, rec); err != nil {
		return "", fmt.Errorf("save metadata for %s: %w", opts.Name, err)
	}

	warning := reconcileSymlinks(d, venvDir, rec, false, opts.Binaries)
	if err := saveRecord(d, opts.Name, rec); err != nil {
		return "", fmt.Errorf("save metadata for %s: %w", opts.Name, err)
	}

	return fmt.Sprintf("injected %s into %s%s", strings.Join(injectedNames, ", "), opts.Name, warning), nil
}

func requirementNameOf(spec string) string {
	for i, c := range spec {
		if c == '[' || c == '=' || c == '<' || c == '>' || c == '~' || c == '!' || c == ' ' || c == '@' {
			return spec[:i]
		}
	}
	return spec
}
