package ops

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tsukumogami/pienv/internal/entrypoints"
	"github.com/tsukumogami/pienv/internal/venv"
)

// RunTempOptions describes running a launcher from a throw-away venv,
// pienv's equivalent of "uvx <package>".
type RunTempOptions struct {
	Spec   string
	Binary string
	Args   []string
	Python string
	Keep   bool
}

// RunTemp creates a venv under os.TempDir() with a "pienv-run-" prefix,
// installs Spec into it, execs the resolved launcher with inherited stdio,
// and removes the venv afterward unless Keep is set.
func RunTemp(ctx context.Context, d *Deps, opts RunTempOptions) error {
	tmpDir, err := os.MkdirTemp("", "pienv-run-")
	if err != nil {
		return fmt.Errorf("create scratch venv dir: %w", err)
	}
	if !opts.Keep {
		defer os.RemoveAll(tmpDir)
	}

	// MkdirTemp already created tmpDir, so CreateVenv must be allowed to
	// replace it.
	if err := venv.CreateVenv(ctx, d.Installer, tmpDir, opts.Python, true, false); err != nil {
		return fmt.Errorf("create scratch venv: %w", err)
	}

	if err := d.Installer.Run(ctx, "pip", "install", "--python", tmpDir, opts.Spec); err != nil {
		return fmt.Errorf("install %s into scratch venv: %w", opts.Spec, err)
	}

	name := requirementNameOf(opts.Spec)
	binary := opts.Binary
	if binary == "" {
		binary, err = detectSingleLauncher(tmpDir, name)
		if err != nil {
			return err
		}
	}

	return execBinary(ctx, filepath.Join(tmpDir, "bin", binary), opts.Args)
}

func detectSingleLauncher(venvDir, name string) (string, error) {
	sitePackages := filepath.Join(venvDir, "lib")
	dir, ok := entrypoints.FindDistInfoDir(sitePackages, name)
	if !ok {
		return name, nil
	}
	scripts, err := entrypoints.ConsoleScripts(dir)
	if err != nil || len(scripts) == 0 {
		return name, nil
	}
	if len(scripts) > 1 {
		return "", fmt.Errorf("%s has multiple launchers (%v); pass --binary to pick one", name, scripts)
	}
	return scripts[0], nil
}
