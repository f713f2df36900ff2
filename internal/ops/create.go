package ops

import (
	"context"
	"fmt"

	"github.com/tsukumogami/pienv/internal/metadata"
	"github.com/tsukumogami/pienv/internal/venv"
)

// CreateOptions describes creating a bare venv with no package installed,
// for callers that want to manage installs into it themselves.
type CreateOptions struct {
	Name   string
	Python string
	Force  bool
	Seed   bool
}

// Create makes a bare virtual environment and writes its metadata with an
// empty install spec, matching the original's convention that a bare
// create's install spec is empty while the interpreter fields are still
// filled in. Without this, the env would have no metadata at all and would
// be indistinguishable from an orphan.
func Create(ctx context.Context, d *Deps, opts CreateOptions) (string, error) {
	if opts.Name == "" {
		return "", fmt.Errorf("create: name is required")
	}
	venvDir := d.Config.VenvDir(opts.Name)
	if err := venv.CreateVenv(ctx, d.Installer, venvDir, opts.Python, opts.Force, opts.Seed); err != nil {
		return "", fmt.Errorf("create venv %s: %w", opts.Name, err)
	}

	interp, err := venv.Activate(ctx, d.Installer, venvDir)
	if err != nil {
		interp = &venv.Interpreter{}
	}

	rec := metadata.New(opts.Name)
	rec.Fill(interp)
	rec.InstallSpec = ""

	if err := saveRecord(d, opts.Name, rec); err != nil {
		return "", fmt.Errorf("save metadata for %s: %w", opts.Name, err)
	}

	return fmt.Sprintf("created venv %s at %s", opts.Name, venvDir), nil
}
