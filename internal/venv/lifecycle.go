// Package venv drives uv to create, activate, and remove Python virtual
// environments, and to inspect what's installed inside one.
package venv

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/tsukumogami/pienv/internal/installer"
	"github.com/tsukumogami/pienv/internal/metadata"
)

// CreateVenv creates a new virtual environment at path. If force is set, an
// existing directory at path is removed first; otherwise CreateVenv refuses
// with an error, matching the original's "refuse to overwrite" message.
func CreateVenv(ctx context.Context, d *installer.Driver, path, python string, force, withSeed bool) error {
	if _, err := os.Stat(path); err == nil {
		if !force {
			return fmt.Errorf("%s already exists; pass --force to recreate it", path)
		}
		if err := os.RemoveAll(path); err != nil {
			return fmt.Errorf("remove existing venv at %s: %w", path, err)
		}
	}

	args := []string{"venv", path}
	if python != "" {
		args = append(args, "--python", python)
	}
	if withSeed {
		args = append(args, "--seed")
	}
	return d.Run(ctx, args...)
}

// RemoveVenv deletes a venv directory recursively.
func RemoveVenv(path string) error {
	return os.RemoveAll(path)
}

// Interpreter is an alias for metadata.Interpreter, so the value Activate
// returns can be passed straight to metadata.Record.Fill.
type Interpreter = metadata.Interpreter

var pythonVersionLine = regexp.MustCompile(`Python (\S+)`)

// Activate inspects the venv at path and returns interpreter details,
// setting VIRTUAL_ENV in the current process environment — the one place
// pienv allows global mutable state, since uv itself reads it to decide
// which environment to target for unqualified operations.
func Activate(ctx context.Context, d *installer.Driver, path string) (*Interpreter, error) {
	if err := os.Setenv("VIRTUAL_ENV", path); err != nil {
		return nil, fmt.Errorf("set VIRTUAL_ENV: %w", err)
	}

	stdout, _, err := d.RunCaptured(ctx, "run", "--python", path, "python", "--version")
	if err != nil {
		return &Interpreter{}, nil
	}

	version := ""
	if m := pythonVersionLine.FindStringSubmatch(stdout); m != nil {
		version = m[1]
	}
	return &Interpreter{Implementation: "CPython", FullVersion: version, StdlibPath: path}, nil
}

// Deactivate clears VIRTUAL_ENV.
func Deactivate() {
	os.Unsetenv("VIRTUAL_ENV")
}

// SetupEnvironFromRequirement sets VIRTUAL_ENV to venvDir. It takes an
// already-resolved venv directory: it does not parse a requirement, derive
// the directory from one, or check that the directory exists.
func SetupEnvironFromRequirement(venvDir string) error {
	return os.Setenv("VIRTUAL_ENV", venvDir)
}

// InstalledVersion shells out to uv to ask what version of name is
// installed in the venv at envPath, grounded on the original's
// uv_get_installed_version.
func InstalledVersion(ctx context.Context, d *installer.Driver, envPath, name string) (string, error) {
	stdout, _, err := d.RunCaptured(ctx, "pip", "show", "--python", envPath, name)
	if err != nil {
		return "", err
	}
	for _, line := range strings.Split(stdout, "\n") {
		if strings.HasPrefix(line, "Version:") {
			return strings.TrimSpace(strings.TrimPrefix(line, "Version:")), nil
		}
	}
	return "", fmt.Errorf("could not determine installed version of %s", name)
}
