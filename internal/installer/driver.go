// Package installer wraps the uv binary that actually creates virtual
// environments and installs packages into them. pienv never reimplements
// dependency resolution; it drives uv as a subprocess and interprets its
// output and exit code.
package installer

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// binaryName is the executable pienv shells out to for every venv
// operation.
const binaryName = "uv"

// RunError wraps a failed invocation with enough context for errmsg to
// render an actionable message: which subcommand failed and what the
// process printed to stderr.
type RunError struct {
	Subcommand string
	Args       []string
	Stderr     string
	Err        error
}

func (e *RunError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s: %v: %s", e.Subcommand, e.Err, e.Stderr)
	}
	return fmt.Sprintf("%s: %v", e.Subcommand, e.Err)
}

func (e *RunError) Unwrap() error { return e.Err }

// Driver locates and invokes the uv binary.
type Driver struct {
	// BinaryPath overrides binary resolution, set by tests and by
	// PIENV_UV_BINARY.
	BinaryPath string
}

// New resolves the uv binary: an explicit override first, then a sibling of
// the running executable, then $PATH.
func New(override string) (*Driver, error) {
	if override != "" {
		return &Driver{BinaryPath: override}, nil
	}

	if exe, err := os.Executable(); err == nil {
		sibling := filepath.Join(filepath.Dir(exe), binaryName)
		if info, statErr := os.Stat(sibling); statErr == nil && !info.IsDir() {
			return &Driver{BinaryPath: sibling}, nil
		}
	}

	path, err := exec.LookPath(binaryName)
	if err != nil {
		return nil, fmt.Errorf("%s not found next to the pienv binary or on $PATH: %w", binaryName, err)
	}
	return &Driver{BinaryPath: path}, nil
}

// Run invokes the driver with args, streaming stdout/stderr to the calling
// process's own. Use for interactive-feeling operations like `uv venv`.
func (d *Driver) Run(ctx context.Context, args ...string) error {
	cmd := exec.CommandContext(ctx, d.BinaryPath, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return &RunError{Subcommand: subcommandOf(args), Args: args, Err: err}
	}
	return nil
}

// RunCaptured invokes the driver and captures stdout/stderr for callers
// that need to parse or report on the output, such as version lookups and
// dry-run installs.
func (d *Driver) RunCaptured(ctx context.Context, args ...string) (stdout, stderr string, err error) {
	var outBuf, errBuf bytes.Buffer
	cmd := exec.CommandContext(ctx, d.BinaryPath, args...)
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf
	runErr := cmd.Run()
	stdout, stderr = outBuf.String(), errBuf.String()
	if runErr != nil {
		return stdout, stderr, &RunError{Subcommand: subcommandOf(args), Args: args, Stderr: stderr, Err: runErr}
	}
	return stdout, stderr, nil
}

func subcommandOf(args []string) string {
	if len(args) == 0 {
		return binaryName
	}
	return binaryName + " " + args[0]
}
