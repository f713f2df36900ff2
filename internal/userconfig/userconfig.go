// Package userconfig persists the one-shot setup state pienv tracks across
// invocations: whether shell PATH integration has been confirmed, and
// which shell that check last ran against.
package userconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Setup is the durable record of pienv's one-shot shell setup state.
type Setup struct {
	EnsurePathConfirmed bool   `toml:"ensure_path_confirmed"`
	LastCheckedShell    string `toml:"last_checked_shell"`
}

// Load reads the setup metadata file at path. A missing file returns a
// zero-value Setup, not an error, since no setup state having been
// recorded yet is a valid starting state.
func Load(path string) (*Setup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Setup{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var s Setup
	if _, err := toml.Decode(string(data), &s); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &s, nil
}

// Save writes s to path atomically: encode to a temp file in the same
// directory, then rename into place, so a crash mid-write never leaves a
// truncated config behind.
func Save(path string, s *Setup) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".config-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp config file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := toml.NewEncoder(tmp).Encode(s); err != nil {
		tmp.Close()
		return fmt.Errorf("encode config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp config file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o600); err != nil {
		return fmt.Errorf("chmod temp config file: %w", err)
	}

	return os.Rename(tmpPath, path)
}
