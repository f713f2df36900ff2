// Package entrypoints reads the console_scripts declared by an installed
// distribution's entry_points.txt.
package entrypoints

import (
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"
)

const (
	entryPointsFile = "entry_points.txt"
	consoleScripts  = "console_scripts"
)

// ConsoleScripts returns the script names declared under [console_scripts]
// in <distInfoDir>/entry_points.txt. A missing file or missing section
// returns an empty slice, not an error, matching the original's
// console_scripts() short-circuit.
func ConsoleScripts(distInfoDir string) ([]string, error) {
	path := filepath.Join(distInfoDir, entryPointsFile)
	if _, err := os.Stat(path); err != nil {
		return nil, nil
	}

	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}

	section, err := cfg.GetSection(consoleScripts)
	if err != nil {
		return nil, nil
	}

	return section.KeyStrings(), nil
}

// FindDistInfoDir locates the <name>-<version>.dist-info directory for a
// package inside a venv's site-packages, falling back to a bare name match
// when the version component can't be determined up front.
func FindDistInfoDir(sitePackages, name string) (string, bool) {
	entries, err := os.ReadDir(sitePackages)
	if err != nil {
		return "", false
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		base := e.Name()
		if matchesDistInfo(base, name) {
			return filepath.Join(sitePackages, base), true
		}
	}
	return "", false
}

func matchesDistInfo(dirName, pkgName string) bool {
	const suffix = ".dist-info"
	if len(dirName) <= len(suffix) || dirName[len(dirName)-len(suffix):] != suffix {
		return false
	}
	stem := dirName[:len(dirName)-len(suffix)]
	for i := 0; i < len(stem); i++ {
		if stem[i] == '-' {
			return normalizeName(stem[:i]) == normalizeName(pkgName)
		}
	}
	return normalizeName(stem) == normalizeName(pkgName)
}

// normalizeName applies PEP 503 normalization (case-fold, runs of -_. collapse
// to a single -) so dist-info directory names compare equal to requirement
// names regardless of the separator PyPI chose when building the wheel.
func normalizeName(name string) string {
	out := make([]byte, 0, len(name))
	lastWasSep := false
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '-' || c == '_' || c == '.':
			if !lastWasSep {
				out = append(out, '-')
			}
			lastWasSep = true
		default:
			if c >= 'A' && c <= 'Z' {
				c = c - 'A' + 'a'
			}
			out = append(out, c)
			lastWasSep = false
		}
	}
	return string(out)
}
