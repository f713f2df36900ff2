package metadata

import (
	"context"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
)

// Record is the durable state tracked for one managed virtual environment.
// Field order matters: it is preserved across encode/decode round-trips so
// that hand-inspecting an old metadata file with a debugger stays stable.
type Record struct {
	Name             string          `msgpack:"name"`
	Scripts          map[string]bool `msgpack:"scripts"`
	InstallSpec      string          `msgpack:"install_spec"`
	Extras           []string        `msgpack:"extras"`
	RequestedVersion string          `msgpack:"requested_version"`
	InstalledVersion string          `msgpack:"installed_version"`
	Python           string          `msgpack:"python"`
	PythonRaw        string          `msgpack:"python_raw"`
	Injected         []string        `msgpack:"injected"`
	Editable         bool            `msgpack:"editable"`
	AvailableVersion string          `msgpack:"available_version"`
	Outdated         bool            `msgpack:"outdated"`
}

// Interpreter describes the Python environment a venv was created with,
// enough for Fill to populate the display fields without re-invoking uv.
type Interpreter struct {
	Implementation string // e.g. "CPython"
	FullVersion    string // e.g. "3.12.4"
	StdlibPath     string
}

// New returns a Record with install_spec defaulted to name, matching the
// original's Metadata::new.
func New(name string) *Record {
	return &Record{
		Name:        name,
		Scripts:     map[string]bool{},
		InstallSpec: name,
		Extras:      []string{},
		Injected:    []string{},
	}
}

// Fill populates derived fields that are cheap to recompute: InstallSpec
// defaults to Name, and the python/python_raw fields are filled only if
// still empty (never overwrite a value a caller already set explicitly).
func (r *Record) Fill(interp *Interpreter) {
	if r.InstallSpec == "" {
		r.InstallSpec = r.Name
	}
	if interp == nil {
		return
	}
	if r.Python == "" && interp.Implementation != "" {
		r.Python = interp.Implementation + " " + interp.FullVersion
	}
	if r.PythonRaw == "" {
		r.PythonRaw = interp.StdlibPath
	}
}

// InvalidScripts returns the names of console scripts that this record
// believes exist but failed their last on-disk check.
func (r *Record) InvalidScripts() []string {
	var bad []string
	for name, ok := range r.Scripts {
		if !ok {
			bad = append(bad, name)
		}
	}
	return bad
}

// CheckScripts re-verifies that every recorded script still resolves to an
// executable under venvDir/bin, updating r.Scripts in place and returning
// whether anything changed.
func (r *Record) CheckScripts(venvDir string) bool {
	changed := false
	binDir := filepath.Join(venvDir, "bin")
	for name := range r.Scripts {
		_, err := os.Stat(filepath.Join(binDir, name))
		ok := err == nil
		if r.Scripts[name] != ok {
			r.Scripts[name] = ok
			changed = true
		}
	}
	return changed
}

// VersionIndex is the subset of internal/pypi.Client that CheckForUpdate
// needs, kept as an interface here to avoid metadata depending on pypi.
type VersionIndex interface {
	Latest(ctx context.Context, name string, stable bool, constraint string) (string, error)
}

// CheckForUpdate queries idx for the latest version satisfying the
// requested constraint (unless ignoreConstraint is set, or no constraint
// was requested) and records AvailableVersion/Outdated. Errors from idx are
// swallowed: an update check that can't reach the network leaves the
// record's previous outdated status untouched, since `check` is
// best-effort.
func (r *Record) CheckForUpdate(ctx context.Context, idx VersionIndex, allowPrereleases, ignoreConstraint bool) {
	constraint := ""
	if !ignoreConstraint {
		constraint = r.RequestedVersion
	}

	latest, err := idx.Latest(ctx, r.Name, !allowPrereleases, constraint)
	if err != nil || latest == "" {
		return
	}
	r.AvailableVersion = latest

	installed, err := semver.NewVersion(r.InstalledVersion)
	if err != nil {
		r.Outdated = true
		return
	}
	available, err := semver.NewVersion(latest)
	if err != nil {
		r.Outdated = false
		return
	}
	r.Outdated = available.GreaterThan(installed)
}
