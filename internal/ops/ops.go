// Package ops implements the operation engine: one function per lifecycle
// transition (Install, Uninstall, Upgrade, Reinstall, Inject, Uninject,
// Create, Run), each taking a plain options struct. Most return a
// human-readable message plus an error; Run and RunTemp return only an
// error, and CheckAll returns an Issues report. Step ordering within a
// single venv's operation is strictly sequential — create, install, save,
// reconcile symlinks, final save — and is never parallelized; concurrency
// is confined to the bulk variants in all.go, which fan out across venvs.
package ops

import (
	"context"
	"fmt"
	"strings"

	"github.com/tsukumogami/pienv/internal/config"
	"github.com/tsukumogami/pienv/internal/entrypoints"
	"github.com/tsukumogami/pienv/internal/installer"
	"github.com/tsukumogami/pienv/internal/log"
	"github.com/tsukumogami/pienv/internal/metadata"
	"github.com/tsukumogami/pienv/internal/pypi"
	"github.com/tsukumogami/pienv/internal/symlink"
)

// Deps bundles the collaborators every operation needs. cmd/pienv builds
// one Deps at startup and passes it to every operation; internal/ops never
// imports cobra, keeping the cobra-command-to-options-struct mapping
// confined to cmd/pienv.
type Deps struct {
	Config    *config.Config
	Installer *installer.Driver
	Index     *pypi.Client
	Log       log.Logger
}

func (d *Deps) logger() log.Logger {
	if d.Log != nil {
		return d.Log
	}
	return log.NewNoop()
}

// loadRecord reads a venv's metadata file, returning a fresh Record if none
// exists yet (the package has never been installed).
func loadRecord(d *Deps, name string) (*metadata.Record, error) {
	path := d.Config.MetadataFile(name)
	if !metadata.Exists(path) {
		return metadata.New(name), nil
	}
	return metadata.Load(path)
}

func saveRecord(d *Deps, name string, rec *metadata.Record) error {
	return metadata.Save(d.Config.MetadataFile(name), rec)
}

// scanScripts discovers console scripts for name inside its venv's
// site-packages and returns them as a Scripts map with every entry set to
// true (no presence check is made here; reconcileSymlinks records the real
// link state afterwards), falling back to []string{name} when the scan finds
// nothing, e.g. library-only installs or a sibling launcher name.
func scanScripts(venvDir, sitePackagesDir, name string) map[string]bool {
	scripts := map[string]bool{}

	if dir, ok := entrypoints.FindDistInfoDir(sitePackagesDir, name); ok {
		if names, err := entrypoints.ConsoleScripts(dir); err == nil && len(names) > 0 {
			for _, n := range names {
				scripts[n] = true
			}
			return scripts
		}
	}

	scripts[name] = true
	return scripts
}

// reconcileSymlinks wraps symlink.Reconcile with the error reporting
// lifecycle operations share: a per-name failure is surfaced as part of the
// returned message rather than as an error. Callers that must fail on it
// (Install without --force) check rec.InvalidScripts themselves.
func reconcileSymlinks(d *Deps, venvDir string, rec *metadata.Record, force bool, allow []string) string {
	names := make([]string, 0, len(rec.Scripts))
	for n := range rec.Scripts {
		names = append(names, n)
	}

	results := symlink.Reconcile(d.Config.BinDir, venvDir, names, force, allow)

	var failed []string
	for name, ok := range results {
		rec.Scripts[name] = ok
		if !ok {
			failed = append(failed, name)
		}
	}

	if len(failed) == 0 {
		return ""
	}
	return fmt.Sprintf(" (warning: could not link %v)", failed)
}

// ensureIndex lazily builds an *pypi.Client if one wasn't supplied, used by
// the operations that query the index (Upgrade, CheckAll).
func ensureIndex(d *Deps) *pypi.Client {
	if d.Index != nil {
		return d.Index
	}
	cache := pypi.NewCache(d.Config.CacheDir+"/pypi", config.GetVersionCacheTTL())
	d.Index = pypi.New(config.GetAPITimeout(), pypi.WithCache(cache))
	return d.Index
}

// contextWithTimeout derives a bounded context from ctx using the
// configured API timeout, for operations that reach out to the index.
func contextWithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, config.GetAPITimeout())
}

// parseSpec splits a PEP-508-style requirement into its bare name, a
// version pin if one follows "==", and its bracketed extras, the same
// shape uv's own parser accepts. A missing version or extras segment
// yields "" / nil respectively.
func parseSpec(spec string) (name, version string, extras []string) {
	name = spec
	if i := strings.IndexAny(spec, "[=<>~!"); i >= 0 {
		name = spec[:i]
	}
	if i := strings.Index(spec, "["); i >= 0 {
		if j := strings.Index(spec[i:], "]"); j >= 0 {
			extras = strings.Split(spec[i+1:i+j], ",")
		}
	}
	if i := strings.Index(spec, "=="); i >= 0 {
		version = spec[i+2:]
	}
	return name, version, extras
}
