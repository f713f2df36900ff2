package ops

import (
	"context"
	"fmt"
	"os"
)

// Issues aggregates the problems CheckAll finds across every managed venv:
// packages with an update available, and packages with at least one broken
// console-script symlink. Ported from the original's check.rs Issues
// struct, which this spec's distillation trimmed but which enriches the
// lifecycle without contradicting a stated Non-goal.
type Issues struct {
	Outdated      []OutdatedEntry
	BrokenScripts []ScriptEntry
}

// OutdatedEntry names one package and the version available for it.
type OutdatedEntry struct {
	Name      string
	Installed string
	Available string
}

// ScriptEntry names one package and the scripts it declares that no longer
// resolve.
type ScriptEntry struct {
	Name    string
	Scripts []string
}

// OutdatedCount returns how many packages have an update available.
func (i *Issues) OutdatedCount() int { return len(i.Outdated) }

// ScriptIssueCount returns how many packages have at least one broken
// script.
func (i *Issues) ScriptIssueCount() int { return len(i.BrokenScripts) }

// Total returns the combined issue count.
func (i *Issues) Total() int { return i.OutdatedCount() + i.ScriptIssueCount() }

// CheckAllOptions configures a sweep across every managed venv.
type CheckAllOptions struct {
	Prereleases       bool
	IgnoreConstraints bool
	RecheckScripts    bool
}

// CheckAll walks every venv under config.VenvsDir, refreshing its update
// status and script health, and returns an aggregate report. A single
// venv's unreadable metadata is recorded as a script issue (its scripts
// can't be trusted) rather than aborting the sweep.
func CheckAll(ctx context.Context, d *Deps, opts CheckAllOptions) (*Issues, error) {
	entries, err := os.ReadDir(d.Config.VenvsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return &Issues{}, nil
		}
		return nil, fmt.Errorf("list venvs: %w", err)
	}

	issues := &Issues{}
	idx := ensureIndex(d)

	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		name := e.Name()
		rec, err := loadRecord(d, name)
		if err != nil {
			issues.BrokenScripts = append(issues.BrokenScripts, ScriptEntry{Name: name, Scripts: []string{"<unreadable metadata>"}})
			continue
		}
		if rec.InstalledVersion == "" {
			continue
		}

		if opts.RecheckScripts {
			venvDir := d.Config.VenvDir(name)
			rec.CheckScripts(venvDir)
		}
		if bad := rec.InvalidScripts(); len(bad) > 0 {
			issues.BrokenScripts = append(issues.BrokenScripts, ScriptEntry{Name: name, Scripts: bad})
		}

		idxCtx, cancel := contextWithTimeout(ctx)
		rec.CheckForUpdate(idxCtx, idx, opts.Prereleases, opts.IgnoreConstraints)
		cancel()
		if rec.Outdated {
			issues.Outdated = append(issues.Outdated, OutdatedEntry{Name: name, Installed: rec.InstalledVersion, Available: rec.AvailableVersion})
		}

		_ = saveRecord(d, name, rec)
	}

	return issues, nil
}
