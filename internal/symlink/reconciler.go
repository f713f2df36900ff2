// Package symlink reconciles launcher symlinks in a shared bin directory
// against the console scripts installed into a venv.
package symlink

import (
	"os"
	"path/filepath"
)

// Reconcile creates or verifies one symlink per name in binDir, pointing at
// venvDir/bin/<name>. It never aborts on a single failure: a partial install
// is more useful than a rollback, so every name is attempted independently
// and the result map records which succeeded.
//
// If allow is non-empty, names outside it are skipped entirely (used to
// restrict injected packages to an explicit --binary allow-list). An
// existing link that already points at venvDir/bin/<name> counts as
// success. Any other existing link is left alone unless force is set, in
// which case it is unlinked and recreated; a regular file at the link path
// is never replaced, even with force.
//
// No lock coordinates concurrent Reconcile calls across venvs that could
// race to claim the same launcher name; the race is accepted rather than
// introducing cross-venv locking.
func Reconcile(binDir, venvDir string, names []string, force bool, allow []string) map[string]bool {
	results := make(map[string]bool, len(names))
	allowSet := toSet(allow)

	for _, name := range names {
		if len(allowSet) > 0 && !allowSet[name] {
			continue
		}
		results[name] = reconcileOne(binDir, venvDir, name, force)
	}
	return results
}

func reconcileOne(binDir, venvDir, name string, force bool) bool {
	target := filepath.Join(venvDir, "bin", name)
	if _, err := os.Stat(target); err != nil {
		return false
	}

	link := filepath.Join(binDir, name)
	if info, err := os.Lstat(link); err == nil {
		if dest, err := os.Readlink(link); err == nil && dest == target {
			return true
		}
		if !force {
			return false
		}
		if info.Mode()&os.ModeSymlink == 0 {
			// Never clobber a regular file that happens to share the name.
			return false
		}
		if err := os.Remove(link); err != nil {
			return false
		}
	}

	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return false
	}
	return os.Symlink(target, link) == nil
}

// Check reports whether binDir/name is a symlink pointing into venvDir.
func Check(binDir, venvDir, name string) bool {
	link := filepath.Join(binDir, name)
	resolved, err := filepath.EvalSymlinks(link)
	if err != nil {
		return false
	}
	venvResolved, err := filepath.EvalSymlinks(venvDir)
	if err != nil {
		venvResolved = venvDir
	}
	rel, err := filepath.Rel(venvResolved, resolved)
	return err == nil && len(rel) > 0 && rel[0] != '.'
}

// Remove deletes binDir/name only if it is a symlink, never a regular file.
func Remove(binDir, name string) error {
	link := filepath.Join(binDir, name)
	info, err := os.Lstat(link)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if info.Mode()&os.ModeSymlink == 0 {
		return nil
	}
	return os.Remove(link)
}

func toSet(items []string) map[string]bool {
	if len(items) == 0 {
		return nil
	}
	set := make(map[string]bool, len(items))
	for _, i := range items {
		set[i] = true
	}
	return set
}
