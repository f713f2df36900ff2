package pypi

import (
	"sort"

	"github.com/Masterminds/semver/v3"
)

// SortVersionsDescending sorts version strings newest-first using
// Masterminds/semver comparison. Versions that fail to parse sort last and
// preserve their relative order, rather than being silently dropped.
//
// This always compares semantically, never lexicographically — the
// original tool's self-version-check path had a lexicographic bug this
// fixes deliberately.
func SortVersionsDescending(versions []string) []string {
	type parsed struct {
		raw string
		v   *semver.Version
	}
	items := make([]parsed, len(versions))
	for i, raw := range versions {
		v, err := semver.NewVersion(raw)
		if err != nil {
			items[i] = parsed{raw: raw}
			continue
		}
		items[i] = parsed{raw: raw, v: v}
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.v == nil {
			return false
		}
		if b.v == nil {
			return true
		}
		return a.v.GreaterThan(b.v)
	})

	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.raw
	}
	return out
}

// IsSortedDescending reports whether versions is already sorted newest-first.
func IsSortedDescending(versions []string) bool {
	for i := 1; i < len(versions); i++ {
		a, errA := semver.NewVersion(versions[i-1])
		b, errB := semver.NewVersion(versions[i])
		if errA != nil || errB != nil {
			continue
		}
		if a.LessThan(b) {
			return false
		}
	}
	return true
}

// isPreRelease reports whether v has a semver pre-release component.
func isPreRelease(raw string) bool {
	v, err := semver.NewVersion(raw)
	if err != nil {
		return false
	}
	return v.Prerelease() != ""
}

// satisfiesConstraint reports whether raw satisfies the given semver
// constraint string (e.g. ">=1.0,<2.0"). An empty constraint always matches.
func satisfiesConstraint(raw, constraint string) bool {
	if constraint == "" {
		return true
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return true
	}
	v, err := semver.NewVersion(raw)
	if err != nil {
		return false
	}
	return c.Check(v)
}
