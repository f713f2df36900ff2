package pypi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortVersionsDescending(t *testing.T) {
	got := SortVersionsDescending([]string{"1.0.0", "2.0.0", "1.5.0"})
	assert.Equal(t, []string{"2.0.0", "1.5.0", "1.0.0"}, got)
}

func TestSortVersionsDescendingNeverLexicographic(t *testing.T) {
	// Lexicographic order would rank "1.9.0" above "1.10.0"; semver must not.
	got := SortVersionsDescending([]string{"1.9.0", "1.10.0", "1.2.0"})
	assert.Equal(t, []string{"1.10.0", "1.9.0", "1.2.0"}, got)
}

func TestSortVersionsDescendingUnparsableSortsLast(t *testing.T) {
	got := SortVersionsDescending([]string{"not-a-version", "1.0.0", "also-bad"})
	assert.Equal(t, []string{"1.0.0", "not-a-version", "also-bad"}, got)
}

func TestIsSortedDescending(t *testing.T) {
	assert.True(t, IsSortedDescending([]string{"2.0.0", "1.5.0", "1.0.0"}))
	assert.False(t, IsSortedDescending([]string{"1.0.0", "2.0.0"}))
}

func TestIsPreRelease(t *testing.T) {
	assert.True(t, isPreRelease("1.0.0-alpha.1"))
	assert.False(t, isPreRelease("1.0.0"))
	assert.False(t, isPreRelease("not-a-version"))
}

func TestSatisfiesConstraint(t *testing.T) {
	assert.True(t, satisfiesConstraint("1.5.0", ">=1.0,<2.0"))
	assert.False(t, satisfiesConstraint("2.5.0", ">=1.0,<2.0"))
	assert.True(t, satisfiesConstraint("anything", ""))
}
