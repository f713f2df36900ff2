package ops

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunTempRemovesVenvByDefault(t *testing.T) {
	d := newTestDeps(t)

	var capturedDir string
	origTmp := os.Getenv("TMPDIR")
	defer os.Setenv("TMPDIR", origTmp)
	os.Setenv("TMPDIR", t.TempDir())

	err := RunTemp(context.Background(), d, RunTempOptions{Spec: "black"})
	require.NoError(t, err)

	entries, _ := os.ReadDir(os.Getenv("TMPDIR"))
	for _, e := range entries {
		assert.NotContains(t, e.Name(), "pienv-run-", "scratch venv must be removed when Keep is false")
	}
	_ = capturedDir
}

func TestRunTempKeepsVenvWhenRequested(t *testing.T) {
	d := newTestDeps(t)

	origTmp := os.Getenv("TMPDIR")
	defer os.Setenv("TMPDIR", origTmp)
	tmpRoot := t.TempDir()
	os.Setenv("TMPDIR", tmpRoot)

	err := RunTemp(context.Background(), d, RunTempOptions{Spec: "black", Keep: true})
	require.NoError(t, err)

	entries, err := os.ReadDir(tmpRoot)
	require.NoError(t, err)
	found := false
	for _, e := range entries {
		if e.IsDir() {
			found = true
		}
	}
	assert.True(t, found, "scratch venv directory should remain when Keep is true")
}
