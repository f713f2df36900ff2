package metadata

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultsInstallSpecToName(t *testing.T) {
	rec := New("ruff")
	assert.Equal(t, "ruff", rec.InstallSpec)
	assert.NotNil(t, rec.Scripts)
	assert.Empty(t, rec.Extras)
	assert.Empty(t, rec.Injected)
}

func TestFillDoesNotOverwriteExplicitValues(t *testing.T) {
	rec := New("ruff")
	rec.Python = "CPython 3.11.0"

	rec.Fill(&Interpreter{Implementation: "CPython", FullVersion: "3.12.4", StdlibPath: "/usr/lib/python3.12"})

	assert.Equal(t, "CPython 3.11.0", rec.Python, "Fill must not overwrite an already-set field")
	assert.Equal(t, "/usr/lib/python3.12", rec.PythonRaw)
}

func TestFillPopulatesEmptyFields(t *testing.T) {
	rec := New("ruff")
	rec.Fill(&Interpreter{Implementation: "CPython", FullVersion: "3.12.4", StdlibPath: "/usr/lib/python3.12"})

	assert.Equal(t, "CPython 3.12.4", rec.Python)
	assert.Equal(t, "/usr/lib/python3.12", rec.PythonRaw)
}

func TestFillNilInterpreterIsNoop(t *testing.T) {
	rec := New("ruff")
	rec.Fill(nil)
	assert.Empty(t, rec.Python)
}

func TestInvalidScripts(t *testing.T) {
	rec := New("black")
	rec.Scripts = map[string]bool{"black": true, "blackd": false}

	bad := rec.InvalidScripts()
	assert.Equal(t, []string{"blackd"}, bad)
}

func TestCheckScripts(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "bin"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bin", "black"), []byte("#!/bin/sh\n"), 0o755))

	rec := New("black")
	rec.Scripts = map[string]bool{"black": false, "blackd": true}

	changed := rec.CheckScripts(dir)
	assert.True(t, changed)
	assert.True(t, rec.Scripts["black"])
	assert.False(t, rec.Scripts["blackd"])
}

func TestCheckScriptsNoChange(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "bin"), 0o755))

	rec := New("black")
	rec.Scripts = map[string]bool{"black": false}

	changed := rec.CheckScripts(dir)
	assert.False(t, changed)
}

type fakeVersionIndex struct {
	latest string
	err    error
}

func (f *fakeVersionIndex) Latest(ctx context.Context, name string, stable bool, constraint string) (string, error) {
	return f.latest, f.err
}

func TestCheckForUpdateMarksOutdated(t *testing.T) {
	rec := New("ruff")
	rec.InstalledVersion = "0.4.0"

	rec.CheckForUpdate(context.Background(), &fakeVersionIndex{latest: "0.5.0"}, false, false)

	assert.Equal(t, "0.5.0", rec.AvailableVersion)
	assert.True(t, rec.Outdated)
}

func TestCheckForUpdateUpToDate(t *testing.T) {
	rec := New("ruff")
	rec.InstalledVersion = "0.5.0"

	rec.CheckForUpdate(context.Background(), &fakeVersionIndex{latest: "0.5.0"}, false, false)

	assert.False(t, rec.Outdated)
}

func TestCheckForUpdateSwallowsErrors(t *testing.T) {
	rec := New("ruff")
	rec.InstalledVersion = "0.5.0"
	rec.Outdated = true

	rec.CheckForUpdate(context.Background(), &fakeVersionIndex{err: assertErr("network down")}, false, false)

	assert.True(t, rec.Outdated, "a lookup failure must leave the previous status untouched")
	assert.Empty(t, rec.AvailableVersion)
}

type assertErr string

func (e assertErr) Error() string { return string(e) }
