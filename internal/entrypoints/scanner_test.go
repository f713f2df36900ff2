package entrypoints

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleScriptsParsesSection(t *testing.T) {
	dir := t.TempDir()
	content := "[console_scripts]\nblack = black:patched_main\nblackd = blackd:patched_main\n\n[other_section]\nfoo = bar\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, entryPointsFile), []byte(content), 0o644))

	scripts, err := ConsoleScripts(dir)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"black", "blackd"}, scripts)
}

func TestConsoleScriptsMissingFile(t *testing.T) {
	scripts, err := ConsoleScripts(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, scripts)
}

func TestConsoleScriptsMissingSection(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, entryPointsFile), []byte("[other_section]\nfoo = bar\n"), 0o644))

	scripts, err := ConsoleScripts(dir)
	require.NoError(t, err)
	assert.Empty(t, scripts)
}

func TestFindDistInfoDirExactMatch(t *testing.T) {
	sitePackages := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(sitePackages, "black-24.4.2.dist-info"), 0o755))

	dir, ok := FindDistInfoDir(sitePackages, "black")
	assert.True(t, ok)
	assert.Equal(t, filepath.Join(sitePackages, "black-24.4.2.dist-info"), dir)
}

func TestFindDistInfoDirNormalizesSeparators(t *testing.T) {
	sitePackages := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(sitePackages, "typing_extensions-4.12.0.dist-info"), 0o755))

	dir, ok := FindDistInfoDir(sitePackages, "typing-extensions")
	assert.True(t, ok)
	assert.Equal(t, filepath.Join(sitePackages, "typing_extensions-4.12.0.dist-info"), dir)
}

func TestFindDistInfoDirNotFound(t *testing.T) {
	sitePackages := t.TempDir()
	_, ok := FindDistInfoDir(sitePackages, "missing")
	assert.False(t, ok)
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, normalizeName("Typing-Extensions"), normalizeName("typing_extensions"))
	assert.Equal(t, "black", normalizeName("BLACK"))
}
