package ops

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsukumogami/pienv/internal/metadata"
)

func TestInstallCreatesVenvAndMetadata(t *testing.T) {
	d := newTestDeps(t)

	msg, err := Install(context.Background(), d, InstallOptions{Name: "black"})
	require.NoError(t, err)
	assert.Contains(t, msg, "installed black")

	rec, err := metadata.Load(d.Config.MetadataFile("black"))
	require.NoError(t, err)
	assert.Equal(t, "9.9.9", rec.InstalledVersion)
	assert.Equal(t, "black", rec.InstallSpec)
}

func TestInstallLinksLauncher(t *testing.T) {
	d := newTestDeps(t)

	_, err := Install(context.Background(), d, InstallOptions{Name: "black"})
	require.NoError(t, err)

	link := filepath.Join(d.Config.BinDir, "black")
	info, err := os.Lstat(link)
	require.NoError(t, err)
	assert.True(t, info.Mode()&os.ModeSymlink != 0)
}

func TestInstallRefusesDuplicateWithoutForce(t *testing.T) {
	d := newTestDeps(t)

	_, err := Install(context.Background(), d, InstallOptions{Name: "black"})
	require.NoError(t, err)

	_, err = Install(context.Background(), d, InstallOptions{Name: "black"})
	assert.Error(t, err)
}

func TestInstallForceReplacesExisting(t *testing.T) {
	d := newTestDeps(t)

	_, err := Install(context.Background(), d, InstallOptions{Name: "black"})
	require.NoError(t, err)

	_, err = Install(context.Background(), d, InstallOptions{Name: "black", Force: true})
	assert.NoError(t, err)
}

func TestInstallRequiresName(t *testing.T) {
	d := newTestDeps(t)
	_, err := Install(context.Background(), d, InstallOptions{})
	assert.Error(t, err)
}

func TestInstallFailsAndRollsBackOnLauncherCollision(t *testing.T) {
	d := newTestDeps(t)
	require.NoError(t, os.MkdirAll(d.Config.BinDir, 0o755))
	collision := filepath.Join(d.Config.BinDir, "black")
	require.NoError(t, os.WriteFile(collision, []byte("not pienv"), 0o644))

	_, err := Install(context.Background(), d, InstallOptions{Name: "black"})
	assert.Error(t, err)

	_, statErr := os.Stat(d.Config.VenvDir("black"))
	assert.True(t, os.IsNotExist(statErr), "venv dir should be removed after rollback")
	assert.False(t, metadata.Exists(d.Config.MetadataFile("black")), "metadata should be removed after rollback")

	// the pre-existing file at the launcher path is untouched
	content, err := os.ReadFile(collision)
	require.NoError(t, err)
	assert.Equal(t, "not pienv", string(content))
}

func TestInstallRollsBackOnInstallerFailure(t *testing.T) {
	d := newTestDeps(t)

	_, err := Install(context.Background(), d, InstallOptions{Name: "failpkg"})
	assert.Error(t, err)

	_, statErr := os.Stat(d.Config.VenvDir("failpkg"))
	assert.True(t, os.IsNotExist(statErr), "venv dir should be removed after installer failure")
	assert.False(t, metadata.Exists(d.Config.MetadataFile("failpkg")))
}

func TestInstallWithExtras(t *testing.T) {
	d := newTestDeps(t)

	_, err := Install(context.Background(), d, InstallOptions{Name: "black", Extras: []string{"d", "jupyter"}})
	require.NoError(t, err)

	rec, err := metadata.Load(d.Config.MetadataFile("black"))
	require.NoError(t, err)
	assert.Equal(t, []string{"d", "jupyter"}, rec.Extras)
}
