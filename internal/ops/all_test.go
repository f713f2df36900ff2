package ops

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpgradeAllUpgradesEveryPackage(t *testing.T) {
	d := newTestDeps(t)
	_, err := Install(context.Background(), d, InstallOptions{Name: "black"})
	require.NoError(t, err)
	_, err = Install(context.Background(), d, InstallOptions{Name: "ruff"})
	require.NoError(t, err)

	withFakeIndex(t, d, `{"releases": {"9.9.9": [{"yanked": false}], "10.0.0": [{"yanked": false}]}}`)

	succeeded, err := UpgradeAll(context.Background(), d, false)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"black", "ruff"}, succeeded)
}

func TestReinstallAllReinstallsEveryPackage(t *testing.T) {
	d := newTestDeps(t)
	_, err := Install(context.Background(), d, InstallOptions{Name: "black"})
	require.NoError(t, err)

	succeeded, err := ReinstallAll(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, []string{"black"}, succeeded)
}

func TestUninstallAllRemovesEveryPackage(t *testing.T) {
	d := newTestDeps(t)
	_, err := Install(context.Background(), d, InstallOptions{Name: "black"})
	require.NoError(t, err)
	_, err = Install(context.Background(), d, InstallOptions{Name: "ruff"})
	require.NoError(t, err)

	succeeded, err := UninstallAll(context.Background(), d, false)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"black", "ruff"}, succeeded)

	records, err := List(d)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestUpgradeAllNoPackagesInstalled(t *testing.T) {
	d := newTestDeps(t)
	succeeded, err := UpgradeAll(context.Background(), d, false)
	require.NoError(t, err)
	assert.Empty(t, succeeded)
}
