package ops

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsukumogami/pienv/internal/metadata"
	"github.com/tsukumogami/pienv/internal/pypi"
)

func withFakeIndex(t *testing.T, d *Deps, body string) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	d.Index = pypi.New(time.Second, pypi.WithRegistryURL(srv.URL))
}

func TestUpgradeInstallsNewerVersion(t *testing.T) {
	d := newTestDeps(t)
	_, err := Install(context.Background(), d, InstallOptions{Name: "ruff"})
	require.NoError(t, err)

	withFakeIndex(t, d, `{"releases": {"9.9.9": [{"yanked": false}], "10.0.0": [{"yanked": false}]}}`)

	msg, err := Upgrade(context.Background(), d, UpgradeOptions{Name: "ruff"})
	require.NoError(t, err)
	assert.Contains(t, msg, "moved from 9.9.9 to 10.0.0")

	rec, err := metadata.Load(d.Config.MetadataFile("ruff"))
	require.NoError(t, err)
	assert.Equal(t, "10.0.0", rec.InstalledVersion)
}

func TestUpgradeAlreadyUpToDate(t *testing.T) {
	d := newTestDeps(t)
	_, err := Install(context.Background(), d, InstallOptions{Name: "ruff"})
	require.NoError(t, err)

	withFakeIndex(t, d, `{"releases": {"9.9.9": [{"yanked": false}]}}`)

	msg, err := Upgrade(context.Background(), d, UpgradeOptions{Name: "ruff"})
	require.NoError(t, err)
	assert.Contains(t, msg, "already up to date")
}

func TestUpgradeNotInstalled(t *testing.T) {
	d := newTestDeps(t)
	_, err := Upgrade(context.Background(), d, UpgradeOptions{Name: "missing"})
	assert.Error(t, err)
}

func TestUpgradePreservesExtras(t *testing.T) {
	d := newTestDeps(t)
	_, err := Install(context.Background(), d, InstallOptions{Name: "ruff", Extras: []string{"d"}})
	require.NoError(t, err)

	withFakeIndex(t, d, `{"releases": {"9.9.9": [{"yanked": false}], "10.0.0": [{"yanked": false}]}}`)

	_, err = Upgrade(context.Background(), d, UpgradeOptions{Name: "ruff"})
	require.NoError(t, err)

	rec, err := metadata.Load(d.Config.MetadataFile("ruff"))
	require.NoError(t, err)
	assert.Equal(t, []string{"d"}, rec.Extras)
}

func TestUpgradeForceIgnoresPin(t *testing.T) {
	d := newTestDeps(t)
	_, err := Install(context.Background(), d, InstallOptions{Name: "ruff", RequestedVersion: "9.9.9"})
	require.NoError(t, err)

	withFakeIndex(t, d, `{"releases": {"9.9.9": [{"yanked": false}], "10.0.0": [{"yanked": false}]}}`)

	msg, err := Upgrade(context.Background(), d, UpgradeOptions{Name: "ruff", Force: true})
	require.NoError(t, err)
	assert.Contains(t, msg, "moved from 9.9.9 to 10.0.0")

	rec, err := metadata.Load(d.Config.MetadataFile("ruff"))
	require.NoError(t, err)
	assert.Equal(t, "10.0.0", rec.InstalledVersion)
	assert.Equal(t, "", rec.RequestedVersion)
}
