package ops

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListReturnsInstalledPackages(t *testing.T) {
	d := newTestDeps(t)
	_, err := Install(context.Background(), d, InstallOptions{Name: "black"})
	require.NoError(t, err)
	_, err = Install(context.Background(), d, InstallOptions{Name: "ruff"})
	require.NoError(t, err)

	records, err := List(d)
	require.NoError(t, err)
	require.Len(t, records, 2)

	var names []string
	for _, r := range records {
		names = append(names, r.Name)
	}
	assert.ElementsMatch(t, []string{"black", "ruff"}, names)
}

func TestListEmptyWhenNothingInstalled(t *testing.T) {
	d := newTestDeps(t)
	records, err := List(d)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestListSkipsBareVenvsWithoutInstalledVersion(t *testing.T) {
	d := newTestDeps(t)
	_, err := Create(context.Background(), d, CreateOptions{Name: "scratch"})
	require.NoError(t, err)

	records, err := List(d)
	require.NoError(t, err)
	assert.Empty(t, records)
}
