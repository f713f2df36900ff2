package ops

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsukumogami/pienv/internal/metadata"
)

func TestCreateWritesMetadataWithEmptyInstallSpec(t *testing.T) {
	d := newTestDeps(t)

	msg, err := Create(context.Background(), d, CreateOptions{Name: "scratch"})
	require.NoError(t, err)
	assert.Contains(t, msg, "created venv scratch")

	_, err = os.Stat(d.Config.VenvDir("scratch"))
	assert.NoError(t, err)

	rec, err := metadata.Load(d.Config.MetadataFile("scratch"))
	require.NoError(t, err)
	assert.Equal(t, "", rec.InstallSpec)
	assert.Equal(t, "scratch", rec.Name)
}

func TestCreateRequiresName(t *testing.T) {
	d := newTestDeps(t)
	_, err := Create(context.Background(), d, CreateOptions{})
	assert.Error(t, err)
}
