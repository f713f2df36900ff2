package localspec

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsukumogami/pienv/internal/installer"
)

func TestResolveSimpleRequirementFastPath(t *testing.T) {
	d := &installer.Driver{BinaryPath: "/nonexistent/uv-should-not-be-invoked"}

	resolved, name, err := Resolve(context.Background(), d, "black==24.4.2")
	require.NoError(t, err)
	assert.Equal(t, "black==24.4.2", resolved)
	assert.Equal(t, "black", name)
}

func TestResolveSimpleRequirementWithExtras(t *testing.T) {
	d := &installer.Driver{BinaryPath: "/nonexistent/uv-should-not-be-invoked"}

	resolved, name, err := Resolve(context.Background(), d, "black[jupyter]>=24.0")
	require.NoError(t, err)
	assert.Equal(t, "black[jupyter]>=24.0", resolved)
	assert.Equal(t, "black", name)
}

func TestResolveBareNameFastPath(t *testing.T) {
	d := &installer.Driver{BinaryPath: "/nonexistent/uv-should-not-be-invoked"}

	resolved, name, err := Resolve(context.Background(), d, "ruff")
	require.NoError(t, err)
	assert.Equal(t, "ruff", resolved)
	assert.Equal(t, "ruff", name)
}

func TestResolveLocalPathUsesDryRunReport(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake uv script is a posix shell script")
	}
	dir := t.TempDir()
	fakeUV := filepath.Join(dir, "uv")
	script := "#!/bin/sh\n" +
		`for i in "$@"; do` + "\n" +
		`  if [ "$prev" = "--report" ]; then report="$i"; fi` + "\n" +
		`  prev="$i"` + "\n" +
		"done\n" +
		`cat > "$report" <<'EOF'` + "\n" +
		`{"install": [{"metadata": {"name": "mypkg"}, "download_info": {"url": "file:///tmp/mypkg"}}]}` + "\n" +
		"EOF\n"
	require.NoError(t, os.WriteFile(fakeUV, []byte(script), 0o755))

	d := &installer.Driver{BinaryPath: fakeUV}
	resolved, name, err := Resolve(context.Background(), d, "./local/mypkg")
	require.NoError(t, err)
	assert.Equal(t, "mypkg @ file:///tmp/mypkg", resolved)
	assert.Equal(t, "mypkg", name)
}

func TestResolveDryRunFailurePropagates(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake uv script is a posix shell script")
	}
	dir := t.TempDir()
	fakeUV := filepath.Join(dir, "uv")
	require.NoError(t, os.WriteFile(fakeUV, []byte("#!/bin/sh\nexit 1\n"), 0o755))

	d := &installer.Driver{BinaryPath: fakeUV}
	_, _, err := Resolve(context.Background(), d, "./broken/pkg")
	assert.Error(t, err)
}

func TestRequirementName(t *testing.T) {
	assert.Equal(t, "black", requirementName("black==24.4.2"))
	assert.Equal(t, "black", requirementName("black[jupyter]"))
	assert.Equal(t, "ruff", requirementName("ruff"))
}
