package ops

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tsukumogami/pienv/internal/config"
	"github.com/tsukumogami/pienv/internal/installer"
	"github.com/tsukumogami/pienv/internal/log"
)

// fakeUVScript is a stand-in for the real uv binary: it understands just
// enough of `venv`, `pip install`, `pip uninstall`, `pip show`, and
// `run ... python --version` to drive the operation engine through a full
// lifecycle without touching the network or a real Python toolchain.
const fakeUVScript = `#!/bin/sh
cmd="$1"; shift
case "$cmd" in
  venv)
    path="$1"; shift
    mkdir -p "$path/bin"
    exit 0
    ;;
  pip)
    sub="$1"; shift
    pypath=""
    last=""
    prev=""
    for a in "$@"; do
      if [ "$prev" = "--python" ]; then pypath="$a"; fi
      prev="$a"
      last="$a"
    done
    case "$sub" in
      install)
        name=$(echo "$last" | sed -E 's/[^A-Za-z0-9._-].*$//')
        if [ "$name" = "failpkg" ]; then
          exit 1
        fi
        mkdir -p "$pypath/bin"
        printf '#!/bin/sh\nexit 0\n' > "$pypath/bin/$name"
        chmod +x "$pypath/bin/$name"
        exit 0
        ;;
      uninstall)
        exit 0
        ;;
      show)
        echo "Name: $last"
        echo "Version: 9.9.9"
        exit 0
        ;;
    esac
    exit 0
    ;;
  run)
    echo "Python 3.12.0"
    exit 0
    ;;
esac
exit 0
`

func newFakeDriver(t *testing.T) *installer.Driver {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake uv script is a posix shell script")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "uv")
	require.NoError(t, os.WriteFile(path, []byte(fakeUVScript), 0o755))
	return &installer.Driver{BinaryPath: path}
}

func newTestDeps(t *testing.T) *Deps {
	t.Helper()
	cfg := config.NewTestConfig(t.TempDir())
	require.NoError(t, cfg.EnsureDirectories())
	return &Deps{
		Config:    cfg,
		Installer: newFakeDriver(t),
		Log:       log.NewNoop(),
	}
}
