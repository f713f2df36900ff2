// Package localspec resolves an install spec that can't be parsed as a
// plain requirement — a local path, a VCS URL, or anything uv's own
// resolver understands better than a regex would — into a durable,
// replayable form: "<name> @ <url>". Extras given in such a spec are not
// carried into the resolved form.
package localspec

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/tsukumogami/pienv/internal/installer"
)

// simpleRequirement matches specs uv's own parser (PEP 508) would accept
// directly: "name", "name==1.0", "name[extra]>=1.0", etc. Anything that
// doesn't match this falls through to the dry-run resolution path.
var simpleRequirement = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*(\[[A-Za-z0-9,._-]+\])?([!=<>~]=?.+)?$`)

// dryRunReport is the subset of uv's `pip install --dry-run --report`
// output this resolver reads.
type dryRunReport struct {
	Install []struct {
		Metadata struct {
			Name string `json:"name"`
		} `json:"metadata"`
		DownloadInfo struct {
			URL string `json:"url"`
		} `json:"download_info"`
	} `json:"install"`
}

// Resolve turns spec into a canonical, replayable install spec. A plain
// requirement is returned unchanged (fast path); anything else is resolved
// via a dry installer run whose report yields the canonical name and a
// stable URL, formatted as "<name> @ <url>".
func Resolve(ctx context.Context, d *installer.Driver, spec string) (resolved string, name string, err error) {
	if simpleRequirement.MatchString(spec) {
		return spec, requirementName(spec), nil
	}

	reportPath, cleanup, err := tempReportPath()
	if err != nil {
		return "", "", fmt.Errorf("resolve %q: %w", spec, err)
	}
	defer cleanup()

	if err := d.Run(ctx, "pip", "install", "--dry-run", "--report", reportPath, spec); err != nil {
		return "", "", fmt.Errorf("resolve %q: %w", spec, err)
	}

	data, err := os.ReadFile(reportPath)
	if err != nil {
		return "", "", fmt.Errorf("read dry-run report for %q: %w", spec, err)
	}

	var report dryRunReport
	if err := json.Unmarshal(data, &report); err != nil {
		return "", "", fmt.Errorf("parse dry-run report for %q: %w", spec, err)
	}
	if len(report.Install) == 0 {
		return "", "", fmt.Errorf("dry-run report for %q named no installable package", spec)
	}

	pkg := report.Install[0]
	resolvedSpec := fmt.Sprintf("%s @ %s", pkg.Metadata.Name, pkg.DownloadInfo.URL)
	return resolvedSpec, pkg.Metadata.Name, nil
}

func requirementName(spec string) string {
	for i, c := range spec {
		if c == '[' || c == '=' || c == '<' || c == '>' || c == '~' || c == '!' {
			return spec[:i]
		}
	}
	return spec
}

func tempReportPath() (string, func(), error) {
	f, err := os.CreateTemp("", "pienv-dry-run-*.json")
	if err != nil {
		return "", func() {}, err
	}
	path := f.Name()
	f.Close()
	os.Remove(path)
	return path, func() { os.Remove(filepath.Clean(path)) }, nil
}
