package metadata

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// FormatShort renders "name==version", the one-line form used in bulk
// listings.
func (r *Record) FormatShort() string {
	return fmt.Sprintf("%s==%s", r.Name, r.InstalledVersion)
}

// FormatExtras renders the extras set as the original's format_extras does:
// comma-joined, single-quoted, sorted for determinism.
func (r *Record) FormatExtras() string {
	return formatQuotedSet(r.Extras)
}

// FormatInjected renders the injected set the same way as FormatExtras.
func (r *Record) FormatInjected() string {
	return formatQuotedSet(r.Injected)
}

func formatQuotedSet(items []string) string {
	if len(items) == 0 {
		return ""
	}
	sorted := append([]string(nil), items...)
	sort.Strings(sorted)
	quoted := make([]string, len(sorted))
	for i, s := range sorted {
		quoted[i] = "'" + s + "'"
	}
	return strings.Join(quoted, ", ")
}

// colorEnabled decides whether to emit ANSI color, honoring NO_COLOR and
// whether stdout is actually a terminal.
func colorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// FormatHuman renders a multi-line, human-oriented summary, colorized when
// writing to a terminal.
func (r *Record) FormatHuman() string {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	if !colorEnabled() {
		color.NoColor = true
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", bold.Sprint(r.Name), r.InstalledVersion)
	if r.Editable {
		fmt.Fprintf(&b, "  (editable)\n")
	}
	if r.Python != "" {
		fmt.Fprintf(&b, "  python: %s\n", r.Python)
	}
	if extras := r.FormatExtras(); extras != "" {
		fmt.Fprintf(&b, "  extras: %s\n", extras)
	}
	if injected := r.FormatInjected(); injected != "" {
		fmt.Fprintf(&b, "  injected: %s\n", injected)
	}
	if r.Outdated {
		fmt.Fprintf(&b, "  %s %s available\n", yellow.Sprint("outdated:"), r.AvailableVersion)
	} else if r.AvailableVersion != "" {
		fmt.Fprintf(&b, "  %s\n", green.Sprint("up to date"))
	}
	if bad := r.InvalidScripts(); len(bad) > 0 {
		fmt.Fprintf(&b, "  broken scripts: %s\n", strings.Join(bad, ", "))
	}
	return b.String()
}

// FormatDebug renders every field, for --debug troubleshooting output.
func (r *Record) FormatDebug() string {
	return fmt.Sprintf("%+v", *r)
}
