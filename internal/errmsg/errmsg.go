// Package errmsg formats errors with actionable suggestions, type-switching
// on the structured error kinds the rest of pienv produces before falling
// back to substring classification for everything else.
package errmsg

import (
	"errors"
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/tsukumogami/pienv/internal/installer"
	"github.com/tsukumogami/pienv/internal/metadata"
	"github.com/tsukumogami/pienv/internal/pypi"
)

// ErrorContext carries optional details Format uses to tailor suggestions.
type ErrorContext struct {
	PackageName string
}

// Format returns err's message plus a "Possible causes"/"Suggestions"
// block when the error kind is recognized.
func Format(err error, ctx *ErrorContext) string {
	if err == nil {
		return ""
	}

	var resolverErr *pypi.ResolverError
	if errors.As(err, &resolverErr) {
		return formatResolverError(resolverErr, ctx)
	}

	var runErr *installer.RunError
	if errors.As(err, &runErr) {
		return formatRunError(runErr)
	}

	var formatErr *metadata.FormatError
	if errors.As(err, &formatErr) {
		return formatFormatError(formatErr)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return formatNetworkError(netErr)
	}

	msg := err.Error()
	switch {
	case isNetworkError(msg):
		return formatGenericNetworkError(msg)
	case isPermissionError(msg):
		return formatPermissionError(msg)
	default:
		return msg
	}
}

// Fprint writes Format's output to w, terminated with a newline.
func Fprint(w io.Writer, err error) {
	fmt.Fprintln(w, Format(err, nil))
}

func formatResolverError(err *pypi.ResolverError, ctx *ErrorContext) string {
	var sb strings.Builder
	sb.WriteString(err.Error())
	sb.WriteString("\n\nSuggestions:\n")
	if s := err.Suggestion(); s != "" {
		fmt.Fprintf(&sb, "  - %s\n", s)
	}
	if ctx != nil && ctx.PackageName != "" {
		fmt.Fprintf(&sb, "  - Run 'pienv check %s' once the package is reachable\n", ctx.PackageName)
	}
	return sb.String()
}

func formatRunError(err *installer.RunError) string {
	var sb strings.Builder
	sb.WriteString(err.Error())
	sb.WriteString("\n\nPossible causes:\n")
	sb.WriteString("  - uv is not installed or not on $PATH\n")
	sb.WriteString("  - the package spec is invalid or unreachable\n")
	sb.WriteString("\nSuggestions:\n")
	sb.WriteString("  - install uv (https://docs.astral.sh/uv/) and retry\n")
	sb.WriteString("  - check the install spec for typos\n")
	return sb.String()
}

func formatFormatError(err *metadata.FormatError) string {
	var sb strings.Builder
	sb.WriteString(err.Error())
	sb.WriteString("\n\nPossible causes:\n")
	sb.WriteString("  - the metadata file was written by an incompatible version\n")
	sb.WriteString("  - the file was corrupted or truncated\n")
	sb.WriteString("\nSuggestions:\n")
	sb.WriteString("  - reinstall the affected package\n")
	return sb.String()
}

func formatNetworkError(err net.Error) string {
	var sb strings.Builder
	sb.WriteString(err.Error())
	sb.WriteString("\n\nPossible causes:\n")
	if err.Timeout() {
		sb.WriteString("  - the request timed out\n")
	} else {
		sb.WriteString("  - network connectivity issue\n")
		sb.WriteString("  - DNS resolution failure\n")
	}
	sb.WriteString("\nSuggestions:\n")
	sb.WriteString("  - check your internet connection and retry\n")
	return sb.String()
}

func formatGenericNetworkError(msg string) string {
	var sb strings.Builder
	sb.WriteString(msg)
	sb.WriteString("\n\nPossible causes:\n")
	sb.WriteString("  - network connectivity issue\n")
	sb.WriteString("  - the index is temporarily unavailable\n")
	sb.WriteString("\nSuggestions:\n")
	sb.WriteString("  - check your internet connection and retry in a few minutes\n")
	return sb.String()
}

func formatPermissionError(msg string) string {
	var sb strings.Builder
	sb.WriteString(msg)
	sb.WriteString("\n\nPossible causes:\n")
	sb.WriteString("  - insufficient permissions on $PIENV_HOME\n")
	sb.WriteString("  - a directory is owned by a different user\n")
	sb.WriteString("\nSuggestions:\n")
	sb.WriteString("  - check ownership and permissions on your pienv home directory\n")
	return sb.String()
}

func isNetworkError(msg string) bool {
	lower := strings.ToLower(msg)
	return strings.Contains(lower, "connection refused") ||
		strings.Contains(lower, "connection reset") ||
		strings.Contains(lower, "no such host") ||
		strings.Contains(lower, "network is unreachable") ||
		strings.Contains(lower, "dial tcp") ||
		strings.Contains(lower, "timeout") ||
		strings.Contains(lower, "i/o timeout")
}

func isPermissionError(msg string) bool {
	lower := strings.ToLower(msg)
	return strings.Contains(lower, "permission denied") ||
		strings.Contains(lower, "access denied") ||
		strings.Contains(lower, "operation not permitted")
}
