package cmd

import (
	"errors"
	"strings"

	"github.com/Duratori/nvcheck/internal/installer"
	"github.com/Duratori/nvcheck/internal/release"
	"github.com/Duratori/nvcheck/tui"
)

// getErrorType categorizes errors for Sentry grouping.
func getErrorType(err error) string {
	var (
		netErr    *release.NetworkError
		parseErr  *release.ParseError
		instErr   *installer.InstallationError
		cancelErr *tui.CancellationError
	)

	switch {
	case errors.As(err, &instErr):
		return "installation_error"
	case errors.As(err, &netErr):
		return "network_error"
	case errors.As(err, &parseErr):
		return "parse_error"
	case errors.As(err, &cancelErr):
		return "user_cancelled"
	}

	errStr := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errStr, "connection") ||
		strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "dial") ||
		strings.Contains(errStr, "no route to host"):
		return "network_error"

	case strings.Contains(errStr, "permission denied") ||
		strings.Contains(errStr, "operation not permitted"):
		return "permission_error"

	case strings.Contains(errStr, "download"):
		return "download_error"

	case strings.Contains(errStr, "nvidia-smi"):
		return "probe_error"

	default:
		return "unknown_error"
	}
}
