package cmd

import (
	"errors"
	"time"

	"github.com/Duratori/nvcheck/internal/version"
	"github.com/Duratori/nvcheck/tui"
	"github.com/getsentry/sentry-go"
	"github.com/spf13/cobra"
)

// CaptureCommandError reports a command failure to Sentry with enough tags
// to group by command and error category. User cancellations are not errors.
func CaptureCommandError(cmd *cobra.Command, err error) {
	if err == nil {
		return
	}

	var cancellationErr *tui.CancellationError
	if errors.As(err, &cancellationErr) {
		return
	}

	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("command", cmd.Name())
		scope.SetTag("version", version.BuildVersion)
		scope.SetTag("error_type", getErrorType(err))
		scope.SetLevel(getLevelForError(err))
		sentry.CaptureException(err)
	})

	// The flow exits via os.Exit on failure, which skips deferred flushes.
	sentry.Flush(2 * time.Second)
}

func getLevelForError(err error) sentry.Level {
	switch getErrorType(err) {
	case "network_error", "parse_error", "download_error":
		// Best-effort steps; their failure is expected operational noise.
		return sentry.LevelWarning
	default:
		return sentry.LevelError
	}
}
