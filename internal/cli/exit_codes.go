package cli

import (
	"context"
	"errors"

	apperrors "github.com/ariel-frischer/yuzu-updater/internal/errors"
	"github.com/ariel-frischer/yuzu-updater/internal/update"
)

// Exit codes for the yuzu-updater CLI
const (
	// ExitSuccess covers both "downloaded" and "already up to date"
	ExitSuccess = 0

	// ExitFailure indicates a network, parse or filesystem failure
	ExitFailure = 1

	// ExitNoMatchingAsset indicates the latest release has no artifact of the requested type
	ExitNoMatchingAsset = 2

	// ExitInvalidArguments indicates invalid flags or configuration
	ExitInvalidArguments = 3

	// ExitTimeout indicates the release check or download timed out
	ExitTimeout = 5
)

// ExitCode returns the process exit code for an error returned by Execute.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if errors.Is(err, update.ErrNoMatchingAsset) {
		return ExitNoMatchingAsset
	}
	if isTimeout(err) {
		return ExitTimeout
	}
	if cliErr := apperrors.AsCLIError(err); cliErr != nil {
		switch cliErr.Category {
		case apperrors.Argument, apperrors.Configuration:
			return ExitInvalidArguments
		}
	}
	return ExitFailure
}

// isTimeout reports whether err is a context deadline or a network timeout.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
