package cli

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"testing"
	"time"

	apperrors "github.com/ariel-frischer/yuzu-updater/internal/errors"
	"github.com/ariel-frischer/yuzu-updater/internal/update"
	"github.com/stretchr/testify/assert"
)

type timeoutErr struct{}

func (timeoutErr) Error() string { return "i/o timeout" }
func (timeoutErr) Timeout() bool { return true }

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err  error
		want int
	}{
		"nil": {err: nil, want: ExitSuccess},
		"plain error": {err: errors.New("boom"), want: ExitFailure},
		"no matching asset": {
			err:  fmt.Errorf("selecting: %w", update.ErrNoMatchingAsset),
			want: ExitNoMatchingAsset,
		},
		"no matching asset wrapped in CLI error": {
			err:  apperrors.NoMatchingAsset("yuzu-emu/yuzu-mainline", ".AppImage", update.ErrNoMatchingAsset),
			want: ExitNoMatchingAsset,
		},
		"context deadline": {
			err:  fmt.Errorf("downloading: %w", context.DeadlineExceeded),
			want: ExitTimeout,
		},
		"client timeout": {
			err:  &update.TransportError{URL: "http://x", Err: &url.Error{Op: "Get", URL: "http://x", Err: timeoutErr{}}},
			want: ExitTimeout,
		},
		"timeout CLI error": {
			err:  apperrors.TimeoutError("download", time.Second, context.DeadlineExceeded),
			want: ExitTimeout,
		},
		"argument error":      {err: apperrors.NewArgumentErrorWithUsage("bad flag", "yuzu-updater [flags]"), want: ExitInvalidArguments},
		"configuration error": {err: apperrors.ConfigInvalid(errors.New("bad")), want: ExitInvalidArguments},
		"runtime error":       {err: apperrors.DownloadFailed(errors.New("reset")), want: ExitFailure},
		"cancelled":           {err: context.Canceled, want: ExitFailure},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}
