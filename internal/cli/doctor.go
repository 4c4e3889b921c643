package cli

import (
	"context"
	"fmt"

	apperrors "github.com/ariel-frischer/yuzu-updater/internal/errors"
	"github.com/ariel-frischer/yuzu-updater/internal/health"
	"github.com/spf13/cobra"
)

func newDoctorCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the download directory and GitHub API access",
		Long: `Run health checks without downloading anything:
- the download directory is writable (or can be created)
- the latest release of the configured repository can be fetched`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}

			fetchLatest := func(ctx context.Context) (string, error) {
				release, err := s.checker.FetchLatestRelease(ctx, s.repo)
				if err != nil {
					return "", err
				}
				return release.TagName, nil
			}

			report := health.RunHealthChecks(cmd.Context(), s.cfg.DownloadDir, fetchLatest)
			fmt.Fprint(cmd.OutOrStdout(), health.FormatReport(report))

			if !report.Passed {
				return apperrors.NewPrerequisiteError("health checks failed")
			}
			return nil
		},
	}
}
