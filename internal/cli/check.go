package cli

import (
	"fmt"
	"io"

	"github.com/ariel-frischer/yuzu-updater/internal/update"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newCheckCmd(opts *rootOptions) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:     "check",
		Aliases: []string{"ck"},
		Short:   "Check if an update is available (ck)",
		Long:    "Compare the latest yuzu mainline release with the download directory without downloading anything.",
		Example: `  # Check for available updates
  yuzu-updater check

  # Plain output (for scripts)
  yuzu-updater ck --plain`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}

			if !plain {
				s.display.Start(fmt.Sprintf("Checking %s for the latest release...", s.repo))
			}
			check, err := s.updater.Check(cmd.Context())
			s.display.Stop()
			if err != nil {
				return s.checkError(err)
			}

			if plain {
				formatCheckPlain(cmd.OutOrStdout(), check)
			} else {
				formatCheckResult(cmd.OutOrStdout(), check)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Plain output without formatting")
	return cmd
}

// formatCheckPlain prints key: value lines for scripts.
func formatCheckPlain(w io.Writer, check *update.UpdateCheck) {
	fmt.Fprintf(w, "remote: %s\n", check.RemoteVersion)
	fmt.Fprintf(w, "local: %s\n", check.Local)
	fmt.Fprintf(w, "asset: %s\n", check.Asset.Name)
	fmt.Fprintf(w, "update_available: %t\n", check.UpdateAvailable())
}

func formatCheckResult(w io.Writer, check *update.UpdateCheck) {
	green := color.New(color.FgGreen).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	if !check.UpdateAvailable() {
		fmt.Fprintf(w, "%s Already on the latest build (%s)\n", green("✓"), check.RemoteVersion)
		return
	}

	fmt.Fprintf(w, "%s Update available: %s → %s\n", green("✓"), dim(check.Local), cyan(check.RemoteVersion))
	fmt.Fprintf(w, "%s\n", dim("  Run 'yuzu-updater' to download "+check.Asset.Name))
}
