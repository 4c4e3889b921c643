// yuzu-updater - check GitHub for the latest yuzu mainline build and fetch it
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/yuzu-updater

// Package cli provides the Cobra commands of yuzu-updater: the root command,
// which checks for a newer release and downloads it, plus check and version.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	apperrors "github.com/ariel-frischer/yuzu-updater/internal/errors"
	"github.com/spf13/cobra"
)

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	configPath  string
	downloadDir string
	updateType  string
	debug       bool
	noProgress  bool
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "yuzu-updater",
		Short: "Download the latest yuzu mainline build",
		Long: `yuzu-updater checks GitHub for the latest yuzu mainline release and downloads
its artifact unless the download directory already holds the same build.

Source: https://github.com/ariel-frischer/yuzu-updater`,
		Example: `  # Check and download into ~/Downloads
  yuzu-updater

  # Download the standalone archive into another directory
  yuzu-updater -t standalone -o ~/Applications

  # Only report whether an update is available
  yuzu-updater check --plain`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUpdate(cmd, opts)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Path to a JSON or YAML config file")
	flags.StringVarP(&opts.downloadDir, "download-dir", "o", "", "Directory holding downloaded builds (default ~/Downloads)")
	flags.StringVarP(&opts.updateType, "update-type", "t", "", "Artifact type: appimage or standalone (default appimage)")
	flags.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	flags.BoolVar(&opts.noProgress, "no-progress", false, "Disable the spinner and download progress bar")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return apperrors.NewArgumentErrorWithUsage(err.Error(), cmd.UseLine())
	})

	rootCmd.AddCommand(newCheckCmd(opts))
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newDoctorCmd(opts))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the root command with a context cancelled on SIGINT or SIGTERM.
// Errors are printed to stderr before being returned for ExitCode.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := NewRootCmd()
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		apperrors.FprintError(cmd.ErrOrStderr(), err)
	}
	return err
}
