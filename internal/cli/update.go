package cli

import (
	"fmt"
	"io"

	"github.com/ariel-frischer/yuzu-updater/internal/update"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// runUpdate checks for a newer build and downloads it.
func runUpdate(cmd *cobra.Command, opts *rootOptions) error {
	s, err := newSession(cmd, opts)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	s.display.Start(fmt.Sprintf("Checking %s for the latest release...", s.repo))
	check, err := s.updater.Check(ctx)
	s.display.Stop()
	if err != nil {
		return s.checkError(err)
	}

	printVersions(out, check)

	if !check.UpdateAvailable() {
		green := color.New(color.FgGreen).SprintFunc()
		fmt.Fprintln(out, green("Versions match."))
		return nil
	}

	asset := check.Decision.Asset
	yellow := color.New(color.FgYellow).SprintFunc()
	fmt.Fprintf(out, "%s Beginning download of %s (%s)...\n",
		yellow("→"), asset.Name, humanize.Bytes(uint64(max(asset.Size, 0))))

	result, err := s.updater.Download(ctx, asset, s.onProgress())
	if err != nil {
		s.display.Fail("Download failed")
		return s.downloadError(err)
	}

	s.display.Succeed(fmt.Sprintf("%s (%s)", result.Path, humanize.Bytes(uint64(result.Bytes))))
	return nil
}

// printVersions prints the remote and local version tokens.
func printVersions(w io.Writer, check *update.UpdateCheck) {
	cyan := color.New(color.FgCyan).SprintFunc()

	fmt.Fprintf(w, "Latest commit: %s\n", cyan(check.RemoteVersion))
	if !check.Local.IsFound() {
		fmt.Fprintln(w, "No matching files found.")
		return
	}
	fmt.Fprintf(w, "Latest local commit: %s\n", cyan(check.Local.Token))
}
