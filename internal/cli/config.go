package cli

import (
	"errors"
	"fmt"

	"github.com/ariel-frischer/yuzu-updater/internal/config"
	apperrors "github.com/ariel-frischer/yuzu-updater/internal/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the yuzu-updater config file",
		Long: `Manage the user config file.

Configuration precedence (highest to lowest):
  1. Command-line flags
  2. Environment variables (YUZU_UPDATER_*)
  3. Config file (--config, or the user config file when present)
  4. Built-in defaults`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the user config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := config.UserConfigPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		path  string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented config file with the default values",
		Example: `  # Create ~/.config/yuzu-updater/config.yml
  yuzu-updater config init

  # Overwrite an existing file
  yuzu-updater config init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if path == "" {
				p, err := config.UserConfigPath()
				if err != nil {
					return apperrors.NewConfigError(err.Error())
				}
				path = p
			}

			green := color.New(color.FgGreen).SprintFunc()
			yellow := color.New(color.FgYellow).SprintFunc()
			out := cmd.OutOrStdout()

			err := config.WriteDefaultConfig(path, force)
			if errors.Is(err, config.ErrConfigExists) {
				fmt.Fprintf(out, "%s Config already exists at %s (use --force to overwrite)\n", yellow("⚠"), path)
				return nil
			}
			if err != nil {
				return apperrors.WrapWithMessage(err, apperrors.Configuration, "creating config file")
			}

			fmt.Fprintf(out, "%s Created %s\n", green("✓"), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Write to this path instead of the user config file")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config file")
	return cmd
}
