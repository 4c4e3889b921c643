package cli

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/ariel-frischer/yuzu-updater/internal/build"
	"github.com/ariel-frischer/yuzu-updater/internal/config"
	apperrors "github.com/ariel-frischer/yuzu-updater/internal/errors"
	"github.com/ariel-frischer/yuzu-updater/internal/progress"
	"github.com/ariel-frischer/yuzu-updater/internal/update"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// session is the state built from flags and configuration for one command run.
type session struct {
	cfg        *config.Configuration
	updateType update.UpdateType
	repo       update.Repository
	logger     *log.Logger
	checker    *update.Checker
	updater    *update.Updater
	display    *progress.Display
	progress   bool
}

// newSession validates flags, loads the configuration and wires the pipeline.
// Nothing here touches the network.
func newSession(cmd *cobra.Command, opts *rootOptions) (*session, error) {
	overrides := map[string]interface{}{}
	flags := cmd.Flags()

	if flags.Changed("update-type") {
		if _, err := update.ParseUpdateType(opts.updateType); err != nil {
			return nil, apperrors.InvalidUpdateType(opts.updateType, update.UpdateTypes())
		}
		overrides["update_type"] = opts.updateType
	}
	if flags.Changed("download-dir") {
		overrides["download_dir"] = opts.downloadDir
	}
	if opts.noProgress {
		overrides["show_progress"] = false
	}

	configPath := opts.configPath
	if configPath == "" {
		configPath = config.FindUserConfig()
	}

	cfg, err := config.Load(configPath, overrides)
	if err != nil {
		return nil, apperrors.ConfigInvalid(err)
	}

	updateType, err := update.ParseUpdateType(cfg.UpdateType)
	if err != nil {
		return nil, apperrors.InvalidUpdateType(cfg.UpdateType, update.UpdateTypes())
	}

	level := log.InfoLevel
	if opts.debug {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Prefix: "yuzu-updater",
		Level:  level,
	})

	userAgent := cfg.UserAgent
	if userAgent == update.DefaultUserAgent {
		userAgent = build.UserAgent(userAgent)
	}

	checker := update.NewChecker(cfg.HTTPTimeout())
	checker.SetAPIURL(cfg.APIURL)
	checker.SetUserAgent(userAgent)

	downloader := update.NewDownloader(&http.Client{})
	downloader.SetUserAgent(userAgent)

	repo := update.Repository{Owner: cfg.Owner, Name: cfg.Repo}
	updater := update.NewUpdater(checker, downloader, update.Options{
		Repository:      repo,
		UpdateType:      updateType,
		ProductPrefix:   cfg.ProductPrefix,
		DownloadDir:     cfg.DownloadDir,
		DownloadTimeout: cfg.DownloadTimeoutDuration(),
	}, logger)

	caps := progress.DetectTerminalCapabilities()
	if !cfg.ShowProgress {
		caps.IsTTY = false
	}

	logger.Debug("configuration loaded",
		"config", configPath,
		"dir", cfg.DownloadDir,
		"type", updateType,
		"repo", repo.String(),
		"api", cfg.APIURL)

	return &session{
		cfg:        cfg,
		updateType: updateType,
		repo:       repo,
		logger:     logger,
		checker:    checker,
		updater:    updater,
		display:    progress.NewDisplay(caps, cmd.OutOrStdout(), cmd.ErrOrStderr()),
		progress:   cfg.ShowProgress,
	}, nil
}

// onProgress returns the download callback, or nil when progress output is off.
func (s *session) onProgress() func(current, total int64) {
	if !s.progress {
		return nil
	}
	return s.display.Download
}

// checkError maps a failure of the release check to a CLI error.
func (s *session) checkError(err error) error {
	var malformed *update.MalformedFilenameError
	var transport *update.TransportError
	var parse *update.ParseError

	switch {
	case errors.Is(err, update.ErrNoMatchingAsset):
		return apperrors.NoMatchingAsset(s.repo.String(), s.updateType.Suffix(), err)
	case errors.Is(err, context.Canceled):
		return err
	case isTimeout(err):
		return apperrors.TimeoutError("release check", s.cfg.HTTPTimeout(), err)
	case errors.As(err, &malformed):
		return apperrors.MalformedArtifactName(err)
	case errors.As(err, &transport), errors.As(err, &parse):
		return apperrors.ReleaseFetchFailed(err)
	default:
		return apperrors.WrapWithMessage(err, apperrors.Runtime, "checking for update")
	}
}

// downloadError maps a failed download to a CLI error.
func (s *session) downloadError(err error) error {
	var ioErr *update.IOError

	switch {
	case errors.Is(err, context.Canceled):
		return err
	case isTimeout(err):
		return apperrors.TimeoutError("download", s.cfg.DownloadTimeoutDuration(), err)
	case errors.As(err, &ioErr) && errors.Is(err, os.ErrPermission):
		return apperrors.DirectoryNotWritable(s.cfg.DownloadDir, err)
	default:
		return apperrors.DownloadFailed(err)
	}
}
