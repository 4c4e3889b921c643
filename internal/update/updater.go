package update

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// DefaultRepository is the repository publishing yuzu mainline builds.
var DefaultRepository = Repository{Owner: "yuzu-emu", Name: "yuzu-mainline"}

// Options configures an Updater.
type Options struct {
	Repository      Repository
	UpdateType      UpdateType
	ProductPrefix   string
	DownloadDir     string
	DownloadTimeout time.Duration
}

// UpdateCheck contains the result of comparing the latest release with the download directory.
type UpdateCheck struct {
	Release       *ReleaseInfo
	Asset         Asset
	RemoteVersion string
	Local         LocalVersion
	Decision      Decision
}

// UpdateAvailable reports whether the asset needs to be downloaded.
func (c *UpdateCheck) UpdateAvailable() bool {
	return c.Decision.Outcome == UpdateAvailable
}

// Updater runs the check and download pipeline.
type Updater struct {
	checker    *Checker
	downloader *Downloader
	scanner    *Scanner
	opts       Options
	logger     *log.Logger
}

// NewUpdater wires a checker and downloader into a pipeline. A nil logger discards output.
func NewUpdater(checker *Checker, downloader *Downloader, opts Options, logger *log.Logger) *Updater {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Repository == (Repository{}) {
		opts.Repository = DefaultRepository
	}
	if opts.UpdateType == "" {
		opts.UpdateType = AppImage
	}

	scanner := NewScanner(opts.ProductPrefix, opts.UpdateType.Suffix())
	scanner.OnSkip = func(path string, err error) {
		logger.Debug("skipping entry", "path", path, "err", err)
	}

	return &Updater{
		checker:    checker,
		downloader: downloader,
		scanner:    scanner,
		opts:       opts,
		logger:     logger,
	}
}

// Check fetches the latest release, picks its asset, scans the download directory
// and reconciles the two version tokens. It performs no download.
func (u *Updater) Check(ctx context.Context) (*UpdateCheck, error) {
	suffix := u.opts.UpdateType.Suffix()

	release, err := u.checker.FetchLatestRelease(ctx, u.opts.Repository)
	if err != nil {
		return nil, fmt.Errorf("fetching latest release: %w", err)
	}
	u.logger.Debug("fetched release", "tag", release.TagName, "assets", len(release.Assets))

	asset, err := SelectAsset(release, suffix)
	if err != nil {
		return nil, err
	}

	remote, err := ExtractVersion(asset.Name, suffix)
	if err != nil {
		return nil, fmt.Errorf("parsing remote version: %w", err)
	}
	u.logger.Debug("selected asset", "asset", asset.Name, "token", remote, "size", asset.Size)

	local, err := u.lookupLocal()
	if err != nil {
		return nil, err
	}

	return &UpdateCheck{
		Release:       release,
		Asset:         asset,
		RemoteVersion: remote,
		Local:         local,
		Decision:      Reconcile(remote, local, asset),
	}, nil
}

// lookupLocal finds the installed version in the download directory.
func (u *Updater) lookupLocal() (LocalVersion, error) {
	candidate, err := u.scanner.Scan(u.opts.DownloadDir)
	if errors.Is(err, ErrNoLocalInstallation) {
		u.logger.Debug("no local installation", "dir", u.opts.DownloadDir)
		return NotFound(), nil
	}
	if err != nil {
		return LocalVersion{}, err
	}

	token, err := ExtractVersion(candidate.Name, u.opts.UpdateType.Suffix())
	if err != nil {
		return LocalVersion{}, fmt.Errorf("parsing local version: %w", err)
	}
	u.logger.Debug("found local artifact", "path", candidate.Path, "token", token, "created", candidate.CreatedAt)
	return Found(token, candidate), nil
}

// Run checks for an update and downloads the asset when one is available.
// The download runs as its own task which Run waits on; the returned
// DownloadResult is nil when the directory is already up to date.
func (u *Updater) Run(ctx context.Context, onProgress func(current, total int64)) (*UpdateCheck, *DownloadResult, error) {
	check, err := u.Check(ctx)
	if err != nil {
		return nil, nil, err
	}
	if !check.UpdateAvailable() {
		return check, nil, nil
	}

	result, err := u.Download(ctx, check.Decision.Asset, onProgress)
	if err != nil {
		return check, nil, err
	}
	return check, result, nil
}

// Download fetches asset into the download directory.
func (u *Updater) Download(ctx context.Context, asset Asset, onProgress func(current, total int64)) (*DownloadResult, error) {
	if u.opts.DownloadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.opts.DownloadTimeout)
		defer cancel()
	}

	var result *DownloadResult
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := u.downloader.Download(gctx, asset.BrowserDownloadURL, u.opts.DownloadDir, asset.Name, onProgress)
		if err != nil {
			return err
		}
		result = r
		return nil
	})

	u.logger.Debug("download started", "asset", asset.Name, "url", asset.BrowserDownloadURL)
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("downloading %s: %w", asset.Name, err)
	}
	u.logger.Debug("download finished", "path", result.Path, "bytes", result.Bytes)
	return result, nil
}
