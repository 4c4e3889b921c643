package update

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
)

// artifactMode is the permission of a downloaded artifact.
const artifactMode fs.FileMode = 0o644

// Downloader streams release assets into a directory.
type Downloader struct {
	httpClient *http.Client
	userAgent  string
}

// NewDownloader creates a new downloader with the given HTTP client.
// The client should not carry an overall Timeout; bound downloads with the context instead.
func NewDownloader(client *http.Client) *Downloader {
	if client == nil {
		client = &http.Client{}
	}
	return &Downloader{httpClient: client, userAgent: DefaultUserAgent}
}

// SetUserAgent overrides the User-Agent header sent with download requests.
func (d *Downloader) SetUserAgent(ua string) {
	if ua != "" {
		d.userAgent = ua
	}
}

// ProgressWriter wraps an io.Writer to report download progress.
type ProgressWriter struct {
	Writer   io.Writer
	Total    int64
	Current  int64
	OnUpdate func(current, total int64)
}

// Write implements io.Writer and reports progress.
func (pw *ProgressWriter) Write(p []byte) (int, error) {
	n, err := pw.Writer.Write(p)
	pw.Current += int64(n)
	if pw.OnUpdate != nil {
		pw.OnUpdate(pw.Current, pw.Total)
	}
	return n, err
}

// DownloadResult describes a completed download.
type DownloadResult struct {
	Path  string
	Bytes int64
}

// Download streams url into dir/name. The body is written chunk by chunk to a
// temporary file in dir which is renamed to name only after the whole body has
// been received and flushed. On any failure, including context cancellation,
// the temporary file is removed and nothing is left under the final name.
func (d *Downloader) Download(ctx context.Context, url, dir, name string, onProgress func(current, total int64)) (*DownloadResult, error) {
	if name == "" || name != filepath.Base(name) {
		return nil, fmt.Errorf("invalid artifact name %q", name)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{URL: url, Err: fmt.Errorf("download failed with status: %d", resp.StatusCode)}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &IOError{Op: "create directory", Path: dir, Err: err}
	}

	tmpFile, err := os.CreateTemp(dir, "."+name+".part-*")
	if err != nil {
		return nil, &IOError{Op: "create temp file", Path: dir, Err: err}
	}
	tmpPath := tmpFile.Name()

	written, err := d.stream(tmpFile, resp, url, onProgress)
	if err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("download interrupted after %d bytes: %w", written, ctxErr)
		}
		return nil, err
	}

	// CreateTemp uses 0600; artifacts get the usual mode for downloaded files
	if err := tmpFile.Chmod(artifactMode); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return nil, &IOError{Op: "chmod", Path: tmpPath, Err: err}
	}

	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return nil, &IOError{Op: "close", Path: tmpPath, Err: err}
	}

	destPath := filepath.Join(dir, name)
	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return nil, &IOError{Op: "rename", Path: destPath, Err: err}
	}

	return &DownloadResult{Path: destPath, Bytes: written}, nil
}

// stream copies the response body into f and syncs it.
func (d *Downloader) stream(f *os.File, resp *http.Response, url string, onProgress func(current, total int64)) (int64, error) {
	writer := io.Writer(f)
	if onProgress != nil {
		writer = &ProgressWriter{
			Writer:   f,
			Total:    resp.ContentLength,
			OnUpdate: onProgress,
		}
	}

	written, err := io.Copy(writer, resp.Body)
	if err != nil {
		var pathErr *os.PathError
		if errors.As(err, &pathErr) {
			return written, &IOError{Op: "write", Path: f.Name(), Err: err}
		}
		return written, &TransportError{URL: url, Err: fmt.Errorf("reading body after %d bytes: %w", written, err)}
	}

	if err := f.Sync(); err != nil {
		return written, &IOError{Op: "sync", Path: f.Name(), Err: err}
	}
	return written, nil
}
