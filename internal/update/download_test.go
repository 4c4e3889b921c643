package update

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertDirEmpty fails if dir contains anything, including temp files.
func assertDirEmpty(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Empty(t, names)
}

func TestDownloader_Download(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		responseCode int
		responseBody string
		wantErr      bool
	}{
		"successful download": {
			responseCode: http.StatusOK,
			responseBody: "fake appimage content",
			wantErr:      false,
		},
		"empty body": {
			responseCode: http.StatusOK,
			responseBody: "",
			wantErr:      false,
		},
		"not found": {
			responseCode: http.StatusNotFound,
			responseBody: "",
			wantErr:      true,
		},
		"server error": {
			responseCode: http.StatusInternalServerError,
			responseBody: "",
			wantErr:      true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.responseCode)
				_, _ = w.Write([]byte(tt.responseBody))
			}))
			defer server.Close()

			dir := t.TempDir()
			downloader := NewDownloader(server.Client())

			result, err := downloader.Download(context.Background(), server.URL, dir, "yuzu-linux-20240101-abc123.AppImage", nil)

			if tt.wantErr {
				var transportErr *TransportError
				assert.ErrorAs(t, err, &transportErr)
				assertDirEmpty(t, dir)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, "yuzu-linux-20240101-abc123.AppImage"), result.Path)
			assert.Equal(t, int64(len(tt.responseBody)), result.Bytes)

			content, err := os.ReadFile(result.Path)
			require.NoError(t, err)
			assert.Equal(t, tt.responseBody, string(content))
		})
	}
}

func TestDownloader_Download_Chunked(t *testing.T) {
	t.Parallel()

	const chunks = 16
	var want bytes.Buffer
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flusher := w.(http.Flusher)
		for i := range chunks {
			chunk := bytes.Repeat([]byte{byte('a' + i)}, 4096+i)
			_, _ = w.Write(chunk)
			flusher.Flush()
		}
	}))
	defer server.Close()
	for i := range chunks {
		want.Write(bytes.Repeat([]byte{byte('a' + i)}, 4096+i))
	}

	dir := t.TempDir()
	result, err := NewDownloader(server.Client()).Download(context.Background(), server.URL, dir, "yuzu-a-b-c.AppImage", nil)

	require.NoError(t, err)
	assert.Equal(t, int64(want.Len()), result.Bytes)
	got, err := os.ReadFile(result.Path)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(want.Bytes(), got), "downloaded bytes differ from sent chunks")
}

func TestDownloader_Download_WithProgress(t *testing.T) {
	t.Parallel()

	body := "test content for progress tracking"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", fmt.Sprintf("%d", len(body)))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	var (
		progressCalls int
		lastCurrent   int64
		lastTotal     int64
	)
	_, err := NewDownloader(server.Client()).Download(context.Background(), server.URL, t.TempDir(), "yuzu-a-b-c.AppImage",
		func(current, total int64) {
			progressCalls++
			lastCurrent = current
			lastTotal = total
		})

	require.NoError(t, err)
	assert.Greater(t, progressCalls, 0)
	assert.Equal(t, int64(len(body)), lastCurrent)
	assert.Equal(t, int64(len(body)), lastTotal)
}

func TestDownloader_Download_InterruptedMidStream(t *testing.T) {
	t.Parallel()

	const total, sent = 1 << 20, 64 << 10
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", strconv.Itoa(total))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(bytes.Repeat([]byte("x"), sent))
		w.(http.Flusher).Flush()

		conn, _, err := w.(http.Hijacker).Hijack()
		if err == nil {
			conn.Close()
		}
	}))
	defer server.Close()

	dir := t.TempDir()
	name := "yuzu-linux-20240101-abc123.AppImage"

	result, err := NewDownloader(server.Client()).Download(context.Background(), server.URL, dir, name, nil)

	require.Error(t, err)
	assert.Nil(t, result)
	var transportErr *TransportError
	assert.ErrorAs(t, err, &transportErr)
	assert.NoFileExists(t, filepath.Join(dir, name))
	assertDirEmpty(t, dir)
}

func TestDownloader_Download_Cancelled(t *testing.T) {
	t.Parallel()

	unblock := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", strconv.Itoa(1<<20))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(bytes.Repeat([]byte("x"), 1024))
		w.(http.Flusher).Flush()
		select {
		case <-unblock:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(unblock)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dir := t.TempDir()
	name := "yuzu-linux-20240101-abc123.AppImage"
	_, err := NewDownloader(server.Client()).Download(ctx, server.URL, dir, name, func(current, _ int64) {
		if current > 0 {
			cancel()
		}
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assertDirEmpty(t, dir)
}

func TestDownloader_Download_CreatesDirectory(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("payload"))
	}))
	defer server.Close()

	dir := filepath.Join(t.TempDir(), "nested", "Downloads")
	result, err := NewDownloader(server.Client()).Download(context.Background(), server.URL, dir, "yuzu-a-b-c.AppImage", nil)

	require.NoError(t, err)
	assert.FileExists(t, result.Path)
}

func TestDownloader_Download_ArtifactIsWorldReadable(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("unix permission bits")
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("abc"))
	}))
	defer server.Close()

	result, err := NewDownloader(server.Client()).Download(context.Background(), server.URL, t.TempDir(), "yuzu-a-b-c.AppImage", nil)
	require.NoError(t, err)

	info, err := os.Stat(result.Path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestDownloader_Download_ReplacesExisting(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("new"))
	}))
	defer server.Close()

	dir := t.TempDir()
	name := "yuzu-a-b-c.AppImage"
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("old content"), 0o644))

	result, err := NewDownloader(server.Client()).Download(context.Background(), server.URL, dir, name, nil)

	require.NoError(t, err)
	content, err := os.ReadFile(result.Path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(content))
}

func TestDownloader_Download_RejectsPathInName(t *testing.T) {
	t.Parallel()

	downloader := NewDownloader(nil)

	for _, name := range []string{"", "../yuzu-a-b-c.AppImage", "sub/yuzu-a-b-c.AppImage"} {
		_, err := downloader.Download(context.Background(), "http://127.0.0.1:0", t.TempDir(), name, nil)
		assert.Error(t, err, "name %q", name)
	}
}

func TestDownloader_Download_UserAgent(t *testing.T) {
	t.Parallel()

	uaCh := make(chan string, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uaCh <- r.Header.Get("User-Agent")
	}))
	defer server.Close()

	downloader := NewDownloader(server.Client())
	downloader.SetUserAgent("yuzu-updater 2.0")

	_, err := downloader.Download(context.Background(), server.URL, t.TempDir(), "yuzu-a-b-c.AppImage", nil)

	require.NoError(t, err)
	assert.Equal(t, "yuzu-updater 2.0", <-uaCh)
}
