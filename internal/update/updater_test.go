package update

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// releaseServer serves a latest-release document with the given asset names and
// serves each asset body under /download/<name>.
type releaseServer struct {
	*httptest.Server
	downloads atomic.Int32
}

func newReleaseServer(t *testing.T, body string, assetNames ...string) *releaseServer {
	t.Helper()

	rs := &releaseServer{}
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/yuzu-emu/yuzu-mainline/releases/latest", func(w http.ResponseWriter, r *http.Request) {
		assets := make([]Asset, 0, len(assetNames))
		for _, name := range assetNames {
			assets = append(assets, Asset{
				Name:               name,
				BrowserDownloadURL: rs.URL + "/download/" + name,
				Size:               int64(len(body)),
			})
		}
		_ = json.NewEncoder(w).Encode(ReleaseInfo{TagName: "mainline-0-1734", Assets: assets})
	})
	mux.HandleFunc("/download/", func(w http.ResponseWriter, r *http.Request) {
		rs.downloads.Add(1)
		_, _ = w.Write([]byte(body))
	})

	rs.Server = httptest.NewServer(mux)
	t.Cleanup(rs.Close)
	return rs
}

func newTestUpdater(rs *releaseServer, dir string, updateType UpdateType) *Updater {
	checker := NewChecker(5 * time.Second)
	checker.SetAPIURL(rs.URL)
	return NewUpdater(checker, NewDownloader(rs.Client()), Options{
		UpdateType:      updateType,
		DownloadDir:     dir,
		DownloadTimeout: 10 * time.Second,
	}, nil)
}

func TestUpdater_Run(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		remoteAsset   string
		localFiles    []string
		wantOutcome   Outcome
		wantRemote    string
		wantLocal     string
		wantDownloads int32
		wantFile      string
	}{
		"versions match": {
			remoteAsset:   "yuzu-windows-msvc-f00dcafe.AppImage",
			localFiles:    []string{"yuzu-windows-msvc-f00dcafe.AppImage"},
			wantOutcome:   UpToDate,
			wantRemote:    "f00dcafe",
			wantLocal:     "f00dcafe",
			wantDownloads: 0,
		},
		"newer build available": {
			remoteAsset:   "yuzu-windows-msvc-deadbeef.AppImage",
			localFiles:    []string{"yuzu-windows-msvc-f00dcafe.AppImage"},
			wantOutcome:   UpdateAvailable,
			wantRemote:    "deadbeef",
			wantLocal:     "f00dcafe",
			wantDownloads: 1,
			wantFile:      "yuzu-windows-msvc-deadbeef.AppImage",
		},
		"first install into empty directory": {
			remoteAsset:   "yuzu-linux-20240101-abc123.AppImage",
			wantOutcome:   UpdateAvailable,
			wantRemote:    "abc123",
			wantLocal:     "none",
			wantDownloads: 1,
			wantFile:      "yuzu-linux-20240101-abc123.AppImage",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			rs := newReleaseServer(t, "appimage bytes", tt.remoteAsset)
			dir := t.TempDir()
			writeFiles(t, dir, tt.localFiles...)

			check, result, err := newTestUpdater(rs, dir, AppImage).Run(context.Background(), nil)

			require.NoError(t, err)
			assert.Equal(t, tt.wantOutcome, check.Decision.Outcome)
			assert.Equal(t, tt.wantRemote, check.RemoteVersion)
			assert.Equal(t, tt.wantLocal, check.Local.String())
			assert.Equal(t, tt.wantDownloads, rs.downloads.Load())

			if tt.wantFile == "" {
				assert.Nil(t, result)
				return
			}
			require.NotNil(t, result)
			assert.Equal(t, filepath.Join(dir, tt.wantFile), result.Path)
			content, err := os.ReadFile(result.Path)
			require.NoError(t, err)
			assert.Equal(t, "appimage bytes", string(content))
		})
	}
}

func TestUpdater_Run_Standalone(t *testing.T) {
	t.Parallel()

	rs := newReleaseServer(t, "tarball",
		"yuzu-linux-20240102-bbb.tar.xz",
		"yuzu-linux-20240102-bbb.AppImage",
	)
	dir := t.TempDir()
	writeFiles(t, dir, "yuzu-linux-20240101-aaa.tar.xz", "yuzu-linux-20240102-bbb.AppImage")

	check, result, err := newTestUpdater(rs, dir, Standalone).Run(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, "yuzu-linux-20240102-bbb.tar.xz", check.Asset.Name)
	assert.Equal(t, "aaa", check.Local.Token)
	require.NotNil(t, result)
	assert.FileExists(t, filepath.Join(dir, "yuzu-linux-20240102-bbb.tar.xz"))
}

func TestUpdater_Run_SymlinkedDownloadDir(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need elevated privileges")
	}

	rs := newReleaseServer(t, "appimage bytes", "yuzu-windows-msvc-f00dcafe.AppImage")
	target := t.TempDir()
	writeFiles(t, target, "yuzu-windows-msvc-f00dcafe.AppImage")
	link := filepath.Join(t.TempDir(), "Downloads")
	require.NoError(t, os.Symlink(target, link))

	check, result, err := newTestUpdater(rs, link, AppImage).Run(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, UpToDate, check.Decision.Outcome)
	assert.Equal(t, "f00dcafe", check.Local.Token)
	assert.Nil(t, result)
	assert.Equal(t, int32(0), rs.downloads.Load())
}

func TestUpdater_Check_NoMatchingAsset(t *testing.T) {
	t.Parallel()

	rs := newReleaseServer(t, "", "yuzu-windows-msvc-20240101-abc123.zip")

	_, err := newTestUpdater(rs, t.TempDir(), AppImage).Check(context.Background())

	assert.ErrorIs(t, err, ErrNoMatchingAsset)
}

func TestUpdater_Check_MalformedRemoteName(t *testing.T) {
	t.Parallel()

	rs := newReleaseServer(t, "", "yuzu-abc123.AppImage")

	_, err := newTestUpdater(rs, t.TempDir(), AppImage).Check(context.Background())

	var malformed *MalformedFilenameError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "yuzu-abc123.AppImage", malformed.Filename)
	assert.Equal(t, int32(0), rs.downloads.Load())
}

func TestUpdater_Check_MalformedLocalName(t *testing.T) {
	t.Parallel()

	rs := newReleaseServer(t, "", "yuzu-linux-20240101-abc123.AppImage")
	dir := t.TempDir()
	writeFiles(t, dir, "yuzu.AppImage")

	_, err := newTestUpdater(rs, dir, AppImage).Check(context.Background())

	var malformed *MalformedFilenameError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "yuzu.AppImage", malformed.Filename)
}

func TestUpdater_Check_DoesNotDownload(t *testing.T) {
	t.Parallel()

	rs := newReleaseServer(t, "bytes", "yuzu-linux-20240101-abc123.AppImage")
	dir := t.TempDir()

	check, err := newTestUpdater(rs, dir, AppImage).Check(context.Background())

	require.NoError(t, err)
	assert.True(t, check.UpdateAvailable())
	assert.Equal(t, int32(0), rs.downloads.Load())
	assertDirEmpty(t, dir)
}

func TestUpdater_Run_TransportError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	checker := NewChecker(time.Second)
	checker.SetAPIURL(url)
	u := NewUpdater(checker, NewDownloader(nil), Options{DownloadDir: t.TempDir()}, nil)

	_, _, err := u.Run(context.Background(), nil)

	var transportErr *TransportError
	assert.ErrorAs(t, err, &transportErr)
}

func TestUpdater_Run_DownloadFailureLeavesNoFile(t *testing.T) {
	t.Parallel()

	const name = "yuzu-linux-20240101-abc123.AppImage"
	var srvURL string
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/yuzu-emu/yuzu-mainline/releases/latest", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(ReleaseInfo{
			TagName: "t",
			Assets:  []Asset{{Name: name, BrowserDownloadURL: srvURL + "/download"}},
		})
	})
	mux.HandleFunc("/download", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	server := httptest.NewServer(mux)
	defer server.Close()
	srvURL = server.URL

	checker := NewChecker(time.Second)
	checker.SetAPIURL(server.URL)
	dir := t.TempDir()
	u := NewUpdater(checker, NewDownloader(server.Client()), Options{DownloadDir: dir}, nil)

	check, result, err := u.Run(context.Background(), nil)

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, check.UpdateAvailable())
	assertDirEmpty(t, dir)
}
