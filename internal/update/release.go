package update

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const (
	// GitHubAPIURL is the base URL of the GitHub REST API.
	GitHubAPIURL = "https://api.github.com"

	// DefaultUserAgent identifies the updater to GitHub.
	DefaultUserAgent = "yuzu-updater"

	// DefaultHTTPTimeout is the default timeout for the release API request.
	DefaultHTTPTimeout = 30 * time.Second

	// maxErrorBody bounds how much of an error response is read for its message.
	maxErrorBody = 64 << 10
)

// Repository identifies a GitHub repository.
type Repository struct {
	Owner string
	Name  string
}

// String returns "owner/name".
func (r Repository) String() string {
	return r.Owner + "/" + r.Name
}

// ReleaseInfo represents a GitHub release.
type ReleaseInfo struct {
	TagName     string    `json:"tag_name"`
	Name        string    `json:"name"`
	PublishedAt time.Time `json:"published_at"`
	Assets      []Asset   `json:"assets"`
}

// Asset represents a single release asset.
type Asset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
	Size               int64  `json:"size"`
}

// Checker fetches release metadata from the GitHub API.
type Checker struct {
	httpClient *http.Client
	apiURL     string
	userAgent  string
}

// NewChecker creates a new release checker with the given timeout.
func NewChecker(timeout time.Duration) *Checker {
	if timeout == 0 {
		timeout = DefaultHTTPTimeout
	}
	return &Checker{
		httpClient: &http.Client{Timeout: timeout},
		apiURL:     GitHubAPIURL,
		userAgent:  DefaultUserAgent,
	}
}

// SetAPIURL sets the API base URL. This is intended for testing and GitHub Enterprise.
func (c *Checker) SetAPIURL(url string) {
	c.apiURL = strings.TrimSuffix(url, "/")
}

// SetUserAgent overrides the User-Agent header sent with API requests.
func (c *Checker) SetUserAgent(ua string) {
	if ua != "" {
		c.userAgent = ua
	}
}

// FetchLatestRelease fetches the latest published release of repo.
// Network failures are reported as *TransportError, bad statuses and bodies as *ParseError.
func (c *Checker) FetchLatestRelease(ctx context.Context, repo Repository) (*ReleaseInfo, error) {
	if repo.Owner == "" || repo.Name == "" {
		return nil, fmt.Errorf("repository owner and name are required, got %q", repo.String())
	}

	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", c.apiURL, repo.Owner, repo.Name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ParseError{
			StatusCode: resp.StatusCode,
			Message:    apiErrorMessage(resp.Body),
		}
	}

	var release ReleaseInfo
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		var netErr interface{ Timeout() bool }
		if errors.As(err, &netErr) && netErr.Timeout() {
			return nil, &TransportError{URL: url, Err: err}
		}
		return nil, &ParseError{Err: err}
	}
	if release.TagName == "" {
		return nil, &ParseError{Err: errors.New("release has no tag_name")}
	}

	return &release, nil
}

// apiErrorMessage extracts the "message" field GitHub puts in error bodies.
func apiErrorMessage(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil || !gjson.ValidBytes(data) {
		return ""
	}
	return gjson.GetBytes(data, "message").String()
}
