// Package health runs the checks behind `yuzu-updater doctor`.
package health

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CheckResult represents the result of a single health check
type CheckResult struct {
	Name    string
	Passed  bool
	Message string
}

// HealthReport contains all health check results
type HealthReport struct {
	Checks []CheckResult
	Passed bool
}

// ReleaseFetcher fetches the latest release and reports whether that worked.
type ReleaseFetcher func(ctx context.Context) (tag string, err error)

// RunHealthChecks runs all health checks and returns a report
func RunHealthChecks(ctx context.Context, downloadDir string, fetch ReleaseFetcher) *HealthReport {
	report := &HealthReport{
		Checks: make([]CheckResult, 0, 2),
		Passed: true,
	}

	for _, check := range []CheckResult{
		CheckDownloadDir(downloadDir),
		CheckReleaseAPI(ctx, fetch),
	} {
		report.Checks = append(report.Checks, check)
		if !check.Passed {
			report.Passed = false
		}
	}

	return report
}

// CheckDownloadDir checks that dir is a writable directory, or that its
// nearest existing ancestor is, since downloads create it on demand.
func CheckDownloadDir(dir string) CheckResult {
	const name = "Download directory"

	target := dir
	for {
		info, err := os.Stat(target)
		if err == nil {
			if !info.IsDir() {
				return CheckResult{Name: name, Message: fmt.Sprintf("%s is not a directory", target)}
			}
			break
		}
		if !errors.Is(err, os.ErrNotExist) {
			return CheckResult{Name: name, Message: fmt.Sprintf("cannot access %s: %v", target, err)}
		}
		parent := filepath.Dir(target)
		if parent == target {
			return CheckResult{Name: name, Message: fmt.Sprintf("no existing parent for %s", dir)}
		}
		target = parent
	}

	tmp, err := os.CreateTemp(target, ".yuzu-updater-health-*")
	if err != nil {
		return CheckResult{Name: name, Message: fmt.Sprintf("%s is not writable: %v", target, err)}
	}
	tmp.Close()
	os.Remove(tmp.Name())

	if target != dir {
		return CheckResult{Name: name, Passed: true, Message: fmt.Sprintf("%s will be created", dir)}
	}
	return CheckResult{Name: name, Passed: true, Message: fmt.Sprintf("%s is writable", dir)}
}

// CheckReleaseAPI checks that the latest release can be fetched
func CheckReleaseAPI(ctx context.Context, fetch ReleaseFetcher) CheckResult {
	const name = "Release API"

	tag, err := fetch(ctx)
	if err != nil {
		return CheckResult{Name: name, Message: fmt.Sprintf("fetching latest release: %v", err)}
	}
	return CheckResult{Name: name, Passed: true, Message: fmt.Sprintf("latest release is %s", tag)}
}

// FormatReport formats the health report for console output
func FormatReport(report *HealthReport) string {
	var b strings.Builder

	for _, check := range report.Checks {
		if check.Passed {
			fmt.Fprintf(&b, "✓ %s: %s\n", check.Name, check.Message)
		} else {
			fmt.Fprintf(&b, "✗ Error: %s: %s\n", check.Name, check.Message)
		}
	}

	return b.String()
}
