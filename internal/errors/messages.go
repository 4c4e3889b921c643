package errors

import (
	"fmt"
	"strings"
	"time"
)

// InvalidUpdateType is returned for an --update-type value outside the supported set.
func InvalidUpdateType(value string, valid []string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("unknown update type %q", value),
		"yuzu-updater --update-type <"+strings.Join(valid, "|")+">",
		fmt.Sprintf("Use one of: %s", strings.Join(valid, ", ")),
	)
}

// ConfigInvalid wraps a configuration loading or validation failure.
func ConfigInvalid(err error) *CLIError {
	return Wrap(err, Configuration,
		"Check the config file passed with --config",
		"Check YUZU_UPDATER_* environment variables",
	)
}

// NoMatchingAsset is returned when the latest release has no artifact of the requested type.
func NoMatchingAsset(repo, suffix string, cause error) *CLIError {
	e := NewPrerequisiteError(
		fmt.Sprintf("the latest %s release has no *%s asset", repo, suffix),
		"Try another --update-type",
		fmt.Sprintf("Check the assets at https://github.com/%s/releases/latest", repo),
	)
	e.Cause = cause
	return e
}

// ReleaseFetchFailed is returned when the release API could not be reached or parsed.
func ReleaseFetchFailed(cause error) *CLIError {
	return WrapWithMessage(cause, Runtime, "fetching latest release",
		"Check your network connection",
		"GitHub limits unauthenticated API calls; wait and try again if rate limited",
	)
}

// MalformedArtifactName is returned when a version token cannot be read from a file name.
func MalformedArtifactName(cause error) *CLIError {
	return WrapWithMessage(cause, Runtime, "reading version from artifact name",
		"Rename or remove local files that do not follow <prefix>-<os>-<date>-<build><ext>",
	)
}

// DownloadFailed is returned when streaming the asset to disk fails.
func DownloadFailed(cause error) *CLIError {
	return WrapWithMessage(cause, Runtime, "download failed",
		"No partial file was kept; run the command again",
		"Check free space and write permission on the download directory",
	)
}

// DirectoryNotWritable is returned when the download directory cannot be written.
func DirectoryNotWritable(path string, cause error) *CLIError {
	e := NewPrerequisiteError(
		fmt.Sprintf("download directory %s is not writable", path),
		"Choose another directory with --download-dir",
	)
	e.Cause = cause
	return e
}

// TimeoutError is returned when a network operation exceeds its deadline.
func TimeoutError(op string, timeout time.Duration, cause error) *CLIError {
	e := NewRuntimeError(
		fmt.Sprintf("%s timed out after %s", op, timeout),
		"Raise the timeout with YUZU_UPDATER_TIMEOUT or YUZU_UPDATER_DOWNLOAD_TIMEOUT (seconds)",
	)
	e.Cause = cause
	return e
}
