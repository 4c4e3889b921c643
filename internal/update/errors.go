package update

import (
	"errors"
	"fmt"
)

var (
	// ErrNoMatchingAsset is returned when the release has no asset for the update type.
	ErrNoMatchingAsset = errors.New("no matching release asset")

	// ErrNoLocalInstallation marks an empty local inventory. It is informational:
	// the pipeline treats it as "download required", never as a failure.
	ErrNoLocalInstallation = errors.New("no local installation found")
)

// TransportError is a network-level failure on either HTTP call.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ParseError is an unexpected HTTP status or an undecodable release body.
type ParseError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *ParseError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Message != "":
		return fmt.Sprintf("unexpected status code %d: %s", e.StatusCode, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("unexpected status code %d", e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("decoding release: %v", e.Err)
	default:
		return "decoding release"
	}
}

func (e *ParseError) Unwrap() error { return e.Err }

// MalformedFilenameError reports a file name that does not carry a version token.
type MalformedFilenameError struct {
	Filename string
	Fields   int
}

func (e *MalformedFilenameError) Error() string {
	if e.Fields > versionField {
		return fmt.Sprintf("malformed artifact name %q: empty version token", e.Filename)
	}
	return fmt.Sprintf("malformed artifact name %q: expected at least %d '-' separated fields, got %d",
		e.Filename, versionField+1, e.Fields)
}

// IOError is a filesystem failure while scanning or writing the download directory.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
