package update

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"
)

// DefaultProductPrefix is the file name prefix of yuzu artifacts.
const DefaultProductPrefix = "yuzu"

// LocalCandidate is an artifact found in the download directory.
type LocalCandidate struct {
	Name      string
	Path      string
	CreatedAt time.Time
}

// Scanner finds the most recently created artifact under a directory tree.
type Scanner struct {
	prefix    string
	suffix    string
	birthTime func(path string, info fs.FileInfo) (time.Time, error)

	// OnSkip, if set, is called for every entry skipped because of an error.
	OnSkip func(path string, err error)
}

// NewScanner creates a scanner matching names that start with prefix and end with suffix.
func NewScanner(prefix, suffix string) *Scanner {
	if prefix == "" {
		prefix = DefaultProductPrefix
	}
	return &Scanner{
		prefix:    prefix,
		suffix:    suffix,
		birthTime: birthTime,
	}
}

// Matches reports whether a base name looks like a tracked artifact.
func (s *Scanner) Matches(name string) bool {
	return strings.HasPrefix(name, s.prefix) && strings.HasSuffix(name, s.suffix)
}

// Scan walks root and returns the matching file with the latest creation time.
// Entries that fail during traversal or metadata lookup are skipped, so an
// unreadable subdirectory does not abort the scan. Ties go to the entry seen last.
// A symlinked root is followed. When nothing matches the error is ErrNoLocalInstallation.
func (s *Scanner) Scan(root string) (LocalCandidate, error) {
	var (
		latest LocalCandidate
		found  bool
	)

	walkRoot := root
	resolved, err := filepath.EvalSymlinks(root)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		s.skip(root, err)
		return LocalCandidate{}, fmt.Errorf("scanning %s: %w", root, ErrNoLocalInstallation)
	case err == nil:
		walkRoot = resolved
	}

	walkErr := filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
		// report paths under root as given, not under its symlink target
		if rel, relErr := filepath.Rel(walkRoot, path); relErr == nil {
			path = filepath.Join(root, rel)
		}
		if err != nil {
			s.skip(path, err)
			if d != nil && d.IsDir() && path != filepath.Clean(root) {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !s.Matches(d.Name()) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			s.skip(path, err)
			return nil
		}
		created, err := s.birthTime(path, info)
		if err != nil {
			s.skip(path, err)
			return nil
		}

		if !found || !created.Before(latest.CreatedAt) {
			latest = LocalCandidate{Name: d.Name(), Path: path, CreatedAt: created}
			found = true
		}
		return nil
	})
	if walkErr != nil {
		return LocalCandidate{}, &IOError{Op: "scan", Path: root, Err: walkErr}
	}

	if !found {
		return LocalCandidate{}, fmt.Errorf("scanning %s: %w", root, ErrNoLocalInstallation)
	}
	return latest, nil
}

func (s *Scanner) skip(path string, err error) {
	if s.OnSkip != nil {
		s.OnSkip(path, err)
	}
}
