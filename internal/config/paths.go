package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// appDirName is the directory under the user config dir holding config.yml.
const appDirName = "yuzu-updater"

// UserConfigDir returns the yuzu-updater directory under the user config
// directory ($XDG_CONFIG_HOME or ~/.config on Linux).
func UserConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating user config directory: %w", err)
	}
	return filepath.Join(base, appDirName), nil
}

// UserConfigPath returns the path of the user-level config file.
func UserConfigPath() (string, error) {
	dir, err := UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yml"), nil
}

// FindUserConfig returns UserConfigPath if that file exists, or "".
func FindUserConfig() string {
	path, err := UserConfigPath()
	if err != nil {
		return ""
	}
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// ErrConfigExists is returned by WriteDefaultConfig when the target exists and force is false.
var ErrConfigExists = errors.New("config file already exists")

// WriteDefaultConfig writes the commented default template to path.
func WriteDefaultConfig(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s: %w", path, ErrConfigExists)
	}
	if err := writeAtomically(path, []byte(GetDefaultConfigTemplate())); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// writeAtomically writes content to a file atomically using a temporary file and rename.
// Creates parent directories if they don't exist.
func writeAtomically(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	tmpFile, err := os.CreateTemp(dir, ".config-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		// Clean up temp file on error
		if tmpPath != "" {
			os.Remove(tmpPath)
		}
	}()
	if _, err := tmpFile.Write(content); err != nil {
		tmpFile.Close()
		return fmt.Errorf("writing to temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}
	tmpPath = "" // Prevent cleanup since rename succeeded
	return nil
}
