// Package config loads yuzu-updater settings from defaults, an optional config
// file, the environment and command-line overrides, in increasing priority.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables read into the configuration.
const EnvPrefix = "YUZU_UPDATER_"

// Configuration represents the yuzu-updater configuration
type Configuration struct {
	DownloadDir     string `koanf:"download_dir" validate:"required"`
	UpdateType      string `koanf:"update_type" validate:"required,oneof=appimage standalone"`
	Owner           string `koanf:"owner" validate:"required"`
	Repo            string `koanf:"repo" validate:"required"`
	ProductPrefix   string `koanf:"product_prefix" validate:"required"`
	APIURL          string `koanf:"api_url" validate:"required,url"`
	UserAgent       string `koanf:"user_agent" validate:"required"`
	Timeout         int    `koanf:"timeout" validate:"min=1,max=600"`
	DownloadTimeout int    `koanf:"download_timeout" validate:"min=1,max=86400"`
	ShowProgress    bool   `koanf:"show_progress"` // Show spinner and progress bar on a TTY
}

// HTTPTimeout returns the release API timeout as a duration.
func (c *Configuration) HTTPTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// DownloadTimeoutDuration returns the asset download timeout as a duration.
func (c *Configuration) DownloadTimeoutDuration() time.Duration {
	return time.Duration(c.DownloadTimeout) * time.Second
}

// Load builds the configuration.
// Priority: overrides (CLI flags) > environment variables > config file > defaults.
// configPath may be empty; when set, the file must exist and be JSON or YAML.
func Load(configPath string, overrides map[string]interface{}) (*Configuration, error) {
	k := koanf.New(".")

	// Apply defaults first
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}

	if configPath != "" {
		parser, err := parserFor(configPath)
		if err != nil {
			return nil, err
		}
		if _, err := os.Stat(configPath); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := ValidateFileSyntax(configPath); err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(configPath), parser); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	for key, value := range overrides {
		k.Set(key, value)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.DownloadDir = expandHomePath(cfg.DownloadDir)

	if err := cfg.Validate(configPath); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints and returns a *ValidationError for the first violation.
func (c *Configuration) Validate(filePath string) error {
	if err := newValidator().Struct(c); err != nil {
		return toValidationError(err, filePath)
	}
	if strings.HasPrefix(c.DownloadDir, "~") {
		return &ValidationError{
			FilePath: filePath,
			Field:    "download_dir",
			Message:  "cannot expand ~: home directory is unknown",
		}
	}
	return nil
}

// parserFor picks the koanf parser by file extension.
func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return json.Parser(), nil
	case ".yml", ".yaml":
		return YAMLParser(), nil
	default:
		return nil, fmt.Errorf("unsupported config file type %q (use .json, .yml or .yaml)", filepath.Ext(path))
	}
}

// envTransform converts environment variable names to config keys
// Example: YUZU_UPDATER_DOWNLOAD_DIR -> download_dir
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, strings.TrimPrefix(path[1:], "/"))
		}
	}
	return path
}
