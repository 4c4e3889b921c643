package config

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"download_dir":     "~/Downloads",
		"update_type":      "appimage",
		"owner":            "yuzu-emu",
		"repo":             "yuzu-mainline",
		"product_prefix":   "yuzu",
		"api_url":          "https://api.github.com",
		"user_agent":       "yuzu-updater",
		"timeout":          30,
		"download_timeout": 1800,
		"show_progress":    true,
	}
}

// GetDefaultConfigTemplate returns a commented YAML config with the default values.
func GetDefaultConfigTemplate() string {
	return `# yuzu-updater configuration
# Every key can also be set with a YUZU_UPDATER_<KEY> environment variable.

# Where artifacts are looked up and downloaded (recursively scanned)
download_dir: ~/Downloads

# Artifact flavour: appimage (.AppImage) or standalone (.tar.xz)
update_type: appimage

# Release source
owner: yuzu-emu
repo: yuzu-mainline
product_prefix: yuzu
api_url: https://api.github.com
user_agent: yuzu-updater

# Timeouts in seconds for the release API call and the asset download
timeout: 30
download_timeout: 1800

# Spinner and progress bar when stdout is a terminal
show_progress: true
`
}
