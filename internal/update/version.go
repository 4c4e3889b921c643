package update

import (
	"fmt"
	"regexp"
	"strings"
)

// versionField is the 0-based index of the version token among the '-' separated
// fields of an artifact name, e.g. yuzu-linux-20240304-537296095.AppImage.
const versionField = 3

// artifactNamePattern captures the fourth '-' separated field of an artifact name.
var artifactNamePattern = regexp.MustCompile(`^[^-]*-[^-]*-[^-]*-([^-]*)`)

// UpdateType selects which release artifact flavour is tracked.
type UpdateType string

const (
	// AppImage tracks the portable Linux AppImage build.
	AppImage UpdateType = "appimage"
	// Standalone tracks the plain tar.xz build.
	Standalone UpdateType = "standalone"
)

// UpdateTypes lists the recognized update types in display order.
func UpdateTypes() []string {
	return []string{string(AppImage), string(Standalone)}
}

// ParseUpdateType validates a user-supplied update type.
func ParseUpdateType(s string) (UpdateType, error) {
	switch UpdateType(s) {
	case AppImage, Standalone:
		return UpdateType(s), nil
	default:
		return "", fmt.Errorf("unknown update type %q (valid: %s)", s, strings.Join(UpdateTypes(), ", "))
	}
}

// Suffix returns the file name suffix of artifacts of this type.
func (t UpdateType) Suffix() string {
	if t == Standalone {
		return ".tar.xz"
	}
	return ".AppImage"
}

// ExtractVersion returns the version token embedded in an artifact file name:
// the fourth '-' separated field with suffix trimmed. Both remote asset names and
// local file names go through this function, so they must share the same layout.
func ExtractVersion(filename, suffix string) (string, error) {
	m := artifactNamePattern.FindStringSubmatch(filename)
	if m == nil {
		return "", &MalformedFilenameError{
			Filename: filename,
			Fields:   strings.Count(filename, "-") + 1,
		}
	}

	token := strings.TrimSuffix(m[1], suffix)
	if token == "" {
		return "", &MalformedFilenameError{
			Filename: filename,
			Fields:   strings.Count(filename, "-") + 1,
		}
	}
	return token, nil
}
