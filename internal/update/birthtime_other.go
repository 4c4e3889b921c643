//go:build !linux && !darwin && !freebsd

package update

import (
	"io/fs"
	"time"
)

// birthTime falls back to the modification time where creation time is not exposed.
func birthTime(_ string, info fs.FileInfo) (time.Time, error) {
	return info.ModTime(), nil
}
