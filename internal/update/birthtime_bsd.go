//go:build darwin || freebsd

package update

import (
	"io/fs"
	"time"

	"golang.org/x/sys/unix"
)

// birthTime returns the file creation time recorded by the filesystem.
func birthTime(path string, _ fs.FileInfo) (time.Time, error) {
	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		return time.Time{}, err
	}
	return time.Unix(st.Btim.Unix()), nil
}
