//go:build linux

package update

import (
	"errors"
	"io/fs"
	"time"

	"golang.org/x/sys/unix"
)

// birthTime returns the file creation time via statx, falling back to the
// modification time on filesystems or kernels that do not record it.
func birthTime(path string, info fs.FileInfo) (time.Time, error) {
	var stx unix.Statx_t
	err := unix.Statx(unix.AT_FDCWD, path, unix.AT_SYMLINK_NOFOLLOW, unix.STATX_BTIME|unix.STATX_MTIME, &stx)
	if errors.Is(err, unix.ENOSYS) {
		return info.ModTime(), nil
	}
	if err != nil {
		return time.Time{}, err
	}

	if stx.Mask&unix.STATX_BTIME != 0 {
		return time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec)), nil
	}
	return time.Unix(stx.Mtime.Sec, int64(stx.Mtime.Nsec)), nil
}
