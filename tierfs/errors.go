package tierfs

import (
	"errors"
	"syscall"
)

// Sentinel errors for the operation dispatcher. Handlers surface these
// to the host as negated errno values via statusOf, which matches them
// with errors.Is().
var (
	ErrNotFound      = errors.New("path or parent does not exist")
	ErrExists        = errors.New("destination name already exists")
	ErrIsDir         = errors.New("target is a directory")
	ErrNotDir        = errors.New("target is not a directory")
	ErrNotEmpty      = errors.New("directory is not empty")
	ErrInvalidKind   = errors.New("operation not defined for this file kind")
	ErrNotPermitted  = errors.New("flag combination not supported")
	ErrInvalidHandle = errors.New("operation requires an open file handle")
)

// errnoFor maps the dispatcher's error taxonomy onto errno values.
func errnoFor(err error) syscall.Errno {
	switch {
	case errors.Is(err, ErrNotFound):
		return syscall.ENOENT
	case errors.Is(err, ErrExists):
		return syscall.EEXIST
	case errors.Is(err, ErrIsDir):
		return syscall.EISDIR
	case errors.Is(err, ErrNotDir):
		return syscall.ENOTDIR
	case errors.Is(err, ErrNotEmpty):
		return syscall.ENOTEMPTY
	case errors.Is(err, ErrInvalidKind):
		return syscall.EINVAL
	case errors.Is(err, ErrNotPermitted):
		return syscall.EPERM
	case errors.Is(err, ErrInvalidHandle):
		return syscall.EBADF
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno
	}
	return syscall.EIO
}

// statusOf converts an error into the host return convention: zero for
// nil, otherwise the negated errno.
func statusOf(err error) int {
	if err == nil {
		return 0
	}
	return -int(errnoFor(err))
}

// errnoStatus converts a raw syscall failure into a negated errno,
// falling back to EIO when the error carries no errno at all.
func errnoStatus(err error) int {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return -int(errno)
	}
	return -int(syscall.EIO)
}
