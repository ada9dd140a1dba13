package util

import (
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// MoveFile relocates src to dst, preserving content, mode bits,
// ownership, timestamps, and xattrs. It first attempts a rename; when
// the two paths live on different filesystems the rename fails with
// EXDEV and the move falls back to copy-then-unlink. The destination is
// never left half-written: on copy failure the partial file is removed
// and src is untouched.
func MoveFile(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return err
	}

	info, err := os.Lstat(src)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("move %s: %w", src, ErrExpectedFile)
	}

	if err := copyRegular(src, dst, info); err != nil {
		os.Remove(dst)
		return err
	}
	if err := copyXattrs(src, dst); err != nil {
		os.Remove(dst)
		return err
	}
	if err := copyOwnership(src, dst, info); err != nil {
		os.Remove(dst)
		return err
	}
	return os.Remove(src)
}

func copyRegular(src, dst string, info os.FileInfo) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s to %s: %w", src, dst, err)
	}
	if err := out.Sync(); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	// The umask may have clipped the create mode.
	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return err
	}
	atime := time.Now()
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		atime = time.Unix(int64(st.Atim.Sec), int64(st.Atim.Nsec))
	}
	return os.Chtimes(dst, atime, info.ModTime())
}

func copyOwnership(src, dst string, info os.FileInfo) error {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return nil
	}
	err := os.Chown(dst, int(st.Uid), int(st.Gid))
	if errors.Is(err, syscall.EPERM) {
		// Unprivileged moves keep the calling user's ownership.
		return nil
	}
	return err
}

func copyXattrs(src, dst string) error {
	size, err := unix.Listxattr(src, nil)
	if err != nil || size == 0 {
		// ENOTSUP means the source filesystem has no xattrs to carry.
		return nil
	}
	buf := make([]byte, size)
	size, err = unix.Listxattr(src, buf)
	if err != nil {
		return nil
	}

	for _, name := range splitXattrNames(buf[:size]) {
		vsize, err := unix.Getxattr(src, name, nil)
		if err != nil {
			continue
		}
		value := make([]byte, vsize)
		if vsize > 0 {
			if _, err := unix.Getxattr(src, name, value); err != nil {
				continue
			}
		}
		if err := unix.Setxattr(dst, name, value, 0); err != nil && !errors.Is(err, syscall.ENOTSUP) {
			return fmt.Errorf("setxattr %s on %s: %w", name, dst, err)
		}
	}
	return nil
}

// splitXattrNames splits the NUL-delimited name list returned by
// listxattr.
func splitXattrNames(buf []byte) []string {
	var names []string
	start := 0
	for i, b := range buf {
		if b == 0 {
			if i > start {
				names = append(names, string(buf[start:i]))
			}
			start = i + 1
		}
	}
	return names
}
