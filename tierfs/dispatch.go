package tierfs

import (
	"errors"
	"io"
	"os"
	"sync"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/dendrascience/dendra-tier-fuse/util"
	"golang.org/x/sys/unix"
)

// HFS is the tiered filesystem core: the dentry tree, the open-handle
// table, and one handler per host operation. Handlers take logical
// paths and return 0 (or a positive byte count) on success and a
// negated errno on failure.
//
// The design is single-threaded cooperative; the mutex serializes the
// FUSE library's concurrent request delivery back into that model.
type HFS struct {
	mu      sync.Mutex
	cfg     Config
	root    *Dentry
	handles *handleTable
	log     *log.Logger
}

// Getattr stats the backing path of a dentry. With a valid handle the
// stat goes through the open file instead.
func (h *HFS) Getattr(path string, st *unix.Stat_t, fh uint64) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.log.Debug("getattr", "path", path)

	if f := h.handles.get(fh); f != nil {
		if err := unix.Fstat(int(f.Fd()), st); err != nil {
			return errnoStatus(err)
		}
		return 0
	}

	d := h.findDentry(path)
	if d == nil {
		return statusOf(ErrNotFound)
	}
	if err := unix.Lstat(h.resolvePath(d, path), st); err != nil {
		return errnoStatus(err)
	}
	return 0
}

// Readlink reads the target of a symlink dentry.
func (h *HFS) Readlink(path string) (string, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.log.Debug("readlink", "path", path)

	d := h.findDentry(path)
	if d == nil {
		return "", statusOf(ErrNotFound)
	}
	if d.Kind != KindSymlink {
		return "", statusOf(ErrInvalidKind)
	}
	target, err := os.Readlink(h.resolvePath(d, path))
	if err != nil {
		return "", errnoStatus(err)
	}
	return target, 0
}

// Mkdir creates a directory on both tiers and inserts a directory
// dentry. If the slow-side mkdir fails the fast side is rolled back.
func (h *HFS) Mkdir(path string, mode uint32) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.log.Debug("mkdir", "path", path, "mode", mode)

	parent := h.findParentDentry(path)
	if parent == nil {
		return statusOf(ErrNotFound)
	}
	name := util.BaseName(path)
	if name == "" {
		return statusOf(ErrExists)
	}
	if _, ok := parent.Children[name]; ok {
		return statusOf(ErrExists)
	}

	fast, slow := h.bothPaths(path)
	if err := unix.Mkdir(fast, mode); err != nil {
		return errnoStatus(err)
	}
	if err := unix.Mkdir(slow, mode); err != nil {
		unix.Rmdir(fast)
		return errnoStatus(err)
	}

	insertChild(parent, name, newDentry(name, KindDirectory, TierNone))
	return 0
}

// Unlink removes a regular file or symlink from its tier and drops the
// dentry. The dentry survives if the backing unlink fails.
func (h *HFS) Unlink(path string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.log.Debug("unlink", "path", path)

	d := h.findDentry(path)
	if d == nil {
		return statusOf(ErrNotFound)
	}
	if d.Kind == KindDirectory {
		return statusOf(ErrIsDir)
	}
	if err := unix.Unlink(h.resolvePath(d, path)); err != nil {
		return errnoStatus(err)
	}
	removeChild(d.Parent, d.Name)
	freeDentry(d)
	return 0
}

// Rmdir removes an empty directory from both tiers. The fast mirror's
// mode is saved first so it can be recreated if the slow-side rmdir
// fails.
func (h *HFS) Rmdir(path string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.log.Debug("rmdir", "path", path)

	d := h.findDentry(path)
	if d == nil {
		return statusOf(ErrNotFound)
	}
	if d.Kind != KindDirectory {
		return statusOf(ErrNotDir)
	}
	if len(d.Children) > 0 {
		return statusOf(ErrNotEmpty)
	}

	fast, slow := h.bothPaths(path)
	var st unix.Stat_t
	if err := unix.Stat(fast, &st); err != nil {
		return errnoStatus(err)
	}
	if err := unix.Rmdir(fast); err != nil {
		return errnoStatus(err)
	}
	if err := unix.Rmdir(slow); err != nil {
		if rerr := unix.Mkdir(fast, st.Mode&0o7777); rerr != nil {
			h.log.Error("rmdir rollback failed, mirrors diverged",
				"path", path, "err", rerr)
		}
		return errnoStatus(err)
	}

	removeChild(d.Parent, d.Name)
	freeDentry(d)
	return 0
}

// Symlink creates a symlink on the fast tier only. The target string is
// stored verbatim; dangling targets are legal.
func (h *HFS) Symlink(target, linkpath string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.log.Debug("symlink", "target", target, "linkpath", linkpath)

	parent := h.findParentDentry(linkpath)
	if parent == nil {
		return statusOf(ErrNotFound)
	}
	name := util.BaseName(linkpath)
	if _, ok := parent.Children[name]; ok {
		return statusOf(ErrExists)
	}

	if err := unix.Symlink(target, h.cfg.FastRoot+linkpath); err != nil {
		return errnoStatus(err)
	}
	insertChild(parent, name, newDentry(name, KindSymlink, TierFast))
	return 0
}

// Rename rebinds a regular file or symlink within its tier. EXCHANGE
// and WHITEOUT are not supported; NOREPLACE fails when the destination
// name is taken. The default replaces an existing destination, dropping
// its dentry along with the backing file the syscall overwrote.
func (h *HFS) Rename(oldpath, newpath string, flags uint32) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.log.Debug("rename", "old", oldpath, "new", newpath, "flags", flags)

	if flags&(unix.RENAME_EXCHANGE|unix.RENAME_WHITEOUT) != 0 {
		return statusOf(ErrNotPermitted)
	}

	old := h.findDentry(oldpath)
	if old == nil {
		return statusOf(ErrNotFound)
	}
	if old.Kind == KindDirectory {
		return statusOf(ErrInvalidKind)
	}
	newParent := h.findParentDentry(newpath)
	if newParent == nil {
		return statusOf(ErrNotFound)
	}
	newName := util.BaseName(newpath)
	existing := newParent.Children[newName]
	if flags&unix.RENAME_NOREPLACE != 0 && existing != nil {
		return statusOf(ErrExists)
	}

	// Cross-tier rename is not defined: source and destination both use
	// the old file's tier.
	src := h.resolvePath(old, oldpath)
	dst := h.tierPath(old.Tier, newpath)
	if old.Kind == KindSymlink {
		dst = h.cfg.FastRoot + newpath
	}
	if err := unix.Rename(src, dst); err != nil {
		return errnoStatus(err)
	}

	if existing != nil {
		removeChild(newParent, newName)
		freeDentry(existing)
	}
	renameChild(old.Parent, old.Name, newParent, newName)
	return 0
}

// Link creates a hard link on the tier holding the existing file. The
// new dentry inherits kind and tier.
func (h *HFS) Link(oldpath, newpath string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.log.Debug("link", "old", oldpath, "new", newpath)

	old := h.findDentry(oldpath)
	if old == nil {
		return statusOf(ErrNotFound)
	}
	if old.Kind == KindDirectory {
		return statusOf(ErrIsDir)
	}
	parent := h.findParentDentry(newpath)
	if parent == nil {
		return statusOf(ErrNotFound)
	}
	name := util.BaseName(newpath)
	if _, ok := parent.Children[name]; ok {
		return statusOf(ErrExists)
	}

	if err := unix.Link(h.resolvePath(old, oldpath), h.tierPath(old.Tier, newpath)); err != nil {
		return errnoStatus(err)
	}
	insertChild(parent, name, newDentry(name, old.Kind, old.Tier))
	return 0
}

// Chmod applies mode bits to the resolved tier, or to both tiers for a
// directory. A directory chmod that succeeds on fast but fails on slow
// rolls the fast side back to keep the mirrors identical.
func (h *HFS) Chmod(path string, mode uint32) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.log.Debug("chmod", "path", path, "mode", mode)

	d := h.findDentry(path)
	if d == nil {
		return statusOf(ErrNotFound)
	}
	if d.Kind != KindDirectory {
		if err := unix.Chmod(h.resolvePath(d, path), mode); err != nil {
			return errnoStatus(err)
		}
		return 0
	}

	fast, slow := h.bothPaths(path)
	var st unix.Stat_t
	if err := unix.Stat(fast, &st); err != nil {
		return errnoStatus(err)
	}
	if err := unix.Chmod(fast, mode); err != nil {
		return errnoStatus(err)
	}
	if err := unix.Chmod(slow, mode); err != nil {
		if rerr := unix.Chmod(fast, st.Mode&0o7777); rerr != nil {
			h.log.Error("chmod rollback failed, mirrors diverged",
				"path", path, "err", rerr)
		}
		return errnoStatus(err)
	}
	return 0
}

// Chown applies ownership to the resolved tier, or to both tiers for a
// directory, rolling back the fast side on a slow-side failure.
func (h *HFS) Chown(path string, uid, gid int) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.log.Debug("chown", "path", path, "uid", uid, "gid", gid)

	d := h.findDentry(path)
	if d == nil {
		return statusOf(ErrNotFound)
	}
	if d.Kind != KindDirectory {
		if err := unix.Lchown(h.resolvePath(d, path), uid, gid); err != nil {
			return errnoStatus(err)
		}
		return 0
	}

	fast, slow := h.bothPaths(path)
	var st unix.Stat_t
	if err := unix.Stat(fast, &st); err != nil {
		return errnoStatus(err)
	}
	if err := unix.Chown(fast, uid, gid); err != nil {
		return errnoStatus(err)
	}
	if err := unix.Chown(slow, uid, gid); err != nil {
		if rerr := unix.Chown(fast, int(st.Uid), int(st.Gid)); rerr != nil {
			h.log.Error("chown rollback failed, mirrors diverged",
				"path", path, "err", rerr)
		}
		return errnoStatus(err)
	}
	return 0
}

// Truncate resizes a regular file on its tier and then runs the
// migration policy.
func (h *HFS) Truncate(path string, length int64) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.log.Debug("truncate", "path", path, "length", length)

	d := h.findDentry(path)
	if d == nil {
		return statusOf(ErrNotFound)
	}
	if d.Kind != KindRegular {
		return statusOf(ErrInvalidKind)
	}
	if err := unix.Truncate(h.resolvePath(d, path), length); err != nil {
		return errnoStatus(err)
	}
	h.maybeMigrate(d, path)
	return 0
}

// Open opens the backing file and stores the handle for the host. With
// O_CREAT an absent file is created on the fast tier; O_CREAT|O_EXCL on
// an existing dentry fails with EEXIST.
func (h *HFS) Open(path string, flags int) (uint64, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.log.Debug("open", "path", path, "flags", flags)

	d := h.findDentry(path)
	if d == nil {
		if flags&os.O_CREATE == 0 {
			return 0, statusOf(ErrNotFound)
		}
		return h.createLocked(path, flags, 0o644)
	}
	if flags&os.O_CREATE != 0 && flags&os.O_EXCL != 0 {
		return 0, statusOf(ErrExists)
	}
	if d.Kind == KindDirectory {
		return 0, statusOf(ErrIsDir)
	}

	f, err := os.OpenFile(h.resolvePath(d, path), flags&^(os.O_CREATE|os.O_EXCL), 0)
	if err != nil {
		return 0, errnoStatus(err)
	}
	return h.handles.put(f), 0
}

// Create creates a regular file on the fast tier, inserts its dentry,
// and returns an open handle.
func (h *HFS) Create(path string, mode uint32) (uint64, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.log.Debug("create", "path", path, "mode", mode)

	if d := h.findDentry(path); d != nil {
		return 0, statusOf(ErrExists)
	}
	return h.createLocked(path, os.O_RDWR, os.FileMode(mode&0o7777))
}

// createLocked places a new regular file on the fast tier. Callers hold
// the lock and have verified the dentry is absent.
func (h *HFS) createLocked(path string, flags int, mode os.FileMode) (uint64, int) {
	parent := h.findParentDentry(path)
	if parent == nil {
		return 0, statusOf(ErrNotFound)
	}
	name := util.BaseName(path)
	if name == "" {
		return 0, statusOf(ErrExists)
	}

	f, err := os.OpenFile(h.cfg.FastRoot+path, flags|os.O_CREATE, mode)
	if err != nil {
		return 0, errnoStatus(err)
	}
	insertChild(parent, name, newDentry(name, KindRegular, TierFast))
	return h.handles.put(f), 0
}

// Read fills buf from the file at the given offset, via the handle when
// one is provided and otherwise through a transient open on the
// resolved tier. Returns the byte count; a short read at end of file is
// not an error.
func (h *HFS) Read(path string, buf []byte, off int64, fh uint64) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.log.Debug("read", "path", path, "size", len(buf), "offset", off)

	f := h.handles.get(fh)
	if f == nil {
		d := h.findDentry(path)
		if d == nil {
			return statusOf(ErrNotFound)
		}
		if d.Kind != KindRegular {
			return statusOf(ErrInvalidKind)
		}
		var err error
		f, err = os.Open(h.resolvePath(d, path))
		if err != nil {
			return errnoStatus(err)
		}
		defer f.Close()
	}

	n, err := f.ReadAt(buf, off)
	if err != nil && err != io.EOF {
		return errnoStatus(err)
	}
	return n
}

// Write stores data at the given offset and then runs the migration
// policy. When the write pushed the file across a threshold the open
// handle is re-pointed at the file's new tier so subsequent I/O keeps
// hitting the live copy.
func (h *HFS) Write(path string, data []byte, off int64, fh uint64) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.log.Debug("write", "path", path, "size", len(data), "offset", off)

	d := h.findDentry(path)
	if d == nil {
		return statusOf(ErrNotFound)
	}
	if d.Kind != KindRegular {
		return statusOf(ErrInvalidKind)
	}

	f := h.handles.get(fh)
	transient := f == nil
	if transient {
		var err error
		f, err = os.OpenFile(h.resolvePath(d, path), os.O_WRONLY, 0)
		if err != nil {
			return errnoStatus(err)
		}
	}

	n, err := f.WriteAt(data, off)
	if transient {
		f.Close()
	}
	if err != nil {
		return errnoStatus(err)
	}

	before := d.Tier
	h.maybeMigrate(d, path)
	if !transient && d.Tier != before {
		h.repointHandle(fh, d, path)
	}
	return n
}

// repointHandle swaps an open handle onto the file's current tier after
// a migration moved the backing inode out from under it.
func (h *HFS) repointHandle(fh uint64, d *Dentry, path string) {
	old := h.handles.get(fh)
	if old == nil {
		return
	}
	f, err := os.OpenFile(h.resolvePath(d, path), os.O_RDWR, 0)
	if err != nil {
		h.log.Warn("handle repoint after migration failed", "path", path, "err", err)
		return
	}
	old.Close()
	h.handles.files[fh] = f
}

// Flush syncs the handle's file; a flush without a handle is a no-op.
func (h *HFS) Flush(fh uint64) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	f := h.handles.get(fh)
	if f == nil {
		return 0
	}
	if err := f.Sync(); err != nil {
		return errnoStatus(err)
	}
	return 0
}

// Release closes and forgets the handle.
func (h *HFS) Release(fh uint64) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	if f := h.handles.drop(fh); f != nil {
		if err := f.Close(); err != nil {
			return errnoStatus(err)
		}
	}
	return 0
}

// Fsync forces the handle's file to stable storage.
func (h *HFS) Fsync(fh uint64) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	f := h.handles.get(fh)
	if f == nil {
		return statusOf(ErrInvalidHandle)
	}
	if err := f.Sync(); err != nil {
		return errnoStatus(err)
	}
	return 0
}

// Setxattr sets an extended attribute on the resolved backing path.
func (h *HFS) Setxattr(path, name string, value []byte, flags int) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.log.Debug("setxattr", "path", path, "name", name)

	d := h.findDentry(path)
	if d == nil {
		return statusOf(ErrNotFound)
	}
	real := h.resolvePath(d, path)
	var err error
	if d.Kind == KindSymlink {
		err = unix.Lsetxattr(real, name, value, flags)
	} else {
		err = unix.Setxattr(real, name, value, flags)
	}
	if err != nil {
		return errnoStatus(err)
	}
	return 0
}

// Getxattr reads an extended attribute; with a nil dest it returns the
// value size, matching the syscall probing convention.
func (h *HFS) Getxattr(path, name string, dest []byte) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.log.Debug("getxattr", "path", path, "name", name)

	d := h.findDentry(path)
	if d == nil {
		return statusOf(ErrNotFound)
	}
	real := h.resolvePath(d, path)
	var n int
	var err error
	if d.Kind == KindSymlink {
		n, err = unix.Lgetxattr(real, name, dest)
	} else {
		n, err = unix.Getxattr(real, name, dest)
	}
	if err != nil {
		return errnoStatus(err)
	}
	return n
}

// Listxattr lists extended attribute names on the resolved backing path.
func (h *HFS) Listxattr(path string, dest []byte) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.log.Debug("listxattr", "path", path)

	d := h.findDentry(path)
	if d == nil {
		return statusOf(ErrNotFound)
	}
	real := h.resolvePath(d, path)
	var n int
	var err error
	if d.Kind == KindSymlink {
		n, err = unix.Llistxattr(real, dest)
	} else {
		n, err = unix.Listxattr(real, dest)
	}
	if err != nil {
		return errnoStatus(err)
	}
	return n
}

// Removexattr removes an extended attribute from the resolved path.
func (h *HFS) Removexattr(path, name string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.log.Debug("removexattr", "path", path, "name", name)

	d := h.findDentry(path)
	if d == nil {
		return statusOf(ErrNotFound)
	}
	real := h.resolvePath(d, path)
	var err error
	if d.Kind == KindSymlink {
		err = unix.Lremovexattr(real, name)
	} else {
		err = unix.Removexattr(real, name)
	}
	if err != nil {
		return errnoStatus(err)
	}
	return 0
}

// DirEntry is one readdir result: the child's name and the stat of its
// resolved backing path.
type DirEntry struct {
	Name string
	Kind FileKind
	Stat unix.Stat_t
}

// Readdir lists "." and ".." followed by the directory's children, each
// stat'ed on its resolved tier.
func (h *HFS) Readdir(path string) ([]DirEntry, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.log.Debug("readdir", "path", path)

	d := h.findDentry(path)
	if d == nil {
		return nil, statusOf(ErrNotFound)
	}
	if d.Kind != KindDirectory {
		return nil, statusOf(ErrNotDir)
	}

	entries := make([]DirEntry, 0, len(d.Children)+2)

	var self unix.Stat_t
	if err := unix.Stat(h.cfg.FastRoot+path, &self); err != nil {
		return nil, errnoStatus(err)
	}
	entries = append(entries, DirEntry{Name: ".", Kind: KindDirectory, Stat: self})

	parent := self
	if d.Parent != nil {
		parentPath := logicalPath(d.Parent)
		if err := unix.Stat(h.cfg.FastRoot+parentPath, &parent); err != nil {
			return nil, errnoStatus(err)
		}
	}
	entries = append(entries, DirEntry{Name: "..", Kind: KindDirectory, Stat: parent})

	childBase := path
	if childBase == "/" {
		childBase = ""
	}
	for name, child := range d.Children {
		var st unix.Stat_t
		real := h.resolvePath(child, childBase+"/"+name)
		if err := unix.Lstat(real, &st); err != nil {
			h.log.Warn("readdir stat failed", "path", childBase+"/"+name, "err", err)
			continue
		}
		entries = append(entries, DirEntry{Name: name, Kind: child.Kind, Stat: st})
	}
	return entries, 0
}

// Access checks real-user permissions on the resolved backing path.
func (h *HFS) Access(path string, mask uint32) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.log.Debug("access", "path", path, "mask", mask)

	d := h.findDentry(path)
	if d == nil {
		return statusOf(ErrNotFound)
	}
	if err := unix.Access(h.resolvePath(d, path), mask); err != nil {
		return errnoStatus(err)
	}
	return 0
}

// Utimens sets access and modification times on the resolved backing
// path, following symlinks as POSIX utimensat does by default.
func (h *HFS) Utimens(path string, ts []unix.Timespec) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.log.Debug("utimens", "path", path)

	d := h.findDentry(path)
	if d == nil {
		return statusOf(ErrNotFound)
	}
	if err := unix.UtimesNanoAt(unix.AT_FDCWD, h.resolvePath(d, path), ts, 0); err != nil {
		return errnoStatus(err)
	}
	return 0
}

// CopyFileRange copies size bytes between two regular files, which may
// sit on different tiers, then runs the migration policy on the
// destination. Returns the number of bytes copied.
func (h *HFS) CopyFileRange(inPath string, offIn int64, outPath string, offOut int64, size uint64, flags int) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.log.Debug("copy_file_range", "in", inPath, "out", outPath, "size", size)

	din := h.findDentry(inPath)
	if din == nil {
		return statusOf(ErrNotFound)
	}
	dout := h.findDentry(outPath)
	if dout == nil {
		return statusOf(ErrNotFound)
	}
	if din.Kind != KindRegular || dout.Kind != KindRegular {
		return statusOf(ErrInvalidKind)
	}

	in, err := os.Open(h.resolvePath(din, inPath))
	if err != nil {
		return errnoStatus(err)
	}
	defer in.Close()
	out, err := os.OpenFile(h.resolvePath(dout, outPath), os.O_WRONLY, 0)
	if err != nil {
		return errnoStatus(err)
	}
	defer out.Close()

	n, err := unix.CopyFileRange(int(in.Fd()), &offIn, int(out.Fd()), &offOut, int(size), flags)
	if err != nil {
		// The tiers usually sit on different filesystems, where older
		// kernels refuse copy_file_range with EXDEV.
		if !errors.Is(err, syscall.EXDEV) {
			return errnoStatus(err)
		}
		n, err = crossDeviceCopy(in, offIn, out, offOut, int64(size))
		if err != nil {
			return errnoStatus(err)
		}
	}

	h.maybeMigrate(dout, outPath)
	return n
}

// crossDeviceCopy is the userspace fallback when the kernel cannot copy
// between the two backing filesystems directly.
func crossDeviceCopy(in *os.File, offIn int64, out *os.File, offOut int64, size int64) (int, error) {
	buf := make([]byte, 128*1024)
	var copied int64
	for copied < size {
		chunk := int64(len(buf))
		if size-copied < chunk {
			chunk = size - copied
		}
		n, err := in.ReadAt(buf[:chunk], offIn+copied)
		if n > 0 {
			if _, werr := out.WriteAt(buf[:n], offOut+copied); werr != nil {
				return int(copied), werr
			}
			copied += int64(n)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return int(copied), err
		}
	}
	return int(copied), nil
}

// Lseek repositions the handle's file offset. There is no meaningful
// seek without an open handle.
func (h *HFS) Lseek(off int64, whence int, fh uint64) (int64, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.log.Debug("lseek", "offset", off, "whence", whence, "fh", fh)

	f := h.handles.get(fh)
	if f == nil {
		return 0, statusOf(ErrInvalidHandle)
	}
	pos, err := unix.Seek(int(f.Fd()), off, whence)
	if err != nil {
		return 0, errnoStatus(err)
	}
	return pos, 0
}
