package tierfs

import (
	"context"
	"os"
	"syscall"
	"time"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"
	"golang.org/x/sys/unix"
)

// FS adapts the dispatcher to the bazil.org/fuse serving loop. Each
// node carries its logical path; the dispatcher owns all state.
type FS struct {
	h *HFS
}

// NewFS wraps a mounted HFS core for fs.Serve.
func NewFS(h *HFS) *FS {
	return &FS{h: h}
}

// Root returns the root directory node.
func (f *FS) Root() (fs.Node, error) {
	return &Dir{h: f.h, path: "/"}, nil
}

// DentryMeta reports the kind and inode of the dentry at path. The FUSE
// adapter uses it to pick node types; the stable dentry inode survives
// cross-tier migration where the backing inode does not.
func (h *HFS) DentryMeta(path string) (FileKind, uint64, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	d := h.findDentry(path)
	if d == nil {
		return 0, 0, false
	}
	return d.Kind, d.Inode, true
}

// errnoErr converts a dispatcher status into the error bazil expects.
func errnoErr(ret int) error {
	if ret >= 0 {
		return nil
	}
	return syscall.Errno(-ret)
}

// childPath joins a directory's logical path with a child name.
func childPath(dir, name string) string {
	if dir == "/" {
		return "/" + name
	}
	return dir + "/" + name
}

// nodeFor builds the node matching a dentry kind.
func nodeFor(h *HFS, kind FileKind, path string) fs.Node {
	switch kind {
	case KindDirectory:
		return &Dir{h: h, path: path}
	case KindSymlink:
		return &Symlink{h: h, path: path}
	}
	return &File{h: h, path: path}
}

// fillAttr maps a backing stat onto FUSE attributes, keeping the stable
// dentry inode.
func fillAttr(a *fuse.Attr, st *unix.Stat_t, inode uint64) {
	a.Inode = inode
	a.Size = uint64(st.Size)
	a.Blocks = uint64(st.Blocks)
	a.Mode = modeFromStat(st)
	a.Nlink = uint32(st.Nlink)
	a.Uid = st.Uid
	a.Gid = st.Gid
	a.Atime = time.Unix(st.Atim.Sec, st.Atim.Nsec)
	a.Mtime = time.Unix(st.Mtim.Sec, st.Mtim.Nsec)
	a.Ctime = time.Unix(st.Ctim.Sec, st.Ctim.Nsec)
	a.BlockSize = uint32(st.Blksize)
}

func modeFromStat(st *unix.Stat_t) os.FileMode {
	mode := os.FileMode(st.Mode & 0o777)
	switch st.Mode & unix.S_IFMT {
	case unix.S_IFDIR:
		mode |= os.ModeDir
	case unix.S_IFLNK:
		mode |= os.ModeSymlink
	}
	if st.Mode&unix.S_ISUID != 0 {
		mode |= os.ModeSetuid
	}
	if st.Mode&unix.S_ISGID != 0 {
		mode |= os.ModeSetgid
	}
	if st.Mode&unix.S_ISVTX != 0 {
		mode |= os.ModeSticky
	}
	return mode
}

// Dir is a directory node identified by its logical path.
type Dir struct {
	h    *HFS
	path string
}

// Attr stats the fast mirror of the directory.
func (d *Dir) Attr(ctx context.Context, a *fuse.Attr) error {
	var st unix.Stat_t
	if ret := d.h.Getattr(d.path, &st, 0); ret < 0 {
		return errnoErr(ret)
	}
	_, inode, ok := d.h.DentryMeta(d.path)
	if !ok {
		return syscall.ENOENT
	}
	fillAttr(a, &st, inode)
	return nil
}

// Lookup resolves a child name to a node.
func (d *Dir) Lookup(ctx context.Context, name string) (fs.Node, error) {
	path := childPath(d.path, name)
	kind, _, ok := d.h.DentryMeta(path)
	if !ok {
		return nil, syscall.ENOENT
	}
	return nodeFor(d.h, kind, path), nil
}

// Mkdir creates the directory on both tiers.
func (d *Dir) Mkdir(ctx context.Context, req *fuse.MkdirRequest) (fs.Node, error) {
	path := childPath(d.path, req.Name)
	if ret := d.h.Mkdir(path, uint32(req.Mode.Perm())); ret < 0 {
		return nil, errnoErr(ret)
	}
	return &Dir{h: d.h, path: path}, nil
}

// Create places a new regular file on the fast tier.
func (d *Dir) Create(ctx context.Context, req *fuse.CreateRequest, resp *fuse.CreateResponse) (fs.Node, fs.Handle, error) {
	path := childPath(d.path, req.Name)
	fh, ret := d.h.Create(path, uint32(req.Mode.Perm()))
	if ret < 0 {
		return nil, nil, errnoErr(ret)
	}
	file := &File{h: d.h, path: path}
	return file, &FileHandle{h: d.h, path: path, fh: fh}, nil
}

// Remove handles both unlink and rmdir, selected by the request.
func (d *Dir) Remove(ctx context.Context, req *fuse.RemoveRequest) error {
	path := childPath(d.path, req.Name)
	if req.Dir {
		return errnoErr(d.h.Rmdir(path))
	}
	return errnoErr(d.h.Unlink(path))
}

// Rename rebinds a child into the destination directory.
func (d *Dir) Rename(ctx context.Context, req *fuse.RenameRequest, newDir fs.Node) error {
	nd, ok := newDir.(*Dir)
	if !ok {
		return syscall.ENOTDIR
	}
	oldPath := childPath(d.path, req.OldName)
	newPath := childPath(nd.path, req.NewName)
	return errnoErr(d.h.Rename(oldPath, newPath, 0))
}

// Symlink creates a fast-tier symlink.
func (d *Dir) Symlink(ctx context.Context, req *fuse.SymlinkRequest) (fs.Node, error) {
	path := childPath(d.path, req.NewName)
	if ret := d.h.Symlink(req.Target, path); ret < 0 {
		return nil, errnoErr(ret)
	}
	return &Symlink{h: d.h, path: path}, nil
}

// Link hard-links an existing non-directory into this directory.
func (d *Dir) Link(ctx context.Context, req *fuse.LinkRequest, old fs.Node) (fs.Node, error) {
	var oldPath string
	switch n := old.(type) {
	case *File:
		oldPath = n.path
	case *Symlink:
		oldPath = n.path
	default:
		return nil, syscall.EPERM
	}
	newPath := childPath(d.path, req.NewName)
	if ret := d.h.Link(oldPath, newPath); ret < 0 {
		return nil, errnoErr(ret)
	}
	kind, _, ok := d.h.DentryMeta(newPath)
	if !ok {
		return nil, syscall.EIO
	}
	return nodeFor(d.h, kind, newPath), nil
}

// Setattr applies mode and ownership changes to both of the directory's
// mirrors and timestamp changes to the fast mirror.
func (d *Dir) Setattr(ctx context.Context, req *fuse.SetattrRequest, resp *fuse.SetattrResponse) error {
	if err := applySetattr(d.h, d.path, req); err != nil {
		return err
	}
	return d.Attr(ctx, &resp.Attr)
}

// Access checks permissions against the fast mirror.
func (d *Dir) Access(ctx context.Context, req *fuse.AccessRequest) error {
	return errnoErr(d.h.Access(d.path, req.Mask))
}

// ReadDirAll lists the directory's children.
func (d *Dir) ReadDirAll(ctx context.Context) ([]fuse.Dirent, error) {
	entries, ret := d.h.Readdir(d.path)
	if ret < 0 {
		return nil, errnoErr(ret)
	}
	dirents := make([]fuse.Dirent, 0, len(entries))
	for _, e := range entries {
		dt := fuse.DT_File
		switch e.Kind {
		case KindDirectory:
			dt = fuse.DT_Dir
		case KindSymlink:
			dt = fuse.DT_Link
		}
		dirents = append(dirents, fuse.Dirent{
			Inode: e.Stat.Ino,
			Name:  e.Name,
			Type:  dt,
		})
	}
	return dirents, nil
}

func (d *Dir) Setxattr(ctx context.Context, req *fuse.SetxattrRequest) error {
	return errnoErr(d.h.Setxattr(d.path, req.Name, req.Xattr, int(req.Flags)))
}

func (d *Dir) Getxattr(ctx context.Context, req *fuse.GetxattrRequest, resp *fuse.GetxattrResponse) error {
	return getxattrCommon(d.h, d.path, req, resp)
}

func (d *Dir) Listxattr(ctx context.Context, req *fuse.ListxattrRequest, resp *fuse.ListxattrResponse) error {
	return listxattrCommon(d.h, d.path, resp)
}

func (d *Dir) Removexattr(ctx context.Context, req *fuse.RemovexattrRequest) error {
	return errnoErr(d.h.Removexattr(d.path, req.Name))
}

// File is a regular-file node identified by its logical path.
type File struct {
	h    *HFS
	path string
}

// Attr stats the file on whichever tier holds it.
func (f *File) Attr(ctx context.Context, a *fuse.Attr) error {
	var st unix.Stat_t
	if ret := f.h.Getattr(f.path, &st, 0); ret < 0 {
		return errnoErr(ret)
	}
	_, inode, ok := f.h.DentryMeta(f.path)
	if !ok {
		return syscall.ENOENT
	}
	fillAttr(a, &st, inode)
	return nil
}

// Open opens the backing file and hands the host a handle.
func (f *File) Open(ctx context.Context, req *fuse.OpenRequest, resp *fuse.OpenResponse) (fs.Handle, error) {
	fh, ret := f.h.Open(f.path, int(req.Flags))
	if ret < 0 {
		return nil, errnoErr(ret)
	}
	return &FileHandle{h: f.h, path: f.path, fh: fh}, nil
}

// Setattr applies size (truncate plus migration), mode, ownership, and
// timestamp changes.
func (f *File) Setattr(ctx context.Context, req *fuse.SetattrRequest, resp *fuse.SetattrResponse) error {
	if req.Valid.Size() {
		if ret := f.h.Truncate(f.path, int64(req.Size)); ret < 0 {
			return errnoErr(ret)
		}
	}
	if err := applySetattr(f.h, f.path, req); err != nil {
		return err
	}
	return f.Attr(ctx, &resp.Attr)
}

// Fsync flushes without a handle context; the kernel sends fsync on the
// handle in practice, so a bare node fsync is a no-op.
func (f *File) Fsync(ctx context.Context, req *fuse.FsyncRequest) error {
	return nil
}

func (f *File) Setxattr(ctx context.Context, req *fuse.SetxattrRequest) error {
	return errnoErr(f.h.Setxattr(f.path, req.Name, req.Xattr, int(req.Flags)))
}

func (f *File) Getxattr(ctx context.Context, req *fuse.GetxattrRequest, resp *fuse.GetxattrResponse) error {
	return getxattrCommon(f.h, f.path, req, resp)
}

func (f *File) Listxattr(ctx context.Context, req *fuse.ListxattrRequest, resp *fuse.ListxattrResponse) error {
	return listxattrCommon(f.h, f.path, resp)
}

func (f *File) Removexattr(ctx context.Context, req *fuse.RemovexattrRequest) error {
	return errnoErr(f.h.Removexattr(f.path, req.Name))
}

// FileHandle is an open file: reads and writes go through the
// dispatcher's handle table so migration can re-point them.
type FileHandle struct {
	h    *HFS
	path string
	fh   uint64
}

func (fh *FileHandle) Read(ctx context.Context, req *fuse.ReadRequest, resp *fuse.ReadResponse) error {
	buf := make([]byte, req.Size)
	n := fh.h.Read(fh.path, buf, req.Offset, fh.fh)
	if n < 0 {
		return errnoErr(n)
	}
	resp.Data = buf[:n]
	return nil
}

func (fh *FileHandle) Write(ctx context.Context, req *fuse.WriteRequest, resp *fuse.WriteResponse) error {
	n := fh.h.Write(fh.path, req.Data, req.Offset, fh.fh)
	if n < 0 {
		return errnoErr(n)
	}
	resp.Size = n
	return nil
}

func (fh *FileHandle) Flush(ctx context.Context, req *fuse.FlushRequest) error {
	return errnoErr(fh.h.Flush(fh.fh))
}

func (fh *FileHandle) Release(ctx context.Context, req *fuse.ReleaseRequest) error {
	return errnoErr(fh.h.Release(fh.fh))
}

func (fh *FileHandle) Fsync(ctx context.Context, req *fuse.FsyncRequest) error {
	return errnoErr(fh.h.Fsync(fh.fh))
}

// Symlink is a symlink node; the backing link always lives on the fast
// tier.
type Symlink struct {
	h    *HFS
	path string
}

func (s *Symlink) Attr(ctx context.Context, a *fuse.Attr) error {
	var st unix.Stat_t
	if ret := s.h.Getattr(s.path, &st, 0); ret < 0 {
		return errnoErr(ret)
	}
	_, inode, ok := s.h.DentryMeta(s.path)
	if !ok {
		return syscall.ENOENT
	}
	fillAttr(a, &st, inode)
	return nil
}

func (s *Symlink) Readlink(ctx context.Context, req *fuse.ReadlinkRequest) (string, error) {
	target, ret := s.h.Readlink(s.path)
	if ret < 0 {
		return "", errnoErr(ret)
	}
	return target, nil
}

// applySetattr forwards the non-size parts of a setattr request to the
// dispatcher.
func applySetattr(h *HFS, path string, req *fuse.SetattrRequest) error {
	if req.Valid.Mode() {
		if ret := h.Chmod(path, uint32(req.Mode.Perm())); ret < 0 {
			return errnoErr(ret)
		}
	}
	if req.Valid.Uid() || req.Valid.Gid() {
		uid, gid := -1, -1
		if req.Valid.Uid() {
			uid = int(req.Uid)
		}
		if req.Valid.Gid() {
			gid = int(req.Gid)
		}
		if ret := h.Chown(path, uid, gid); ret < 0 {
			return errnoErr(ret)
		}
	}
	if req.Valid.Atime() || req.Valid.Mtime() {
		ts := []unix.Timespec{
			{Nsec: unix.UTIME_OMIT},
			{Nsec: unix.UTIME_OMIT},
		}
		if req.Valid.Atime() {
			ts[0] = unix.NsecToTimespec(req.Atime.UnixNano())
		}
		if req.Valid.Mtime() {
			ts[1] = unix.NsecToTimespec(req.Mtime.UnixNano())
		}
		if ret := h.Utimens(path, ts); ret < 0 {
			return errnoErr(ret)
		}
	}
	return nil
}

func getxattrCommon(h *HFS, path string, req *fuse.GetxattrRequest, resp *fuse.GetxattrResponse) error {
	size := h.Getxattr(path, req.Name, nil)
	if size < 0 {
		return errnoErr(size)
	}
	buf := make([]byte, size)
	n := h.Getxattr(path, req.Name, buf)
	if n < 0 {
		return errnoErr(n)
	}
	resp.Xattr = buf[:n]
	return nil
}

func listxattrCommon(h *HFS, path string, resp *fuse.ListxattrResponse) error {
	size := h.Listxattr(path, nil)
	if size < 0 {
		return errnoErr(size)
	}
	if size == 0 {
		return nil
	}
	buf := make([]byte, size)
	n := h.Listxattr(path, buf)
	if n < 0 {
		return errnoErr(n)
	}
	resp.Xattr = buf[:n]
	return nil
}
