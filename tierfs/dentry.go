package tierfs

import (
	"github.com/dendrascience/dendra-tier-fuse/util"
)

// FileKind classifies a dentry.
type FileKind int8

const (
	KindRegular FileKind = iota
	KindDirectory
	KindSymlink
)

func (k FileKind) String() string {
	switch k {
	case KindRegular:
		return "regular"
	case KindDirectory:
		return "directory"
	case KindSymlink:
		return "symlink"
	}
	return "unknown"
}

// Tier identifies which backing root holds a regular file. Directories
// and symlinks are not tier-bound: directories are mirrored on both
// roots and symlinks always live on the fast root.
type Tier int8

const (
	TierNone Tier = iota
	TierFast
	TierSlow
)

func (t Tier) String() string {
	switch t {
	case TierFast:
		return "fast"
	case TierSlow:
		return "slow"
	}
	return "none"
}

// Dentry is an in-memory directory entry, one per name visible in the
// namespace. Children are owned by their parent; the Parent pointer is
// a non-owning back-reference used to rebind on rename.
type Dentry struct {
	Name     string
	Kind     FileKind
	Tier     Tier
	Inode    uint64
	Parent   *Dentry
	Children map[string]*Dentry // non-nil iff Kind == KindDirectory
}

// newDentry allocates a dentry with a fresh inode. Directory dentries
// get an empty children map.
func newDentry(name string, kind FileKind, tier Tier) *Dentry {
	d := &Dentry{
		Name:  name,
		Kind:  kind,
		Tier:  tier,
		Inode: util.NextInode(),
	}
	if kind == KindDirectory {
		d.Children = make(map[string]*Dentry)
	}
	return d
}

// newRootDentry builds the tree root: empty name, directory, inode 1.
func newRootDentry() *Dentry {
	return &Dentry{
		Name:     "",
		Kind:     KindDirectory,
		Tier:     TierNone,
		Inode:    util.RootInode,
		Children: make(map[string]*Dentry),
	}
}

// findDentry walks the tree from the root following the components of
// path. It returns nil if any intermediate component is missing or
// names a non-directory.
func (h *HFS) findDentry(path string) *Dentry {
	d := h.root
	for _, name := range util.SplitPath(path) {
		if d.Kind != KindDirectory {
			return nil
		}
		child, ok := d.Children[name]
		if !ok {
			return nil
		}
		d = child
	}
	return d
}

// findParentDentry resolves the directory that would contain the final
// component of path. For "/a/b/c" it returns the dentry for "/a/b"; for
// a single component it returns the root.
func (h *HFS) findParentDentry(path string) *Dentry {
	names := util.SplitPath(path)
	d := h.root
	for i := 0; i+1 < len(names); i++ {
		if d.Kind != KindDirectory {
			return nil
		}
		child, ok := d.Children[names[i]]
		if !ok {
			return nil
		}
		d = child
	}
	if d.Kind != KindDirectory {
		return nil
	}
	return d
}

// insertChild links child into parent under name. The caller must have
// checked that name is free.
func insertChild(parent *Dentry, name string, child *Dentry) {
	child.Name = name
	child.Parent = parent
	parent.Children[name] = child
}

// removeChild detaches the named child from parent and returns it. The
// caller is responsible for freeing the child's own subtree first.
func removeChild(parent *Dentry, name string) *Dentry {
	child, ok := parent.Children[name]
	if !ok {
		return nil
	}
	delete(parent.Children, name)
	child.Parent = nil
	return child
}

// renameChild atomically rebinds a dentry from (oldParent, oldName) to
// (newParent, newName). Any existing entry under the new name must have
// been removed by the caller beforehand.
func renameChild(oldParent *Dentry, oldName string, newParent *Dentry, newName string) {
	child := oldParent.Children[oldName]
	delete(oldParent.Children, oldName)
	child.Name = newName
	child.Parent = newParent
	newParent.Children[newName] = child
}

// freeDentry releases a dentry subtree depth-first, children before
// parents, breaking parent links so nothing dangles.
func freeDentry(d *Dentry) {
	if d == nil {
		return
	}
	for name, child := range d.Children {
		freeDentry(child)
		delete(d.Children, name)
	}
	d.Parent = nil
	d.Children = nil
}

// logicalPath reconstructs the absolute logical path of a dentry by
// walking parent links. The root yields "/".
func logicalPath(d *Dentry) string {
	if d.Parent == nil {
		return "/"
	}
	var names []string
	for cur := d; cur.Parent != nil; cur = cur.Parent {
		names = append(names, cur.Name)
	}
	path := ""
	for i := len(names) - 1; i >= 0; i-- {
		path += "/" + names[i]
	}
	return path
}
