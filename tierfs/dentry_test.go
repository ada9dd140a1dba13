package tierfs

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
)

// newBareHFS builds an HFS with an in-memory tree only, for index tests
// that never touch backing storage.
func newBareHFS() *HFS {
	return &HFS{
		cfg:     Config{FastRoot: "/fast", SlowRoot: "/slow", FastUpperLimit: 1024, SlowLowerLimit: 256},
		root:    newRootDentry(),
		handles: newHandleTable(),
		log:     log.New(io.Discard),
	}
}

func TestRootDentryShape(t *testing.T) {
	h := newBareHFS()

	if h.root.Name != "" {
		t.Errorf("root name = %q, want empty", h.root.Name)
	}
	if h.root.Kind != KindDirectory {
		t.Errorf("root kind = %v, want directory", h.root.Kind)
	}
	if h.root.Tier != TierNone {
		t.Errorf("root tier = %v, want none", h.root.Tier)
	}
	if h.root.Parent != nil {
		t.Error("root must have no parent")
	}
	if h.root.Children == nil {
		t.Error("root must have a children map")
	}
}

func TestFindDentry(t *testing.T) {
	h := newBareHFS()
	a := newDentry("a", KindDirectory, TierNone)
	insertChild(h.root, "a", a)
	f := newDentry("f", KindRegular, TierFast)
	insertChild(a, "f", f)

	tests := []struct {
		path string
		want *Dentry
	}{
		{"/", h.root},
		{"/a", a},
		{"/a/f", f},
		{"/a/f/deeper", nil}, // regular file in the middle of the walk
		{"/missing", nil},
		{"/a/missing", nil},
	}

	for _, tt := range tests {
		if got := h.findDentry(tt.path); got != tt.want {
			t.Errorf("findDentry(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestFindParentDentry(t *testing.T) {
	h := newBareHFS()
	a := newDentry("a", KindDirectory, TierNone)
	insertChild(h.root, "a", a)
	f := newDentry("f", KindRegular, TierFast)
	insertChild(a, "f", f)

	tests := []struct {
		path string
		want *Dentry
	}{
		{"/new", h.root},
		{"/a/new", a},
		{"/a/f/new", nil}, // parent is a regular file
		{"/missing/new", nil},
	}

	for _, tt := range tests {
		if got := h.findParentDentry(tt.path); got != tt.want {
			t.Errorf("findParentDentry(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestInsertRemoveChild(t *testing.T) {
	h := newBareHFS()
	d := newDentry("f", KindRegular, TierFast)
	insertChild(h.root, "f", d)

	if h.root.Children["f"] != d {
		t.Fatal("insertChild did not link the child")
	}
	if d.Parent != h.root {
		t.Fatal("insertChild did not set the parent back-reference")
	}

	got := removeChild(h.root, "f")
	if got != d {
		t.Fatal("removeChild returned the wrong dentry")
	}
	if _, ok := h.root.Children["f"]; ok {
		t.Fatal("removeChild left the name bound")
	}
	if d.Parent != nil {
		t.Fatal("removeChild left the parent pointer set")
	}

	if removeChild(h.root, "absent") != nil {
		t.Fatal("removing an absent name should return nil")
	}
}

func TestRenameChild(t *testing.T) {
	h := newBareHFS()
	a := newDentry("a", KindDirectory, TierNone)
	b := newDentry("b", KindDirectory, TierNone)
	insertChild(h.root, "a", a)
	insertChild(h.root, "b", b)
	f := newDentry("f", KindRegular, TierSlow)
	insertChild(a, "f", f)

	renameChild(a, "f", b, "g")

	if _, ok := a.Children["f"]; ok {
		t.Error("old binding survived rename")
	}
	if b.Children["g"] != f {
		t.Error("new binding missing after rename")
	}
	if f.Name != "g" || f.Parent != b {
		t.Error("dentry name/parent not rebound")
	}
	if f.Tier != TierSlow {
		t.Error("rename must not change tier")
	}
}

func TestTreeWellFormedness(t *testing.T) {
	h := newBareHFS()
	a := newDentry("a", KindDirectory, TierNone)
	insertChild(h.root, "a", a)
	insertChild(a, "b", newDentry("b", KindDirectory, TierNone))
	insertChild(a, "f", newDentry("f", KindRegular, TierFast))

	var check func(d *Dentry)
	check = func(d *Dentry) {
		for name, child := range d.Children {
			if child.Parent != d {
				t.Errorf("child %q has wrong parent", name)
			}
			if child.Name != name {
				t.Errorf("child bound under %q but named %q", name, child.Name)
			}
			check(child)
		}
	}
	check(h.root)
}

func TestFreeDentry(t *testing.T) {
	h := newBareHFS()
	a := newDentry("a", KindDirectory, TierNone)
	insertChild(h.root, "a", a)
	b := newDentry("b", KindDirectory, TierNone)
	insertChild(a, "b", b)
	insertChild(b, "f", newDentry("f", KindRegular, TierFast))

	freeDentry(h.root)

	if h.root.Children != nil {
		t.Error("freeDentry left the root children map")
	}
	if a.Children != nil || b.Children != nil {
		t.Error("freeDentry left descendant children maps")
	}
}

func TestLogicalPath(t *testing.T) {
	h := newBareHFS()
	a := newDentry("a", KindDirectory, TierNone)
	insertChild(h.root, "a", a)
	f := newDentry("f", KindRegular, TierFast)
	insertChild(a, "f", f)

	if got := logicalPath(h.root); got != "/" {
		t.Errorf("logicalPath(root) = %q, want /", got)
	}
	if got := logicalPath(a); got != "/a" {
		t.Errorf("logicalPath(a) = %q, want /a", got)
	}
	if got := logicalPath(f); got != "/a/f" {
		t.Errorf("logicalPath(f) = %q, want /a/f", got)
	}
}
