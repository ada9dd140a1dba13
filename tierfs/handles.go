package tierfs

import (
	"os"
)

// handleTable tracks files opened on behalf of the host. Keys are dense
// uint64 counters handed back to the host as the FUSE file handle; the
// host owns the handle lifetime and closes it at release.
type handleTable struct {
	next  uint64
	files map[uint64]*os.File
}

func newHandleTable() *handleTable {
	return &handleTable{
		next:  1,
		files: make(map[uint64]*os.File),
	}
}

func (t *handleTable) put(f *os.File) uint64 {
	fh := t.next
	t.next++
	t.files[fh] = f
	return fh
}

func (t *handleTable) get(fh uint64) *os.File {
	return t.files[fh]
}

func (t *handleTable) drop(fh uint64) *os.File {
	f := t.files[fh]
	delete(t.files, fh)
	return f
}

// closeAll closes every outstanding handle at teardown.
func (t *handleTable) closeAll() {
	for fh, f := range t.files {
		f.Close()
		delete(t.files, fh)
	}
}
