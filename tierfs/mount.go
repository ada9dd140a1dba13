package tierfs

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
)

// NewHFS validates the configuration, wipes and recreates both backing
// roots, and installs the root dentry. The backing trees start empty on
// every mount; the dentry tree is volatile by design.
func NewHFS(cfg Config, logger *log.Logger) (*HFS, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}

	if err := resetRoot(cfg.FastRoot); err != nil {
		return nil, fmt.Errorf("init fast root: %w", err)
	}
	if err := resetRoot(cfg.SlowRoot); err != nil {
		return nil, fmt.Errorf("init slow root: %w", err)
	}

	return &HFS{
		cfg:     cfg,
		root:    newRootDentry(),
		handles: newHandleTable(),
		log:     logger,
	}, nil
}

// resetRoot recursively deletes and recreates one backing root.
func resetRoot(root string) error {
	if err := os.RemoveAll(root); err != nil {
		return err
	}
	return os.MkdirAll(root, 0o755)
}

// Destroy tears the filesystem down: outstanding handles are closed and
// the dentry tree is freed depth-first, children before parents.
func (h *HFS) Destroy() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.handles.closeAll()
	freeDentry(h.root)
	h.root = nil
	h.log.Debug("destroyed")
}

// Config returns a copy of the mount configuration.
func (h *HFS) Config() Config {
	return h.cfg
}
