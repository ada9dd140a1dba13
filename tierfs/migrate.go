package tierfs

import (
	"os"

	"github.com/dendrascience/dendra-tier-fuse/util"
)

// maybeMigrate runs the placement policy for a regular file after a
// data-changing operation. A fast-tier file whose size reached
// FastUpperLimit moves to the slow tier; a slow-tier file that shrank
// to SlowLowerLimit moves back. Equality with either bound triggers the
// move.
//
// Migration is advisory: if the move fails the dentry keeps its current
// tier, a diagnostic is logged, and the triggering operation still
// reports success.
func (h *HFS) maybeMigrate(d *Dentry, path string) {
	if d.Kind != KindRegular {
		return
	}

	cur := h.resolvePath(d, path)
	info, err := os.Stat(cur)
	if err != nil {
		h.log.Warn("migration stat failed", "path", path, "err", err)
		return
	}
	size := info.Size()

	var target Tier
	switch {
	case d.Tier == TierFast && size >= h.cfg.FastUpperLimit:
		target = TierSlow
	case d.Tier == TierSlow && size <= h.cfg.SlowLowerLimit:
		target = TierFast
	default:
		return
	}

	dst := h.tierPath(target, path)
	if err := util.MoveFile(cur, dst); err != nil {
		h.log.Warn("migration failed, file stays on current tier",
			"path", path, "from", d.Tier, "to", target, "size", size, "err", err)
		return
	}

	h.log.Debug("migrated", "path", path, "from", d.Tier, "to", target, "size", size)
	d.Tier = target
}
