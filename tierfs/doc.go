// Package tierfs implements a FUSE-based hybrid tiered-storage filesystem.
//
// The filesystem presents one POSIX namespace while physically storing
// each regular file on one of two backing directory trees: a fast tier
// meant for solid-state media and a slow tier meant for rotational
// media. Placement is driven by size thresholds with hysteresis: a
// fast-tier file that grows to the upper limit migrates to the slow
// tier, and a slow-tier file that shrinks to the lower limit migrates
// back. Directories are mirrored on both tiers with identical mode
// bits; symlinks live on the fast tier only.
//
// Key pieces:
//   - Dentry: the in-memory directory tree, one entry per visible name,
//     children owned by their parent with weak parent back-references
//   - HFS: the operation dispatcher; one handler per host operation,
//     path-based, returning negated errno values
//   - Migration policy: runs after write, truncate, and copy_file_range;
//     moves are advisory and never fail the triggering operation
//   - FS/Dir/File/Symlink: the bazil.org/fuse adapter over the dispatcher
//
// The design is single-threaded cooperative. A single mutex serializes
// handlers, so the dentry tree needs no finer locking and observable
// state is consistent at every handler boundary.
//
// The main entry point is NewHFS(), which wipes and recreates the
// backing roots; wrap the result in NewFS() to serve it with
// bazil.org/fuse.
package tierfs
