// Package util provides core utilities for the tierfs filesystem.
//
// This package contains the leaf building blocks the core depends on:
// logical path splitting, the cross-tier file move used by migration,
// and the process-wide inode counter.
//
// Path handling:
//   - SplitPath decomposes logical paths into name components
//   - NormalizeRoot canonicalizes backing root paths for concatenation
//
// Cross-tier moves:
//   - MoveFile renames when the tiers share a filesystem and falls back
//     to copy-and-unlink on EXDEV, carrying mode bits, ownership,
//     timestamps, and xattrs across
//
// Inode numbering:
//   - NextInode hands out monotonically increasing inode numbers;
//     inode 1 is reserved for the mount root
package util
