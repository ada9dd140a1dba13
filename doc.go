// Package main provides the tierfs command-line interface.
//
// tierfs is a FUSE-based hybrid tiered-storage filesystem. It presents
// one POSIX namespace backed by two directory trees: a fast tier for
// solid-state media and a slow tier for rotational media. Regular files
// migrate between tiers as their size crosses configurable thresholds;
// directories are mirrored on both tiers.
//
// The main binary supports multiple subcommands:
//   - mount: Mount a tierfs filesystem at a specified mountpoint
//   - validate: Check two backing trees against the placement invariants
//   - seed: Generate test files sized around the migration thresholds
package main
