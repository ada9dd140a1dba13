package cmd

import (
	"github.com/dendrascience/dendra-tier-fuse/version"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root cobra command for the tierfs CLI.
// It sets up all subcommands, command groups, and basic configuration.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tierfs",
		Short: "tierfs - A FUSE-based hybrid tiered-storage filesystem",
		Long: `tierfs is a FUSE-based filesystem that spreads one POSIX namespace
across two backing directories: a fast tier (solid-state media) and a
slow tier (rotational media). Regular files migrate between tiers as
they cross configurable size thresholds; directories are mirrored on
both tiers so metadata operations behave identically everywhere.

Use subcommands to perform different operations:
  - mount: Mount a tierfs filesystem at a specified mountpoint
  - validate: Check two backing trees against the placement invariants
  - seed: Generate test files sized around the migration thresholds`,
		Version: version.Get().String(),
	}

	groupUtilities := "utilities"
	groupFilesystem := "filesystem"

	// Add command groups for better organization
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupFilesystem,
		Title: "Filesystem Operations",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utility Commands",
	})

	mountCmd := NewMountCmd()
	validateCmd := NewValidateCmd()
	seedCmd := NewSeedCmd()

	mountCmd.GroupID = groupFilesystem
	validateCmd.GroupID = groupUtilities
	seedCmd.GroupID = groupUtilities

	// Add subcommands
	rootCmd.AddCommand(mountCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(seedCmd)

	return rootCmd
}
