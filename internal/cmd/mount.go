package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"
	_ "bazil.org/fuse/fs/fstestutil"
	"github.com/charmbracelet/log"
	"github.com/dendrascience/dendra-tier-fuse/tierfs"
	"github.com/dendrascience/dendra-tier-fuse/version"
	"github.com/spf13/cobra"
)

// NewMountCmd creates and returns the mount subcommand for the tierfs CLI.
// It wires the configuration flags and mounts the filesystem.
func NewMountCmd() *cobra.Command {
	var (
		configPath     string
		fastUpperLimit int64
		slowLowerLimit int64
		debug          bool
	)

	cmd := &cobra.Command{
		Use:   "mount FAST_PATH SLOW_PATH MOUNTPOINT",
		Short: "Mount a tierfs filesystem",
		Long: `Mount a tierfs filesystem at the specified mountpoint.

FAST_PATH and SLOW_PATH are the two backing directory roots; both are
wiped and recreated at mount time. MOUNTPOINT is the directory where
the filesystem will appear.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := tierfs.DefaultConfig()
			if configPath != "" {
				var err error
				cfg, err = tierfs.LoadConfig(configPath)
				if err != nil {
					return err
				}
			}
			cfg.FastRoot = args[0]
			cfg.SlowRoot = args[1]
			cfg.MountPoint = args[2]
			if pathsOverlap(cfg.FastRoot, cfg.SlowRoot) {
				return fmt.Errorf("fast and slow roots overlap: %s vs %s", cfg.FastRoot, cfg.SlowRoot)
			}
			if pathsOverlap(cfg.MountPoint, cfg.FastRoot) || pathsOverlap(cfg.MountPoint, cfg.SlowRoot) {
				return fmt.Errorf("mountpoint %s overlaps a backing root", cfg.MountPoint)
			}
			if cmd.Flags().Changed("fast-upper-limit") {
				cfg.FastUpperLimit = fastUpperLimit
			}
			if cmd.Flags().Changed("slow-lower-limit") {
				cfg.SlowLowerLimit = slowLowerLimit
			}
			if cmd.Flags().Changed("debug") {
				cfg.Debug = debug
			}
			return runMount(cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
	cmd.Flags().Int64Var(&fastUpperLimit, "fast-upper-limit", tierfs.DefaultFastUpperLimit,
		"Size in bytes at which a fast-tier file migrates to the slow tier")
	cmd.Flags().Int64Var(&slowLowerLimit, "slow-lower-limit", tierfs.DefaultSlowLowerLimit,
		"Size in bytes at which a slow-tier file migrates back to the fast tier")
	cmd.Flags().BoolVarP(&debug, "debug", "d", false, "Enable per-operation trace logging")

	return cmd
}

// pathsOverlap reports whether one path is equal to or nested inside
// the other. Mounting over a backing root would make the filesystem
// recurse into itself.
func pathsOverlap(path1, path2 string) bool {
	p1 := filepath.Clean(path1)
	p2 := filepath.Clean(path2)
	if p1 == p2 {
		return true
	}
	nested := func(child, parent string) bool {
		rel, err := filepath.Rel(parent, child)
		return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
	}
	return nested(p1, p2) || nested(p2, p1)
}

func runMount(cfg tierfs.Config) error {
	// Print version info on startup
	fmt.Printf("tierfs %s starting...\n", version.Get())

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "tierfs",
	})
	if cfg.Debug {
		logger.SetLevel(log.DebugLevel)
	}

	core, err := tierfs.NewHFS(cfg, logger)
	if err != nil {
		return err
	}

	c, err := fuse.Mount(
		cfg.MountPoint,
		fuse.FSName("tierfs"),
		fuse.Subtype("tierfs"),
	)
	if err != nil {
		return err
	}
	defer c.Close()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	go func() {
		<-sigChan
		logger.Info("received interrupt signal, shutting down...")

		// Tear the core down before the mountpoint disappears
		core.Destroy()

		fuse.Unmount(cfg.MountPoint)
		c.Close()

		logger.Info("shutdown complete")
		os.Exit(0)
	}()

	logger.Info("mounted", "mountpoint", cfg.MountPoint,
		"fast", cfg.FastRoot, "slow", cfg.SlowRoot,
		"fast_upper_limit", cfg.FastUpperLimit, "slow_lower_limit", cfg.SlowLowerLimit)
	return fs.Serve(c, tierfs.NewFS(core))
}
