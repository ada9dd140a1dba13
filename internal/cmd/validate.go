package cmd

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

// NewValidateCmd creates and returns the validate subcommand for the
// tierfs CLI. It checks a pair of backing trees against the placement
// invariants without mounting.
func NewValidateCmd() *cobra.Command {
	var (
		fastRoot string
		slowRoot string
		verbose  bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check two backing trees against the tierfs placement invariants",
		Long: `Check a fast/slow backing-root pair for placement violations.

This command verifies that every directory is mirrored on both tiers
with identical mode bits, that every regular file exists on exactly one
tier, and that symlinks live on the fast tier only. It is an offline
checker: run it against the backing roots of an unmounted filesystem.`,
		Run: func(cmd *cobra.Command, args []string) {
			runValidate(fastRoot, slowRoot, verbose)
		},
	}

	cmd.Flags().StringVar(&fastRoot, "fast", "", "Path to the fast backing root (required)")
	cmd.Flags().StringVar(&slowRoot, "slow", "", "Path to the slow backing root (required)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	cmd.MarkFlagRequired("fast")
	cmd.MarkFlagRequired("slow")

	return cmd
}

func runValidate(fastRoot, slowRoot string, verbose bool) {
	for _, root := range []string{fastRoot, slowRoot} {
		if _, err := os.Stat(root); os.IsNotExist(err) {
			log.Fatalf("Backing root does not exist: %s", root)
		}
	}

	if verbose {
		fmt.Printf("Validating backing pair fast=%s slow=%s\n", fastRoot, slowRoot)
	}

	var violations []string

	// Fast side: directories must be mirrored, regular files must be
	// absent from the slow side.
	err := filepath.WalkDir(fastRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel := strings.TrimPrefix(path, fastRoot)
		if rel == "" {
			return nil
		}
		other := filepath.Join(slowRoot, rel)

		switch {
		case d.IsDir():
			violations = append(violations, checkMirror(path, other, rel)...)
		case d.Type()&fs.ModeSymlink != 0:
			if _, err := os.Lstat(other); err == nil {
				violations = append(violations, fmt.Sprintf("symlink %s also present on slow tier", rel))
			}
		default:
			if _, err := os.Lstat(other); err == nil {
				violations = append(violations, fmt.Sprintf("regular file %s present on both tiers", rel))
			}
		}
		return nil
	})
	if err != nil {
		log.Fatalf("Error walking fast root: %v", err)
	}

	// Slow side: every directory must exist on the fast side too, and
	// symlinks are not allowed here at all.
	err = filepath.WalkDir(slowRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel := strings.TrimPrefix(path, slowRoot)
		if rel == "" {
			return nil
		}
		switch {
		case d.IsDir():
			if _, err := os.Stat(filepath.Join(fastRoot, rel)); err != nil {
				violations = append(violations, fmt.Sprintf("directory %s missing from fast tier", rel))
			}
		case d.Type()&fs.ModeSymlink != 0:
			violations = append(violations, fmt.Sprintf("symlink %s on slow tier", rel))
		}
		return nil
	})
	if err != nil {
		log.Fatalf("Error walking slow root: %v", err)
	}

	fmt.Printf("\nValidation complete:\n")
	fmt.Printf("  Violations: %d\n", len(violations))
	for _, v := range violations {
		fmt.Printf("  - %s\n", v)
	}

	if len(violations) > 0 {
		os.Exit(1)
	}
}

// checkMirror verifies that a fast-tier directory has a slow-tier twin
// with the same mode bits.
func checkMirror(fastPath, slowPath, rel string) []string {
	var violations []string
	fastInfo, err := os.Stat(fastPath)
	if err != nil {
		return []string{fmt.Sprintf("stat %s: %v", rel, err)}
	}
	slowInfo, err := os.Stat(slowPath)
	if err != nil {
		return []string{fmt.Sprintf("directory %s missing from slow tier", rel)}
	}
	if !slowInfo.IsDir() {
		return []string{fmt.Sprintf("%s is a directory on fast but not on slow", rel)}
	}
	if fastInfo.Mode().Perm() != slowInfo.Mode().Perm() {
		violations = append(violations, fmt.Sprintf("directory %s mode mismatch: fast %o, slow %o",
			rel, fastInfo.Mode().Perm(), slowInfo.Mode().Perm()))
	}
	return violations
}
