package cmd

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/taigrr/colorhash"
)

// NewSeedCmd creates and returns the seed subcommand for the tierfs CLI.
// It generates test files with sizes straddling the migration thresholds.
func NewSeedCmd() *cobra.Command {
	var (
		outputPath     string
		fileCount      int
		fastUpperLimit int64
		slowLowerLimit int64
		buckets        int
		verbose        bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate test files sized around the migration thresholds",
		Long: `Generate test files for exercising tierfs migration.

File sizes are drawn so that roughly a third sit below the slow lower
limit, a third between the two limits, and a third at or above the fast
upper limit. Writing them through a mounted tierfs therefore drives
files onto both tiers. Files are spread across hash-bucket
subdirectories; each file is filled with repeated UUID lines.`,
		Run: func(cmd *cobra.Command, args []string) {
			runSeed(outputPath, fileCount, fastUpperLimit, slowLowerLimit, buckets, verbose)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Path to output directory (required)")
	cmd.Flags().IntVarP(&fileCount, "count", "n", 100, "Number of files to generate")
	cmd.Flags().Int64Var(&fastUpperLimit, "fast-upper-limit", 1024*1024,
		"Upper threshold to straddle, in bytes")
	cmd.Flags().Int64Var(&slowLowerLimit, "slow-lower-limit", 256*1024,
		"Lower threshold to straddle, in bytes")
	cmd.Flags().IntVar(&buckets, "buckets", 16, "Number of bucket subdirectories")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	cmd.MarkFlagRequired("output")

	return cmd
}

func runSeed(outputPath string, fileCount int, fastUpperLimit, slowLowerLimit int64, buckets int, verbose bool) {
	if verbose {
		fmt.Printf("Generating %d test files in %s\n", fileCount, outputPath)
	}

	if err := os.MkdirAll(outputPath, 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	filesCreated := 0
	bucketCounts := make(map[string]int)

	for filesCreated < fileCount {
		name := uuid.New().String()

		// Hash-bucket the file into a subdirectory so a large seed run
		// does not pile everything into one directory.
		bucket := int(colorhash.HashString(name)) % buckets
		dirPath := filepath.Join(outputPath, fmt.Sprintf("bucket-%02d", bucket))
		if err := os.MkdirAll(dirPath, 0755); err != nil {
			log.Printf("Warning: Failed to create directory %s: %v", dirPath, err)
			continue
		}

		size := pickSize(fastUpperLimit, slowLowerLimit)
		filePath := filepath.Join(dirPath, name+".dat")
		if err := os.WriteFile(filePath, uuidFill(name, size), 0644); err != nil {
			log.Printf("Warning: Failed to write file %s: %v", filePath, err)
			continue
		}

		bucketCounts[dirPath]++
		filesCreated++

		if verbose && filesCreated%50 == 0 {
			fmt.Printf("Created %d/%d files...\n", filesCreated, fileCount)
		}
	}

	if verbose {
		fmt.Printf("Successfully created %d files across %d buckets\n", filesCreated, len(bucketCounts))
	}
}

// pickSize draws a file size from one of three bands: below the lower
// limit, between the limits, or at/above the upper limit.
func pickSize(fastUpperLimit, slowLowerLimit int64) int64 {
	band, _ := rand.Int(rand.Reader, big.NewInt(3))
	jitter, _ := rand.Int(rand.Reader, big.NewInt(slowLowerLimit/2+1))

	switch band.Int64() {
	case 0:
		return jitter.Int64() // small: stays fast
	case 1:
		return slowLowerLimit + 1 + jitter.Int64() // middle: stable either way
	default:
		return fastUpperLimit + jitter.Int64() // large: forces migration
	}
}

// uuidFill builds size bytes of repeated "<uuid>\n" lines.
func uuidFill(name string, size int64) []byte {
	line := []byte(name + "\n")
	buf := bytes.Repeat(line, int(size/int64(len(line)))+1)
	return buf[:size]
}
