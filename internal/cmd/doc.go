// Package cmd provides the command-line interface implementation for tierfs.
//
// This package contains all the subcommand implementations for the tierfs CLI
// tool. It uses the Cobra library for command structure and Fang for styling.
//
// The package is organized into the following commands:
//   - root: Main command coordinator and entry point
//   - mount: FUSE filesystem mounting functionality
//   - validate: Offline placement-invariant checking for backing trees
//   - seed: Test-file generation sized around the migration thresholds
//
// Each command is implemented as a separate file with its own constructor
// function that returns a *cobra.Command. The root command coordinates all
// subcommands.
//
// The package leverages the tierfs package for the filesystem implementation.
package cmd
