// Package util provides utility functions for the tierfs filesystem.
package util

import "errors"

// Sentinel errors for package util.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// File and directory errors
	ErrExpectedFile = errors.New("expected a regular file")

	// Backing root errors
	ErrEmptyRoot     = errors.New("backing root path is empty")
	ErrIdenticalRoot = errors.New("fast and slow roots are the same path")
)
