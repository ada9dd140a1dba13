package cmd

import (
	"testing"
)

func TestPathsOverlap(t *testing.T) {
	tests := []struct {
		name     string
		path1    string
		path2    string
		expected bool
	}{
		{
			name:     "identical paths",
			path1:    "/mnt/fast",
			path2:    "/mnt/fast",
			expected: true,
		},
		{
			name:     "path1 contains path2",
			path1:    "/mnt/fast/data",
			path2:    "/mnt/fast",
			expected: true,
		},
		{
			name:     "path2 contains path1",
			path1:    "/mnt/fast",
			path2:    "/mnt/fast/mount",
			expected: true,
		},
		{
			name:     "completely separate paths",
			path1:    "/mnt/fast",
			path2:    "/mnt/slow",
			expected: false,
		},
		{
			name:     "sibling with shared prefix string",
			path1:    "/mnt/fast",
			path2:    "/mnt/fast2",
			expected: false,
		},
		{
			name:     "relative paths - overlapping",
			path1:    "fast",
			path2:    "fast/mount",
			expected: true,
		},
		{
			name:     "relative paths - separate",
			path1:    "fast",
			path2:    "slow",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := pathsOverlap(tt.path1, tt.path2)
			if result != tt.expected {
				t.Errorf("pathsOverlap(%q, %q) = %v, expected %v", tt.path1, tt.path2, result, tt.expected)
			}
		})
	}
}

func TestNewRootCmdWiring(t *testing.T) {
	root := NewRootCmd()

	want := map[string]bool{"mount": false, "validate": false, "seed": false}
	for _, sub := range root.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestMountCmdRequiresThreeArgs(t *testing.T) {
	cmd := NewMountCmd()
	if err := cmd.Args(cmd, []string{"fast", "slow"}); err == nil {
		t.Error("expected an error with two args")
	}
	if err := cmd.Args(cmd, []string{"fast", "slow", "mnt"}); err != nil {
		t.Errorf("unexpected error with three args: %v", err)
	}
}
