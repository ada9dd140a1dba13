package tierfs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dendrascience/dendra-tier-fuse/util"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, DefaultFastUpperLimit, cfg.FastUpperLimit)
	assert.Equal(t, DefaultSlowLowerLimit, cfg.SlowLowerLimit)
	assert.False(t, cfg.Debug)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "valid",
			cfg:  Config{FastRoot: "/mnt/fast", SlowRoot: "/mnt/slow", FastUpperLimit: 1024, SlowLowerLimit: 256},
		},
		{
			name:    "empty fast root",
			cfg:     Config{SlowRoot: "/mnt/slow", FastUpperLimit: 1024, SlowLowerLimit: 256},
			wantErr: true,
		},
		{
			name:    "identical roots",
			cfg:     Config{FastRoot: "/mnt/x", SlowRoot: "/mnt/x/", FastUpperLimit: 1024, SlowLowerLimit: 256},
			wantErr: true,
		},
		{
			name:    "lower at upper",
			cfg:     Config{FastRoot: "/mnt/fast", SlowRoot: "/mnt/slow", FastUpperLimit: 1024, SlowLowerLimit: 1024},
			wantErr: true,
		},
		{
			name:    "lower above upper",
			cfg:     Config{FastRoot: "/mnt/fast", SlowRoot: "/mnt/slow", FastUpperLimit: 256, SlowLowerLimit: 512},
			wantErr: true,
		},
		{
			name:    "zero upper limit",
			cfg:     Config{FastRoot: "/mnt/fast", SlowRoot: "/mnt/slow", FastUpperLimit: 0, SlowLowerLimit: 0},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigValidate_NormalizesRoots(t *testing.T) {
	cfg := Config{FastRoot: "/mnt/fast/", SlowRoot: "/mnt/slow//", FastUpperLimit: 1024, SlowLowerLimit: 256}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "/mnt/fast", cfg.FastRoot)
	assert.Equal(t, "/mnt/slow", cfg.SlowRoot)
}

func TestConfigValidate_IdenticalRootsError(t *testing.T) {
	cfg := Config{FastRoot: "/mnt/x", SlowRoot: "/mnt/x", FastUpperLimit: 1024, SlowLowerLimit: 256}
	assert.ErrorIs(t, cfg.Validate(), util.ErrIdenticalRoot)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tierfs.yaml")
	data := `mount_point: /mnt/tierfs
fast_path: /mnt/fast
slow_path: /mnt/slow
fast_upper_limit: 4096
slow_lower_limit: 1024
debug: true
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/mnt/tierfs", cfg.MountPoint)
	assert.Equal(t, "/mnt/fast", cfg.FastRoot)
	assert.Equal(t, "/mnt/slow", cfg.SlowRoot)
	assert.Equal(t, int64(4096), cfg.FastUpperLimit)
	assert.Equal(t, int64(1024), cfg.SlowLowerLimit)
	assert.True(t, cfg.Debug)
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tierfs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fast_path: /mnt/fast\nslow_path: /mnt/slow\n"), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultFastUpperLimit, cfg.FastUpperLimit)
	assert.Equal(t, DefaultSlowLowerLimit, cfg.SlowLowerLimit)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
