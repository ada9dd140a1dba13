package version

import "testing"

func TestInfoString(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{
			name: "version only",
			info: Info{Version: "v1.2.0"},
			want: "v1.2.0",
		},
		{
			name: "commit truncated to seven chars",
			info: Info{Version: "v1.2.0", Commit: "0123456789abcdef"},
			want: "v1.2.0 (0123456)",
		},
		{
			name: "full identity",
			info: Info{Version: "v1.2.0", Commit: "0123456789abcdef", Date: "2026-08-01T00:00:00Z"},
			want: "v1.2.0 (0123456, built 2026-08-01T00:00:00Z)",
		},
		{
			name: "short commit kept as-is",
			info: Info{Version: "v1.2.0", Commit: "abc"},
			want: "v1.2.0 (abc)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetNeverEmpty(t *testing.T) {
	info := Get()
	if info.Version == "" {
		t.Error("Get() must always resolve a version string")
	}
}
