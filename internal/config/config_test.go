package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		return p
	}

	tests := []struct {
		name string
		path string
		want Config
	}{
		{
			name: "empty path",
			path: "",
			want: Default(),
		},
		{
			name: "missing file",
			path: filepath.Join(dir, "nope.yml"),
			want: Default(),
		},
		{
			name: "full file",
			path: write("full.yml", "policy: lottery\nseed: 42\nframe_ms: 16\nlog_level: debug\nlog_format: json\n"),
			want: Config{Policy: "lottery", Seed: 42, FrameMS: 16, LogLevel: "debug", LogFormat: "json"},
		},
		{
			name: "partial file keeps defaults",
			path: write("partial.yml", "seed: 9\n"),
			want: Config{Policy: "fifo", Seed: 9, FrameMS: 0, LogLevel: "info", LogFormat: "text"},
		},
		{
			name: "clamps",
			path: write("clamp.yml", "policy: CFS\nframe_ms: -5\nlog_level: \"\"\n"),
			want: Default(),
		},
		{
			name: "malformed",
			path: write("bad.yml", "policy: [fifo\n"),
			want: Default(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Load(tt.path); got != tt.want {
				t.Errorf("Load() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
