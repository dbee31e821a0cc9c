package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func restore(t *testing.T) {
	t.Helper()
	v, c, d := Version, Commit, Date
	t.Cleanup(func() { Version, Commit, Date = v, c, d })
}

func TestShort(t *testing.T) {
	restore(t)
	tests := []struct {
		version, commit, want string
	}{
		{"v1.2.3", "none", "v1.2.3"},
		{"v1.2.3", "abc1234def5678", "v1.2.3 (abc1234)"},
		{"dev", "abc", "dev (abc)"},
	}
	for _, tt := range tests {
		Version, Commit = tt.version, tt.commit
		if got := Short(); got != tt.want {
			t.Errorf("Short() = %q, want %q", got, tt.want)
		}
	}
}

func TestFromModule(t *testing.T) {
	restore(t)
	Version, Commit, Date = "dev", "none", "unknown"

	fromModule(&debug.BuildInfo{
		Main: debug.Module{Version: "v0.4.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "deadbeef"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
		},
	})
	if Version != "v0.4.0" || Commit != "deadbeef" || Date != "2026-01-02T03:04:05Z" {
		t.Errorf("got %s %s %s", Version, Commit, Date)
	}
}

func TestFromModuleKeepsDevel(t *testing.T) {
	restore(t)
	Version = "dev"
	fromModule(&debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})
	if Version != "dev" {
		t.Errorf("Version = %q, want dev", Version)
	}
}

func TestTemplate(t *testing.T) {
	restore(t)
	Version, Commit, Date = "v1.0.0", "abc", "today"
	if got := Template(); !strings.Contains(got, "version v1.0.0") || !strings.Contains(got, "commit: abc") {
		t.Errorf("Template() = %q", got)
	}
	if got := String(); got != "version: v1.0.0\ncommit: abc\nbuilt: today" {
		t.Errorf("String() = %q", got)
	}
}
