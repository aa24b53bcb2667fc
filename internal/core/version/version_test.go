package version

import (
	"runtime/debug"
	"testing"
)

func TestInfo_Unstamped(t *testing.T) {
	got := Info()
	if got.Service != Service || got.Version != "dev" || got.Released() {
		t.Fatalf("unexpected build info %+v", got)
	}
}

func TestResolve_VCSFallback(t *testing.T) {
	got := resolve(&debug.BuildInfo{
		GoVersion: "go1.25.0",
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "1f3e9ab"},
			{Key: "vcs.time", Value: "2025-09-02T10:00:00Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	})
	if got.Commit != "1f3e9ab" || got.Date != "2025-09-02T10:00:00Z" || !got.Modified || got.GoVersion != "go1.25.0" {
		t.Fatalf("vcs settings not applied: %+v", got)
	}
}

func TestResolve_LdflagsWin(t *testing.T) {
	prev := commit
	commit = "stamped"
	t.Cleanup(func() { commit = prev })

	got := resolve(&debug.BuildInfo{Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "1f3e9ab"}}})
	if got.Commit != "stamped" {
		t.Fatalf("ldflags commit should win, got %q", got.Commit)
	}
	if resolve(nil).Commit != "stamped" {
		t.Fatal("nil build info keeps the stamped values")
	}
}
