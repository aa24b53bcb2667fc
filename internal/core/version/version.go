// Package version reports what build of the scheduler is running
package version

import (
	"runtime/debug"
	"sync"
)

// Service names the API in logs, traces and /meta/service
const Service = "scheduler-api"

// Stamped with -ldflags, e.g.
//
//	-X rewardsched/internal/core/version.version=v0.3.0
//	-X rewardsched/internal/core/version.commit=1f3e9ab
//	-X rewardsched/internal/core/version.date=2025-09-02
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// BuildInfo is the /meta/version and `schedctl version` payload
type BuildInfo struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"goVersion,omitempty"`
	Modified  bool   `json:"modified,omitempty"`
}

// Released reports whether the version was stamped at link time
func (b BuildInfo) Released() bool { return b.Version != "dev" }

var info = sync.OnceValue(func() BuildInfo {
	bi, _ := debug.ReadBuildInfo()
	return resolve(bi)
})

// Info returns the build information, unstamped commit and date fall back to the vcs settings go build records
func Info() BuildInfo { return info() }

func resolve(bi *debug.BuildInfo) BuildInfo {
	out := BuildInfo{Service: Service, Version: version, Commit: commit, Date: date}
	if bi == nil {
		return out
	}
	out.GoVersion = bi.GoVersion
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if out.Commit == "none" && s.Value != "" {
				out.Commit = s.Value
			}
		case "vcs.time":
			if out.Date == "unknown" && s.Value != "" {
				out.Date = s.Value
			}
		case "vcs.modified":
			out.Modified = s.Value == "true"
		}
	}
	return out
}
