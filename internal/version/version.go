package version

import (
	"runtime"
	"time"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	CommitID  = "unknown"
)

func formatBuildTime() string {
	if BuildTime == "unknown" {
		return BuildTime
	}

	t, err := time.Parse(time.RFC3339, BuildTime)
	if err != nil {
		return BuildTime
	}

	return t.Format("Mon Jan 2 15:04:05 2006")
}

// BuildInfo describes the binary and the browser automation stack it drives.
func BuildInfo(driver string) map[string]string {
	return map[string]string{
		"Version":       Version,
		"GoVersion":     runtime.Version(),
		"GitCommit":     CommitID,
		"BuildTime":     BuildTime,
		"FormattedTime": formatBuildTime(),
		"Driver":        driver,
		"OS":            runtime.GOOS,
		"Arch":          runtime.GOARCH,
	}
}
