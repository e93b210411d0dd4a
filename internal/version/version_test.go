package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBuildTime(t *testing.T) {
	defer func(orig string) { BuildTime = orig }(BuildTime)

	BuildTime = "unknown"
	assert.Equal(t, "unknown", formatBuildTime())

	BuildTime = "2025-03-01T10:20:30Z"
	assert.Equal(t, "Sat Mar 1 10:20:30 2025", formatBuildTime())

	BuildTime = "yesterday"
	assert.Equal(t, "yesterday", formatBuildTime())
}

func TestBuildInfo(t *testing.T) {
	info := BuildInfo("playwright-go")
	assert.Equal(t, Version, info["Version"])
	assert.Equal(t, "playwright-go", info["Driver"])
	assert.Equal(t, runtime.GOOS, info["OS"])
}
