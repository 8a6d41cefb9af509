package version

import (
	"fmt"
	"strconv"
	"time"
)

// Populated by the makefile via -ldflags
var (
	version   = "dev"
	gitCommit string
	buildTime string
)

// Version returns the semantic version
func Version() string {
	return version
}

// GitCommit returns the git commit
func GitCommit() string {
	if gitCommit == "" {
		return "unspecified"
	}
	return gitCommit
}

// Time returns the build time
func Time() *time.Time {
	now := time.Now()
	if len(buildTime) == 0 {
		return &now
	}
	i, err := strconv.ParseInt(buildTime, 10, 64)
	if err != nil {
		return &now
	}
	t := time.Unix(i, 0)
	return &t
}

// String returns version info as a string
func String() string {
	return fmt.Sprintf("flameprof %s\ngit commit: %s\nbuild date: %s", Version(), GitCommit(), Time().String())
}
