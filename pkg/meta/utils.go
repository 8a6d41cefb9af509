package meta

import (
	"strings"

	"github.com/google/uuid"
)

// NewRunID returns a fresh artifact directory name for one profiling run.
func NewRunID() string {
	return RunPrefix + uuid.New().String()
}

// IsRunName returns true if the provided string names a flameprof run.
func IsRunName(name string) bool {
	if strings.Compare(RunPrefix, name) == 0 {
		return false
	}
	return strings.HasPrefix(name, RunPrefix)
}
