package pty

import (
	"os"
	"os/exec"
)

// The upstream package does not define StartWithAttrs on windows, so stub it
// here to keep the build green. Teed profiling runs are not supported on
// windows anyways.
func Start(c *exec.Cmd) (*os.File, error) {
	return nil, nil
}
