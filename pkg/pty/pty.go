//go:build !windows

package pty

import (
	"os"
	"os/exec"
	"syscall"

	"github.com/creack/pty"
)

// Start runs c under a pseudo-terminal and returns the master side. Target
// programs line-buffer their output when they see a TTY, which keeps the
// teed run log a stream instead of large delayed chunks.
func Start(c *exec.Cmd) (*os.File, error) {
	return pty.StartWithAttrs(c, nil, &syscall.SysProcAttr{})
}
