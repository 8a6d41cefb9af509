package profiler

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// This is a technique used in go stdlib (exec_test.go) and documented
// here https://npf.io/2015/06/testing-exec-command/
func fakeExecCommandContext(ctx context.Context, command string, args ...string) *exec.Cmd {
	cs := []string{"-test.run=TestHelperProcess", "--", command}
	cs = append(cs, args...)
	cmd := exec.Command(os.Args[0], cs...)
	cmd.Env = []string{"GO_WANT_HELPER_PROCESS=1"}
	return cmd
}

func TestRunnerTop(t *testing.T) {
	execCommandContext = fakeExecCommandContext
	defer func() { execCommandContext = exec.CommandContext }()

	r := NewRunner()
	out, err := r.Top(context.Background(), "/bin/sample-app", "/tmp/cpu.pprof", 10)
	require.Nil(t, err)
	assert.Contains(t, out, "main.fibonacci")
}

func TestRunnerTraces(t *testing.T) {
	execCommandContext = fakeExecCommandContext
	defer func() { execCommandContext = exec.CommandContext }()

	r := NewRunner()
	out, err := r.Traces(context.Background(), "/bin/sample-app", "/tmp/cpu.pprof")
	require.Nil(t, err)
	assert.Contains(t, out, "#0 0x1 main.fibonacci +0x1")
}

func TestRunnerBuildFailure(t *testing.T) {
	execCommandContext = fakeExecCommandContext
	defer func() { execCommandContext = exec.CommandContext }()

	r := NewRunner()
	err := r.Build(context.Background(), "./broken-pkg", "/tmp/out")
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "build constraints exclude all Go files")
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	args := os.Args
	for i, arg := range args {
		if arg == "--" {
			args = args[i+1:]
			break
		}
	}

	joined := strings.Join(args, " ")
	switch {
	case strings.Contains(joined, "-top"):
		fmt.Println("      flat  flat%   sum%        cum   cum%")
		fmt.Println("     1030ms 21.55% 21.55%     1030ms 21.55%  main.fibonacci")
	case strings.Contains(joined, "-traces"):
		fmt.Println("-----------+---------------------------")
		fmt.Println("         1   10ms")
		fmt.Println("#0 0x1 main.fibonacci +0x1")
		fmt.Println("#1 0x2 main.main +0x2")
	case strings.Contains(joined, "broken-pkg"):
		fmt.Fprintln(os.Stderr, "build constraints exclude all Go files")
		os.Exit(1)
	}
	os.Exit(0)
}
