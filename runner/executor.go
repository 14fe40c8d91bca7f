package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"slices"
	"time"

	"github.com/arloliu/asymptote/errs"
)

// Invocation is one call of the external algorithm program.
type Invocation struct {
	Selector string
	// Inputs holds one path, or two for pairwise algorithms.
	Inputs []string
	// PrintMetrics asks the program to print its secondary metrics.
	PrintMetrics bool
	// Params are passed as "--name value" after the timing flag, in order.
	Params []Param
}

// Param is a named integer parameter such as a recursion threshold.
type Param struct {
	Name  string
	Value int
}

func (p Param) String() string {
	return fmt.Sprintf("%s=%d", p.Name, p.Value)
}

// Args renders the command-line arguments for inv, without the program.
//
//	-a <selector> -e <file> [-p] -t [--name value ...]
//	-a <selector> -e1 <file1> -e2 <file2> [-p] -t [--name value ...]
func (inv Invocation) Args() []string {
	args := []string{"-a", inv.Selector}
	switch len(inv.Inputs) {
	case 1:
		args = append(args, "-e", inv.Inputs[0])
	default:
		for i, in := range inv.Inputs {
			args = append(args, fmt.Sprintf("-e%d", i+1), in)
		}
	}
	if inv.PrintMetrics {
		args = append(args, "-p")
	}
	args = append(args, "-t")
	for _, p := range inv.Params {
		args = append(args, "--"+p.Name, fmt.Sprint(p.Value))
	}

	return args
}

// Executor runs one invocation and returns its standard output.
//
// Failures are reported as *errs.ExecutionError whose Cause is one of
// errs.ErrNonZeroExit, errs.ErrTimeout or errs.ErrStart. A cancelled
// parent context is returned as the context error.
type Executor interface {
	Execute(ctx context.Context, inv Invocation) ([]byte, error)
}

// waitDelay bounds how long Execute waits for the output pipes to close
// after the process was killed.
const waitDelay = time.Second

// ProcessExecutor runs the algorithm as a child process. On Unix the child
// gets its own process group; timeout and cancellation kill the group.
type ProcessExecutor struct {
	// Command is the program, e.g. "./tp.sh".
	Command string
	// Prefix is inserted before the invocation arguments, e.g. "run",
	// "--release", "--" for a cargo wrapper.
	Prefix []string
	// Dir is the working directory; empty means the current one.
	Dir string
	// Timeout bounds each invocation. Zero disables it.
	Timeout time.Duration
}

// NewProcessExecutor returns an executor for command with the given prefix
// arguments.
func NewProcessExecutor(command string, prefix ...string) *ProcessExecutor {
	return &ProcessExecutor{
		Command: command,
		Prefix:  slices.Clone(prefix),
		Timeout: DefaultTimeout,
	}
}

// Execute implements Executor.
func (p *ProcessExecutor) Execute(ctx context.Context, inv Invocation) ([]byte, error) {
	cmdCtx := ctx
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		cmdCtx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	args := append(slices.Clone(p.Prefix), inv.Args()...)
	cmd := exec.CommandContext(cmdCtx, p.Command, args...)
	cmd.Dir = p.Dir
	cmd.WaitDelay = waitDelay
	setProcessGroup(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if errors.Is(cmdCtx.Err(), context.DeadlineExceeded) {
		return nil, errs.NewExecutionError(fmt.Errorf("%w after %s", errs.ErrTimeout, p.Timeout)).
			WithStderr(stderr.String())
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, errs.NewExecutionError(fmt.Errorf("%w: %d", errs.ErrNonZeroExit, exitErr.ExitCode())).
				WithStderr(stderr.String())
		}

		return nil, errs.NewExecutionError(fmt.Errorf("%w: %w", errs.ErrStart, err))
	}

	return stdout.Bytes(), nil
}
