package exec

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// Runner runs a command and returns its standard output.
type Runner interface {
	Run(
		ctx context.Context,
		dir string,
		name string,
		arg ...string,
	) (string, error)
}

// RunnerFunc adapts a plain function to the Runner
// interface.
type RunnerFunc func(
	ctx context.Context,
	dir string,
	name string,
	arg ...string,
) (string, error)

// Run delegates to the wrapped function.
func (f RunnerFunc) Run(
	ctx context.Context,
	dir string,
	name string,
	arg ...string,
) (string, error) {
	return f(ctx, dir, name, arg...)
}

// Default runs commands on the host with Ex.
var Default Runner = RunnerFunc(Ex)

// Error describes a command that could not be started
// or exited non-zero.
type Error struct {
	// Name is the executable name.
	Name string
	// Args are the arguments passed to Name.
	Args []string
	// Stdout is whatever the command printed before
	// failing.
	Stdout string
	// Stderr is the captured standard error text.
	Stderr string
	// Err is the underlying os/exec error.
	Err error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf(
		"%s %s: %v",
		e.Name, strings.Join(e.Args, " "), e.Err,
	)

	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}

	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Ex executes the named command in the given directory
// and returns its standard output. Pass empty dir to use
// the current working directory. Standard error is
// captured separately and attached to the returned
// *Error on failure.
func Ex(
	ctx context.Context,
	dir string,
	name string,
	arg ...string,
) (string, error) {
	const errCtx = "executing command"

	slog.Debug(
		"executing",
		"cmd", name,
		"args", strings.Join(arg, " "),
	)

	//nolint:gosec // commands are built by this module
	cmd := exec.CommandContext(ctx, name, arg...)
	if dir != "" {
		cmd.Dir = dir
	}

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	slog.Debug(
		"output",
		"stdout", stdout.String(),
		"stderr", stderr.String(),
	)

	if err != nil {
		return stdout.String(), fmt.Errorf(
			"%s: %w", errCtx, &Error{
				Name:   name,
				Args:   arg,
				Stdout: stdout.String(),
				Stderr: stderr.String(),
				Err:    err,
			},
		)
	}

	return stdout.String(), nil
}
