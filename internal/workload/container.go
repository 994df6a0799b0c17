package workload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ExecOptions describes one command run inside the container.
type ExecOptions struct {
	Command []string
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
}

// Container is the handle on a workload container.
type Container interface {
	// Name returns the container name as declared in the charm metadata.
	Name() string

	// Exec runs a command and waits for it to exit.
	// A non-zero exit status is reported as *ExitError.
	Exec(ctx context.Context, opts *ExecOptions) error

	// Push writes content to path, creating parent directories.
	Push(ctx context.Context, path, content string) error

	// Pull returns the content of path.
	Pull(ctx context.Context, path string) (string, error)

	// AddLayer adds a Pebble layer under label.
	// With combine set, an existing layer with the same label is merged.
	AddLayer(ctx context.Context, label string, layer *Layer, combine bool) error

	// Replan starts services whose startup is enabled and restarts changed ones.
	Replan(ctx context.Context) error

	// Restart restarts the named services.
	Restart(ctx context.Context, services ...string) error
}

// ExitError reports a command that ran but exited non-zero.
type ExitError struct {
	Command  []string
	ExitCode int
	Stderr   string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("command %q exited with code %d", strings.Join(e.Command, " "), e.ExitCode)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

// Run executes argv in c with the given stdin and returns its stdout.
// Stderr is captured into the returned error on failure.
func Run(ctx context.Context, c Container, stdin io.Reader, argv ...string) (string, error) {
	var stdout, stderr strings.Builder
	err := c.Exec(ctx, &ExecOptions{
		Command: argv,
		Stdin:   stdin,
		Stdout:  &stdout,
		Stderr:  &stderr,
	})
	if err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) && exitErr.Stderr == "" {
			exitErr.Stderr = stderr.String()
		}
		return stdout.String(), err
	}
	return stdout.String(), nil
}
