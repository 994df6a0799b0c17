package workload

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
)

// DefaultPebbleBinary is where Juju mounts pebble inside workload containers.
const DefaultPebbleBinary = "/charm/bin/pebble"

// Executor runs argv somewhere and waits for it.
// A non-zero exit must be reported as *ExitError.
type Executor interface {
	Run(ctx context.Context, argv []string, stdin io.Reader, stdout, stderr io.Writer) error
}

// CommandContainer implements Container on top of an Executor.
// File transfer uses cat through sh; layer and service operations
// go through the pebble CLI.
type CommandContainer struct {
	name     string
	exec     Executor
	pebble   string
	layerDir string
}

// CommandContainerOption configures a CommandContainer.
type CommandContainerOption func(*CommandContainer)

// WithPebbleBinary sets the pebble CLI path inside the target.
func WithPebbleBinary(p string) CommandContainerOption {
	return func(c *CommandContainer) {
		c.pebble = p
	}
}

// WithLayerDir sets where layer files are staged before `pebble add`.
func WithLayerDir(dir string) CommandContainerOption {
	return func(c *CommandContainer) {
		c.layerDir = dir
	}
}

// NewCommandContainer wraps exec as a Container named name.
func NewCommandContainer(name string, exec Executor, opts ...CommandContainerOption) *CommandContainer {
	c := &CommandContainer{
		name:     name,
		exec:     exec,
		pebble:   DefaultPebbleBinary,
		layerDir: "/tmp",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name implements Container.
func (c *CommandContainer) Name() string {
	return c.name
}

// Exec implements Container.
func (c *CommandContainer) Exec(ctx context.Context, opts *ExecOptions) error {
	if opts == nil || len(opts.Command) == 0 {
		return fmt.Errorf("exec: empty command")
	}
	return c.exec.Run(ctx, opts.Command, opts.Stdin, opts.Stdout, opts.Stderr)
}

// Push implements Container.
func (c *CommandContainer) Push(ctx context.Context, p, content string) error {
	script := fmt.Sprintf("mkdir -p %s && cat > %s", ShellQuote(path.Dir(p)), ShellQuote(p))
	if _, err := Run(ctx, c, strings.NewReader(content), "sh", "-c", script); err != nil {
		return fmt.Errorf("failed to push %s: %w", p, err)
	}
	return nil
}

// Pull implements Container.
func (c *CommandContainer) Pull(ctx context.Context, p string) (string, error) {
	out, err := Run(ctx, c, nil, "cat", p)
	if err != nil {
		return "", fmt.Errorf("failed to pull %s: %w", p, err)
	}
	return out, nil
}

// AddLayer implements Container.
func (c *CommandContainer) AddLayer(ctx context.Context, label string, layer *Layer, combine bool) error {
	data, err := layer.Marshal()
	if err != nil {
		return err
	}

	staged := path.Join(c.layerDir, label+"-layer.yaml")
	if err := c.Push(ctx, staged, string(data)); err != nil {
		return err
	}

	argv := []string{c.pebble, "add"}
	if combine {
		argv = append(argv, "--combine")
	}
	argv = append(argv, label, staged)
	if _, err := Run(ctx, c, nil, argv...); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", label, err)
	}
	return nil
}

// Replan implements Container.
func (c *CommandContainer) Replan(ctx context.Context) error {
	if _, err := Run(ctx, c, nil, c.pebble, "replan"); err != nil {
		return fmt.Errorf("failed to replan: %w", err)
	}
	return nil
}

// Restart implements Container.
func (c *CommandContainer) Restart(ctx context.Context, services ...string) error {
	if len(services) == 0 {
		return nil
	}
	argv := append([]string{c.pebble, "restart"}, services...)
	if _, err := Run(ctx, c, nil, argv...); err != nil {
		return fmt.Errorf("failed to restart %s: %w", strings.Join(services, ", "), err)
	}
	return nil
}
