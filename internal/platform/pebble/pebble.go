// Package pebble implements workload.Container on the Pebble API.
//
// Inside a Juju Kubernetes charm, each workload container's pebble daemon is
// reachable from the charm container through a unix socket mounted at
// /charm/containers/<name>/pebble.socket.
package pebble

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/canonical/pebble/client"

	"github.com/openstack-charmers/ldap-test-fixture-k8s/internal/workload"
)

// SocketDir is where Juju mounts workload pebble sockets in the charm container.
const SocketDir = "/charm/containers"

// SocketPath returns the pebble socket for the named container.
func SocketPath(container string) string {
	return path.Join(SocketDir, container, "pebble.socket")
}

// API is the subset of *client.Client the container uses.
type API interface {
	AddLayer(opts *client.AddLayerOptions) error
	Replan(opts *client.ServiceOptions) (string, error)
	Restart(opts *client.ServiceOptions) (string, error)
	WaitChange(id string, opts *client.WaitChangeOptions) (*client.Change, error)
	Exec(opts *client.ExecOptions) (*client.ExecProcess, error)
	Push(opts *client.PushOptions) error
	Pull(opts *client.PullOptions) error
}

// Container is a workload.Container backed by a pebble daemon.
type Container struct {
	name string
	api  API
	// exec is split out so tests do not need a live exec websocket.
	exec func(opts *client.ExecOptions) error
}

var _ workload.Container = (*Container)(nil)

// Open connects to the pebble socket of the named container.
// An empty socket selects SocketPath(name).
func Open(name, socket string) (*Container, error) {
	if name == "" {
		return nil, fmt.Errorf("container name cannot be empty")
	}
	if socket == "" {
		socket = SocketPath(name)
	}
	c, err := client.New(&client.Config{Socket: socket})
	if err != nil {
		return nil, fmt.Errorf("failed to create pebble client for %s: %w", socket, err)
	}
	return New(name, c), nil
}

// New wraps an existing pebble API client.
func New(name string, api API) *Container {
	c := &Container{name: name, api: api}
	c.exec = c.execAndWait
	return c
}

// Name implements workload.Container.
func (c *Container) Name() string {
	return c.name
}

// Exec implements workload.Container.
func (c *Container) Exec(_ context.Context, opts *workload.ExecOptions) error {
	if opts == nil || len(opts.Command) == 0 {
		return fmt.Errorf("exec: empty command")
	}
	err := c.exec(&client.ExecOptions{
		Command: opts.Command,
		Stdin:   opts.Stdin,
		Stdout:  opts.Stdout,
		Stderr:  opts.Stderr,
	})
	var exitErr *client.ExitError
	if errors.As(err, &exitErr) {
		return &workload.ExitError{Command: opts.Command, ExitCode: exitErr.ExitCode()}
	}
	if err != nil {
		return fmt.Errorf("exec %q in %s: %w", strings.Join(opts.Command, " "), c.name, err)
	}
	return nil
}

func (c *Container) execAndWait(opts *client.ExecOptions) error {
	process, err := c.api.Exec(opts)
	if err != nil {
		return err
	}
	return process.Wait()
}

// Push implements workload.Container.
func (c *Container) Push(_ context.Context, p, content string) error {
	err := c.api.Push(&client.PushOptions{
		Source:      strings.NewReader(content),
		Path:        p,
		MakeDirs:    true,
		Permissions: 0o644,
	})
	if err != nil {
		return fmt.Errorf("failed to push %s to %s: %w", p, c.name, err)
	}
	return nil
}

// Pull implements workload.Container.
func (c *Container) Pull(_ context.Context, p string) (string, error) {
	var buf bytes.Buffer
	if err := c.api.Pull(&client.PullOptions{Path: p, Target: &buf}); err != nil {
		return "", fmt.Errorf("failed to pull %s from %s: %w", p, c.name, err)
	}
	return buf.String(), nil
}

// AddLayer implements workload.Container.
func (c *Container) AddLayer(_ context.Context, label string, layer *workload.Layer, combine bool) error {
	data, err := layer.Marshal()
	if err != nil {
		return err
	}
	err = c.api.AddLayer(&client.AddLayerOptions{
		Combine:   combine,
		Label:     label,
		LayerData: data,
	})
	if err != nil {
		return fmt.Errorf("failed to add layer %s to %s: %w", label, c.name, err)
	}
	return nil
}

// Replan implements workload.Container.
func (c *Container) Replan(ctx context.Context) error {
	id, err := c.api.Replan(&client.ServiceOptions{})
	if err != nil {
		return fmt.Errorf("failed to replan %s: %w", c.name, err)
	}
	return c.wait(ctx, "replan", id)
}

// Restart implements workload.Container.
func (c *Container) Restart(ctx context.Context, services ...string) error {
	if len(services) == 0 {
		return nil
	}
	id, err := c.api.Restart(&client.ServiceOptions{Names: services})
	if err != nil {
		return fmt.Errorf("failed to restart %s: %w", strings.Join(services, ", "), err)
	}
	return c.wait(ctx, "restart", id)
}

// wait blocks until the change completes. A deadline on ctx becomes the
// pebble-side wait timeout.
func (c *Container) wait(ctx context.Context, what, id string) error {
	if id == "" {
		return nil
	}
	opts := &client.WaitChangeOptions{}
	if deadline, ok := ctx.Deadline(); ok {
		opts.Timeout = time.Until(deadline)
	}
	change, err := c.api.WaitChange(id, opts)
	if err != nil {
		return fmt.Errorf("failed waiting for %s change %s: %w", what, id, err)
	}
	if change.Err != "" {
		return fmt.Errorf("%s change %s failed: %s", what, id, change.Err)
	}
	return nil
}
