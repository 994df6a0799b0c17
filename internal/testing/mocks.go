package testing

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/openstack-charmers/ldap-test-fixture-k8s/internal/juju"
	"github.com/openstack-charmers/ldap-test-fixture-k8s/internal/workload"
)

// MockContainer is a mock implementation of workload.Container.
// Exec expectations match on (command, stdin) and return (stdout, error).
type MockContainer struct {
	mock.Mock
	ContainerName string
}

var _ workload.Container = (*MockContainer)(nil)

// Name returns ContainerName.
func (m *MockContainer) Name() string {
	return m.ContainerName
}

// Exec records the command and its full stdin.
func (m *MockContainer) Exec(_ context.Context, opts *workload.ExecOptions) error {
	var stdin string
	if opts.Stdin != nil {
		data, err := io.ReadAll(opts.Stdin)
		if err != nil {
			return err
		}
		stdin = string(data)
	}
	args := m.Called(opts.Command, stdin)
	if opts.Stdout != nil {
		if _, err := io.WriteString(opts.Stdout, args.String(0)); err != nil {
			return err
		}
	}
	return args.Error(1)
}

// Push records a file write.
func (m *MockContainer) Push(_ context.Context, path, content string) error {
	return m.Called(path, content).Error(0)
}

// Pull returns the mocked file content.
func (m *MockContainer) Pull(_ context.Context, path string) (string, error) {
	args := m.Called(path)
	return args.String(0), args.Error(1)
}

// AddLayer records a layer addition.
func (m *MockContainer) AddLayer(_ context.Context, label string, layer *workload.Layer, combine bool) error {
	return m.Called(label, layer, combine).Error(0)
}

// Replan records a replan.
func (m *MockContainer) Replan(_ context.Context) error {
	return m.Called().Error(0)
}

// Restart records a service restart.
func (m *MockContainer) Restart(_ context.Context, services ...string) error {
	return m.Called(services).Error(0)
}

// MockActionEvent is a mock of the charm's action event handle.
type MockActionEvent struct {
	mock.Mock
}

// SetResults records action results.
func (m *MockActionEvent) SetResults(_ context.Context, results map[string]string) error {
	return m.Called(results).Error(0)
}

// Fail records an action failure.
func (m *MockActionEvent) Fail(_ context.Context, message string) error {
	return m.Called(message).Error(0)
}

// Log records an action progress message.
func (m *MockActionEvent) Log(_ context.Context, message string) error {
	return m.Called(message).Error(0)
}

// MockStatusReporter is a mock of the unit status setter.
type MockStatusReporter struct {
	mock.Mock
}

// StatusSet records a status change.
func (m *MockStatusReporter) StatusSet(_ context.Context, status juju.Status, message string) error {
	return m.Called(status, message).Error(0)
}

// MockResolver is a mock of netutil.Resolver.
type MockResolver struct {
	mock.Mock
}

// ResolveHostIP returns the mocked address.
func (m *MockResolver) ResolveHostIP(_ context.Context) (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}
