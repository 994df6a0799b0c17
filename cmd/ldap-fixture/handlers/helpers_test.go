package handlers

import (
	"context"
	"sync"
	"testing"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/testr"

	"github.com/openstack-charmers/ldap-test-fixture-k8s/internal/juju"
	"github.com/openstack-charmers/ldap-test-fixture-k8s/internal/netutil"
	"github.com/openstack-charmers/ldap-test-fixture-k8s/internal/workload"
)

type toolCall struct {
	name string
	args []string
}

// fakeRunner stands in for the unit agent's hook tools.
type fakeRunner struct {
	mu     sync.Mutex
	calls  []toolCall
	output map[string][]byte
	errs   map[string]error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, toolCall{name: name, args: args})
	return f.output[name], f.errs[name]
}

func (f *fakeRunner) called(name string) []toolCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []toolCall
	for _, c := range f.calls {
		if c.name == name {
			out = append(out, c)
		}
	}
	return out
}

// stubFactories replaces the package factories for one test.
func stubFactories(t *testing.T, env map[string]string, runner *fakeRunner, container workload.Container, resolver netutil.Resolver) {
	t.Helper()

	origGetenv, origLogger, origRunner, origPebble, origResolver := getenv, newLogger, newHookRunner, openPebble, newResolver
	t.Cleanup(func() {
		getenv, newLogger, newHookRunner, openPebble, newResolver = origGetenv, origLogger, origRunner, origPebble, origResolver
	})

	getenv = func(key string) string { return env[key] }
	newLogger = func() logr.Logger { return testr.New(t) }
	newHookRunner = func() juju.Runner { return runner }
	openPebble = func(context.Context, string) (workload.Container, error) { return container, nil }
	newResolver = func() netutil.Resolver { return resolver }
}
