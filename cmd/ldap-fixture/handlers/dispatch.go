package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/go-logr/logr"

	"github.com/openstack-charmers/ldap-test-fixture-k8s/internal/charm"
	"github.com/openstack-charmers/ldap-test-fixture-k8s/internal/config"
	"github.com/openstack-charmers/ldap-test-fixture-k8s/internal/juju"
	"github.com/openstack-charmers/ldap-test-fixture-k8s/internal/netutil"
	"github.com/openstack-charmers/ldap-test-fixture-k8s/internal/platform/pebble"
	"github.com/openstack-charmers/ldap-test-fixture-k8s/internal/provisioning"
	"github.com/openstack-charmers/ldap-test-fixture-k8s/internal/workload"
)

// Factory variables, replaced in tests.
var (
	getenv = os.Getenv

	newLogger = func() logr.Logger { return NewLogger(os.Stderr) }

	newHookRunner = func() juju.Runner { return juju.ExecRunner{} }

	openPebble = func(_ context.Context, name string) (workload.Container, error) {
		return pebble.Open(name, "")
	}

	newResolver = func() netutil.Resolver { return netutil.NewHostResolver() }
)

// Dispatch routes the event named by JUJU_DISPATCH_PATH.
//
// A failed action is reported with action-fail and is not an error of the
// hook process. A failed hook is logged and returned so the process exits
// non-zero and the unit goes into error.
func Dispatch(ctx context.Context) error {
	env := juju.LoadEnv(getenv)
	if err := env.Validate(); err != nil {
		return err
	}

	log := newLogger().WithValues("unit", env.UnitName)
	tools := juju.NewHookTools(newHookRunner())

	// The container name is not a charm option, so it never needs config-get.
	static, err := config.Load(config.Layers{CharmDir: env.CharmDir, Env: true})
	if err != nil {
		return err
	}

	metrics := provisioning.NewMetrics()
	c, err := charm.New(charm.Options{
		Config: &config.HookSource{
			Getter:    tools,
			CharmDir:  env.CharmDir,
			Overrides: map[string]any{"workload": static.Workload},
		},
		Open:     openPebble,
		Resolver: newResolver(),
		Status:   tools,
		Metrics:  metrics,
		Log:      log,
	})
	if err != nil {
		return err
	}

	router := charm.NewRouter(log)
	if err := c.Register(router); err != nil {
		return err
	}

	ev := charm.ParseDispatchPath(env.DispatchPath, static.Workload)
	if ev.IsAction() {
		ev.Action = tools.NewAction()
	}

	err = router.Dispatch(ctx, ev)
	writeMetrics(metrics, log)
	if err == nil {
		return nil
	}

	if ev.IsAction() {
		log.Error(err, "Action failed", "action", env.ActionName)
		if failErr := ev.Action.Fail(ctx, err.Error()); failErr != nil {
			return fmt.Errorf("%w (reporting failure: %v)", err, failErr)
		}
		return nil
	}

	log.Error(err, "Hook failed", "hook", env.DispatchPath)
	if logErr := tools.Log(ctx, juju.LevelError, err.Error()); logErr != nil {
		log.Error(logErr, "Failed to write to debug-log")
	}
	return err
}
