package handlers

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/openstack-charmers/ldap-test-fixture-k8s/internal/charm"
	"github.com/openstack-charmers/ldap-test-fixture-k8s/internal/config"
	"github.com/openstack-charmers/ldap-test-fixture-k8s/internal/netutil"
	"github.com/openstack-charmers/ldap-test-fixture-k8s/internal/platform/kube"
	"github.com/openstack-charmers/ldap-test-fixture-k8s/internal/platform/pebble"
	"github.com/openstack-charmers/ldap-test-fixture-k8s/internal/platform/ssh"
	"github.com/openstack-charmers/ldap-test-fixture-k8s/internal/provisioning"
	"github.com/openstack-charmers/ldap-test-fixture-k8s/internal/workload"
)

// Backends accepted by Provision.
const (
	BackendPebble = "pebble"
	BackendSSH    = "ssh"
	BackendKube   = "kube"
)

// ProvisionOptions configures a provisioning run outside a hook.
type ProvisionOptions struct {
	Backend    string
	ConfigPath string
	Overrides  map[string]any

	// PebbleBinary is the pebble CLI path for the ssh and kube backends.
	PebbleBinary string

	// Pebble backend.
	Socket string

	// SSH backend.
	SSHHost    string
	SSHPort    int
	SSHUser    string
	SSHKeyPath string

	// Kube backend.
	Kubeconfig string
	Namespace  string
	Pod        string

	// WaitHost, when set, is polled on the LDAP port after the services
	// restart, for at most WaitTimeout.
	WaitHost    string
	WaitTimeout time.Duration
}

// Factory variables for the provision backends, replaced in tests.
var (
	newSSHExecutor = func(cfg *ssh.Config) (workload.Executor, error) {
		return ssh.NewClient(cfg)
	}

	newKubeExecutor = func(kubeconfig string, target kube.Target) (workload.Executor, error) {
		restConfig, err := kube.LoadRESTConfig(kubeconfig)
		if err != nil {
			return nil, err
		}
		return kube.NewExecutor(restConfig, target)
	}

	waitForPort = netutil.WaitForPort
)

// Provision adds the layer and runs the provisioning sequence against a
// container reached through opts.Backend.
func Provision(ctx context.Context, opts ProvisionOptions) error {
	source := &config.StaticSource{File: opts.ConfigPath, Overrides: opts.Overrides}
	cfg, err := source.Load(ctx)
	if err != nil {
		return err
	}

	log := newLogger().WithValues("backend", opts.Backend)

	container, err := openContainer(ctx, cfg.Workload, opts)
	if err != nil {
		return err
	}

	metrics := provisioning.NewMetrics()
	c, err := charm.New(charm.Options{
		Config: source,
		Open: func(context.Context, string) (workload.Container, error) {
			return container, nil
		},
		Resolver: newResolver(),
		Metrics:  metrics,
		Log:      log,
	})
	if err != nil {
		return err
	}

	err = c.Provision(ctx, cfg, container)
	writeMetrics(metrics, log)
	if err != nil {
		return err
	}

	if opts.WaitHost != "" {
		log.Info("Waiting for slapd", "host", opts.WaitHost, "port", netutil.LDAPPort)
		if err := waitForPort(ctx, opts.WaitHost, netutil.LDAPPort, opts.WaitTimeout, time.Second); err != nil {
			return fmt.Errorf("slapd did not come up: %w", err)
		}
	}

	log.Info("Provisioning complete", "container", container.Name())
	return nil
}

func openContainer(ctx context.Context, name string, opts ProvisionOptions) (workload.Container, error) {
	var containerOpts []workload.CommandContainerOption
	if opts.PebbleBinary != "" {
		containerOpts = append(containerOpts, workload.WithPebbleBinary(opts.PebbleBinary))
	}

	switch opts.Backend {
	case BackendPebble, "":
		if opts.Socket != "" {
			return pebble.Open(name, opts.Socket)
		}
		return openPebble(ctx, name)

	case BackendSSH:
		if opts.SSHKeyPath == "" {
			return nil, fmt.Errorf("--ssh-key is required for the ssh backend")
		}
		key, err := os.ReadFile(opts.SSHKeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read SSH key: %w", err)
		}
		executor, err := newSSHExecutor(&ssh.Config{
			Host:       opts.SSHHost,
			Port:       opts.SSHPort,
			User:       opts.SSHUser,
			PrivateKey: key,
		})
		if err != nil {
			return nil, err
		}
		return workload.NewCommandContainer(name, executor, containerOpts...), nil

	case BackendKube:
		executor, err := newKubeExecutor(opts.Kubeconfig, kube.Target{
			Namespace: opts.Namespace,
			Pod:       opts.Pod,
			Container: name,
		})
		if err != nil {
			return nil, err
		}
		return workload.NewCommandContainer(name, executor, containerOpts...), nil

	default:
		return nil, fmt.Errorf("unknown backend %q (expected %s, %s or %s)", opts.Backend, BackendPebble, BackendSSH, BackendKube)
	}
}
