package charm

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/openstack-charmers/ldap-test-fixture-k8s/internal/config"
	"github.com/openstack-charmers/ldap-test-fixture-k8s/internal/juju"
	"github.com/openstack-charmers/ldap-test-fixture-k8s/internal/netutil"
	"github.com/openstack-charmers/ldap-test-fixture-k8s/internal/provisioning"
	"github.com/openstack-charmers/ldap-test-fixture-k8s/internal/workload"
)

// ContainerOpener returns a handle on the named workload container.
type ContainerOpener func(ctx context.Context, name string) (workload.Container, error)

// StatusReporter sets the unit workload status.
type StatusReporter interface {
	StatusSet(ctx context.Context, status juju.Status, message string) error
}

// Options configures a Charm.
type Options struct {
	Config   config.Source
	Open     ContainerOpener
	Resolver netutil.Resolver

	// Status is optional; outside a hook there is no unit status.
	Status StatusReporter

	// Metrics is optional.
	Metrics *provisioning.Metrics

	Log logr.Logger
}

// Charm handles the events of the LDAP test fixture.
type Charm struct {
	config   config.Source
	open     ContainerOpener
	resolver netutil.Resolver
	status   StatusReporter
	metrics  *provisioning.Metrics
	log      logr.Logger
}

// New creates a Charm.
func New(opts Options) (*Charm, error) {
	if opts.Config == nil {
		return nil, errors.New("config source is required")
	}
	if opts.Open == nil {
		return nil, errors.New("container opener is required")
	}
	if opts.Resolver == nil {
		opts.Resolver = netutil.NewHostResolver()
	}
	return &Charm{
		config:   opts.Config,
		open:     opts.Open,
		resolver: opts.Resolver,
		status:   opts.Status,
		metrics:  opts.Metrics,
		log:      opts.Log,
	}, nil
}

// Register binds the charm's handlers on r.
func (c *Charm) Register(r *Router) error {
	if err := r.Register(EventWorkloadReady, c.OnWorkloadReady); err != nil {
		return err
	}
	return r.Register(EventGetLDAPURL, c.OnGetLDAPURL)
}

// OnWorkloadReady configures the workload container from the current
// configuration. Invalid configuration leaves the unit blocked; the hook
// still fails so the unit agent retries it.
func (c *Charm) OnWorkloadReady(ctx context.Context, _ *Event) error {
	cfg, err := c.config.Load(ctx)
	if err != nil {
		if errors.Is(err, config.ErrInvalid) {
			c.setStatus(ctx, juju.StatusBlocked, err.Error())
		}
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	container, err := c.open(ctx, cfg.Workload)
	if err != nil {
		c.setStatus(ctx, juju.StatusWaiting, fmt.Sprintf("waiting for %s container", cfg.Workload))
		return fmt.Errorf("failed to open container %q: %w", cfg.Workload, err)
	}

	return c.Provision(ctx, cfg, container)
}

// Provision adds the Pebble layer, replans, and runs the provisioning
// phases against container.
func (c *Charm) Provision(ctx context.Context, cfg *config.Config, container workload.Container) error {
	if err := container.AddLayer(ctx, LayerLabel, PebbleLayer(), true); err != nil {
		return fmt.Errorf("failed to add layer: %w", err)
	}
	if err := container.Replan(ctx); err != nil {
		return fmt.Errorf("failed to replan: %w", err)
	}

	c.setStatus(ctx, juju.StatusMaintenance, "configuring directory")

	pctx := provisioning.NewContext(ctx, cfg, container, c.log)
	pctx.Observer = pctx.Observer.WithFields(map[string]string{
		"container": container.Name(),
		"domain":    cfg.Domain,
	})
	pctx.Metrics = c.metrics
	if err := provisioning.NewPipeline(Phases()...).Run(pctx); err != nil {
		return err
	}

	c.setStatus(ctx, juju.StatusActive, "")
	return nil
}

// OnGetLDAPURL reports ldap://<ip> for the local host.
func (c *Charm) OnGetLDAPURL(ctx context.Context, ev *Event) error {
	if ev.Action == nil {
		return errors.New("event carries no action handle")
	}

	ip, err := c.resolver.ResolveHostIP(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve host address: %w", err)
	}

	url := netutil.LDAPURL(ip)
	c.log.V(1).Info("Resolved directory URL", "url", url)
	return ev.Action.SetResults(ctx, map[string]string{"url": url})
}

func (c *Charm) setStatus(ctx context.Context, status juju.Status, message string) {
	if c.status == nil {
		return
	}
	if err := c.status.StatusSet(ctx, status, message); err != nil {
		c.log.Error(err, "Failed to set unit status", "status", string(status))
	}
}
