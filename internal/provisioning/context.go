package provisioning

import (
	"context"

	"github.com/go-logr/logr"

	"github.com/openstack-charmers/ldap-test-fixture-k8s/internal/config"
	"github.com/openstack-charmers/ldap-test-fixture-k8s/internal/workload"
)

// Context carries everything a phase needs.
type Context struct {
	context.Context
	Config    *config.Config
	Container workload.Container
	Observer  Observer
	Metrics   *Metrics
}

// NewContext creates a provisioning context that reports through log.
func NewContext(ctx context.Context, cfg *config.Config, container workload.Container, log logr.Logger) *Context {
	return &Context{
		Context:   ctx,
		Config:    cfg,
		Container: container,
		Observer:  NewLogObserver(log),
	}
}
