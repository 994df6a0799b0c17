package testing

import (
	"github.com/openstack-charmers/ldap-test-fixture-k8s/internal/config"
)

// ConfigBuilder provides a fluent interface for constructing test configs.
// Each method returns a new builder (immutable) for chaining.
type ConfigBuilder struct {
	cfg config.Config
}

// NewConfigBuilder creates a new ConfigBuilder starting from config.Defaults.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{cfg: config.Defaults()}
}

// WithDomain sets the directory domain.
func (b *ConfigBuilder) WithDomain(domain string) *ConfigBuilder {
	c := *b
	c.cfg.Domain = domain
	return &c
}

// WithUsers sets the comma-separated user list.
func (b *ConfigBuilder) WithUsers(users string) *ConfigBuilder {
	c := *b
	c.cfg.Users = users
	return &c
}

// WithAdminPassword sets the admin password.
func (b *ConfigBuilder) WithAdminPassword(password string) *ConfigBuilder {
	c := *b
	c.cfg.AdminPassword = password
	return &c
}

// WithOrganization sets the organization.
func (b *ConfigBuilder) WithOrganization(org string) *ConfigBuilder {
	c := *b
	c.cfg.Organization = org
	return &c
}

// WithWorkload sets the workload container name.
func (b *ConfigBuilder) WithWorkload(name string) *ConfigBuilder {
	c := *b
	c.cfg.Workload = name
	return &c
}

// Build returns a copy of the configuration.
func (b *ConfigBuilder) Build() *config.Config {
	cfg := b.cfg
	return &cfg
}
