package testing

import (
	"context"

	"github.com/openstack-charmers/ldap-test-fixture-k8s/internal/config"
)

// StaticSource yields the built configuration on every Load.
type StaticSource struct {
	Config *config.Config
	Err    error
	Loads  int
}

// NewStaticSource wraps cfg in a config.Source.
func NewStaticSource(cfg *config.Config) *StaticSource {
	return &StaticSource{Config: cfg}
}

var _ config.Source = (*StaticSource)(nil)

// Load returns a copy of Config, or Err.
func (s *StaticSource) Load(_ context.Context) (*config.Config, error) {
	s.Loads++
	if s.Err != nil {
		return nil, s.Err
	}
	cfg := *s.Config
	return &cfg, nil
}
