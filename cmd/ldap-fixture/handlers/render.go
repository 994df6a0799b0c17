package handlers

import (
	"context"
	"fmt"
	"io"

	"github.com/openstack-charmers/ldap-test-fixture-k8s/internal/config"
	"github.com/openstack-charmers/ldap-test-fixture-k8s/internal/directory"
)

// Render writes the LDIF the charm would load for the configuration in
// configPath merged with overrides.
func Render(ctx context.Context, w io.Writer, configPath string, overrides map[string]any) error {
	source := &config.StaticSource{File: configPath, Overrides: overrides}
	cfg, err := source.Load(ctx)
	if err != nil {
		return err
	}

	ldif, err := directory.Render(directory.NewDataset(cfg.UserList()), directory.RenderOptions{
		Domain:   cfg.Domain,
		Password: cfg.AdminPassword,
	})
	if err != nil {
		return err
	}

	if _, err := fmt.Fprint(w, ldif); err != nil {
		return fmt.Errorf("failed to write LDIF: %w", err)
	}
	return nil
}
