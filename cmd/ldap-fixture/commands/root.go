// Package commands defines the CLI command structure and flag bindings.
//
// Command execution is delegated to handler functions in the handlers
// package.
package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/openstack-charmers/ldap-test-fixture-k8s/cmd/ldap-fixture/handlers"
	"github.com/openstack-charmers/ldap-test-fixture-k8s/internal/juju"
)

// Root returns the root command for the ldap-fixture binary.
//
// When started by the unit agent (JUJU_DISPATCH_PATH set) the root command
// dispatches the event; otherwise it prints help.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ldap-fixture",
		Short:         "LDAP test fixture charm for Kubernetes",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.String(),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if juju.LoadEnv(os.Getenv).InHook() {
				return handlers.Dispatch(cmd.Context())
			}
			return cmd.Help()
		},
	}

	cmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	cmd.AddCommand(Dispatch())
	cmd.AddCommand(Render())
	cmd.AddCommand(Provision())
	cmd.AddCommand(LDAPURL())
	cmd.AddCommand(Version())

	return cmd
}
