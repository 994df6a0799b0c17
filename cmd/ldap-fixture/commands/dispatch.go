package commands

import (
	"github.com/spf13/cobra"

	"github.com/openstack-charmers/ldap-test-fixture-k8s/cmd/ldap-fixture/handlers"
)

// Dispatch returns the dispatch command.
func Dispatch() *cobra.Command {
	return &cobra.Command{
		Use:   "dispatch",
		Short: "Handle the Juju event named by JUJU_DISPATCH_PATH",
		Long: `Dispatch routes the current Juju event to the charm.

Handled events:
  hooks/<workload>-pebble-ready   configure slapd and phpLDAPadmin
  actions/get-ldap-url            report ldap://<unit address>

Other events are acknowledged without action.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Dispatch(cmd.Context())
		},
	}
}
