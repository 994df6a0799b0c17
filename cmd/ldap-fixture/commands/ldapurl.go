package commands

import (
	"github.com/spf13/cobra"

	"github.com/openstack-charmers/ldap-test-fixture-k8s/cmd/ldap-fixture/handlers"
)

// LDAPURL returns the ldap-url command.
func LDAPURL() *cobra.Command {
	return &cobra.Command{
		Use:   "ldap-url",
		Short: "Print the LDAP URL of this host",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.LDAPURL(cmd.Context(), cmd.OutOrStdout())
		},
	}
}
