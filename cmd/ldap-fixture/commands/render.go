package commands

import (
	"github.com/spf13/cobra"

	"github.com/openstack-charmers/ldap-test-fixture-k8s/cmd/ldap-fixture/handlers"
)

// Render returns the render command.
func Render() *cobra.Command {
	var (
		configPath string
		flags      configFlags
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the LDIF seeded into the directory",
		Long: `Render prints the groups and users the charm loads with slapadd.

Example:
  ldap-fixture render --domain test.com --users "Jane Doe,John Smith"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Render(cmd.Context(), cmd.OutOrStdout(), configPath, flags.overrides(cmd))
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to a YAML configuration file")
	flags.bind(cmd)

	return cmd
}
