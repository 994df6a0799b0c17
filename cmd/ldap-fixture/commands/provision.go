package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/openstack-charmers/ldap-test-fixture-k8s/cmd/ldap-fixture/handlers"
)

// Provision returns the provision command.
func Provision() *cobra.Command {
	var (
		opts  handlers.ProvisionOptions
		flags configFlags
	)

	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Configure slapd and phpLDAPadmin in a running container",
		Long: `Provision runs the same sequence as the pebble-ready hook against a
container reached without the unit agent:

  1. pre-seed slapd with debconf and reconfigure it
  2. point phpLDAPadmin at the configured suffix
  3. load the test groups and users with slapadd
  4. restart phpldapadmin and slapd

Backends:
  pebble  the container's Pebble socket (default)
  ssh     a host running pebble, reached over SSH
  kube    a pod container, reached through the pods/exec API

Example:
  ldap-fixture provision --backend kube --namespace ldap --pod ldap-0 --domain test.com`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.Overrides = flags.overrides(cmd)
			return handlers.Provision(cmd.Context(), opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.ConfigPath, "config", "c", "", "Path to a YAML configuration file")
	f.StringVar(&opts.Backend, "backend", handlers.BackendPebble, "Container backend: pebble, ssh or kube")
	f.StringVar(&opts.PebbleBinary, "pebble-binary", "", "Path of the pebble CLI inside the target (ssh and kube backends)")
	f.StringVar(&opts.Socket, "socket", "", "Pebble socket path (pebble backend)")
	f.StringVar(&opts.SSHHost, "ssh-host", "", "SSH host (ssh backend)")
	f.IntVar(&opts.SSHPort, "ssh-port", 22, "SSH port (ssh backend)")
	f.StringVar(&opts.SSHUser, "ssh-user", "root", "SSH user (ssh backend)")
	f.StringVar(&opts.SSHKeyPath, "ssh-key", "", "Path to the SSH private key (ssh backend)")
	f.StringVar(&opts.Kubeconfig, "kubeconfig", "", "Path to a kubeconfig; in-cluster config when empty (kube backend)")
	f.StringVar(&opts.Namespace, "namespace", "", "Pod namespace (kube backend)")
	f.StringVar(&opts.Pod, "pod", "", "Pod name (kube backend)")
	f.StringVar(&opts.WaitHost, "wait-host", "", "Wait for slapd to accept connections on this host after provisioning")
	f.DurationVar(&opts.WaitTimeout, "wait-timeout", 2*time.Minute, "How long to wait for slapd")
	flags.bind(cmd)

	return cmd
}
