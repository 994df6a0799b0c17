// Package main is the entry point for the ldap-fixture charm binary.
//
// Under Juju the binary is started by the charm's dispatch script with
// JUJU_DISPATCH_PATH set and routes the event. Outside a hook it offers
// commands to render the seed data and to provision a container directly.
//
//	ldap-fixture --help
package main

import (
	"fmt"
	"os"

	"github.com/openstack-charmers/ldap-test-fixture-k8s/cmd/ldap-fixture/commands"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetBuildInfo(commands.BuildInfo{Version: version, Commit: commit, Date: date})
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
