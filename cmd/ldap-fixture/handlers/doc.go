// Package handlers implements the ldap-fixture commands.
//
// Collaborators that touch the unit agent, the Pebble socket, or the
// network are created through package-level factory variables so tests can
// replace them.
package handlers
