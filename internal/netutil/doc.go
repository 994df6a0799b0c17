// Package netutil resolves the unit's address and builds the LDAP URL
// reported to operators.
package netutil
