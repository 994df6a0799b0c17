// Package charm implements the LDAP test fixture charm: the event router,
// the workload-ready and get-ldap-url handlers, and the provisioning phases
// that configure slapd and phpLDAPadmin inside the workload container.
package charm
