// Package directory builds the seed dataset loaded into the LDAP directory.
//
// A dataset is a fixed pair of POSIX groups and one account per configured
// display name. Identifiers are assigned sequentially from fixed bases, so the
// same domain and user list always render to the same LDIF.
package directory
