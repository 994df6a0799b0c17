package handlers

import (
	"context"
	"fmt"
	"io"

	"github.com/openstack-charmers/ldap-test-fixture-k8s/internal/netutil"
)

// LDAPURL writes the URL the get-ldap-url action reports on this host.
func LDAPURL(ctx context.Context, w io.Writer) error {
	ip, err := newResolver().ResolveHostIP(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, netutil.LDAPURL(ip))
	return err
}
