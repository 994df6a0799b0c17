package netutil

import (
	"context"
	"fmt"
	"net"
	"os"
)

// Resolver resolves the local host to an IP address.
type Resolver interface {
	ResolveHostIP(ctx context.Context) (string, error)
}

// HostResolver resolves os.Hostname() through the system resolver.
// Both lookups can be replaced for tests.
type HostResolver struct {
	Hostname func() (string, error)
	LookupIP func(ctx context.Context, network, host string) ([]net.IP, error)
}

// NewHostResolver returns a HostResolver using the process hostname and
// net.DefaultResolver.
func NewHostResolver() *HostResolver {
	return &HostResolver{
		Hostname: os.Hostname,
		LookupIP: net.DefaultResolver.LookupIP,
	}
}

// ResolveHostIP returns the first IPv4 address of the local hostname, or the
// first IPv6 address when the host has no IPv4 address.
func (r *HostResolver) ResolveHostIP(ctx context.Context) (string, error) {
	hostname, err := r.Hostname()
	if err != nil {
		return "", fmt.Errorf("failed to read hostname: %w", err)
	}

	ips, err := r.LookupIP(ctx, "ip", hostname)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", hostname, err)
	}

	var fallback net.IP
	for _, ip := range ips {
		if v4 := ip.To4(); v4 != nil {
			return v4.String(), nil
		}
		if fallback == nil {
			fallback = ip
		}
	}
	if fallback != nil {
		return fallback.String(), nil
	}
	return "", fmt.Errorf("no addresses found for %s", hostname)
}

// LDAPURL returns the ldap:// URL for ip. IPv6 literals are bracketed.
func LDAPURL(ip string) string {
	if parsed := net.ParseIP(ip); parsed != nil && parsed.To4() == nil {
		return "ldap://[" + ip + "]"
	}
	return "ldap://" + ip
}
