package netutil

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"
)

// LDAPPort is the plain LDAP port slapd listens on.
const LDAPPort = 389

// WaitForPort waits until a TCP connection to host:port succeeds or timeout
// elapses, checking once per interval.
func WaitForPort(ctx context.Context, host string, port int, timeout, interval time.Duration) error {
	address := net.JoinHostPort(host, strconv.Itoa(port))
	if interval <= 0 {
		interval = time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	dialer := &net.Dialer{Timeout: 2 * time.Second}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if conn, err := dialer.DialContext(ctx, "tcp", address); err == nil {
			_ = conn.Close()
			return nil
		}

		select {
		case <-ctx.Done():
			if ctx.Err() == context.DeadlineExceeded {
				return fmt.Errorf("timeout waiting for %s", address)
			}
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
