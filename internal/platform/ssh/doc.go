// Package ssh runs workload commands on a remote host over SSH.
//
// It is the transport behind `ldap-fixture provision --backend ssh`, used to
// provision a VM or container image that runs pebble without a Juju
// controller. Connections are established with key-based authentication and
// retried with exponential backoff while the host boots.
package ssh
