// Package config defines the charm configuration and how it is assembled.
//
// Values are layered with koanf, lowest priority first: built-in defaults,
// the defaults declared in the charm's config.yaml, the live values returned
// by config-get, an optional YAML file for manual runs, and finally
// LDAP_FIXTURE__<KEY> environment variables. A [Source] rebuilds the whole
// stack on every Load so that each hook sees the configuration current at
// call time.
package config
