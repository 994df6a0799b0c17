package handlers

import (
	"github.com/go-logr/logr"

	"github.com/openstack-charmers/ldap-test-fixture-k8s/internal/provisioning"
)

// MetricsTextfileEnv names the file phase metrics are written to.
const MetricsTextfileEnv = "LDAP_FIXTURE_METRICS_TEXTFILE"

func writeMetrics(m *provisioning.Metrics, log logr.Logger) {
	path := getenv(MetricsTextfileEnv)
	if path == "" {
		return
	}
	if err := m.WriteTextfile(path); err != nil {
		log.Error(err, "Failed to write metrics textfile")
	}
}
