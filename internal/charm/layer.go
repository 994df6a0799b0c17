package charm

import "github.com/openstack-charmers/ldap-test-fixture-k8s/internal/workload"

// LayerLabel is the label the charm's Pebble layer is added under.
const LayerLabel = "phpldapadmin"

// Services managed by the charm, in restart order.
const (
	ServicePHPLDAPAdmin = "phpldapadmin"
	ServiceSlapd        = "slapd"
)

// Services returns the names of the services the charm restarts.
func Services() []string {
	return []string{ServicePHPLDAPAdmin, ServiceSlapd}
}

// PebbleLayer returns the layer running apache (phpLDAPadmin) and slapd.
func PebbleLayer() *workload.Layer {
	return &workload.Layer{
		Summary:     "phpldapadmin layer",
		Description: "pebble config layer for phpldapadmin",
		Services: map[string]*workload.Service{
			ServicePHPLDAPAdmin: {
				Override: workload.OverrideReplace,
				Summary:  "phpldapadmin",
				Command:  "/usr/sbin/apache2ctl -DFOREGROUND",
				Startup:  workload.StartupEnabled,
			},
			ServiceSlapd: {
				Override: workload.OverrideReplace,
				Summary:  "slapd",
				Command:  "/usr/sbin/slapd -d 0",
				Startup:  workload.StartupEnabled,
			},
		},
	}
}
