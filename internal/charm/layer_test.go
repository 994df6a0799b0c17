package charm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/openstack-charmers/ldap-test-fixture-k8s/internal/workload"
)

func TestPebbleLayer(t *testing.T) {
	t.Parallel()

	layer := PebbleLayer()
	assert.Equal(t, "phpldapadmin layer", layer.Summary)
	assert.Equal(t, "pebble config layer for phpldapadmin", layer.Description)
	require.Len(t, layer.Services, 2)

	php := layer.Services[ServicePHPLDAPAdmin]
	require.NotNil(t, php)
	assert.Equal(t, "/usr/sbin/apache2ctl -DFOREGROUND", php.Command)
	assert.Equal(t, workload.StartupEnabled, php.Startup)
	assert.Equal(t, workload.OverrideReplace, php.Override)

	slapd := layer.Services[ServiceSlapd]
	require.NotNil(t, slapd)
	assert.Equal(t, "/usr/sbin/slapd -d 0", slapd.Command)
	assert.Equal(t, workload.StartupEnabled, slapd.Startup)
}

func TestPebbleLayer_Marshal(t *testing.T) {
	t.Parallel()

	data, err := PebbleLayer().Marshal()
	require.NoError(t, err)

	var parsed workload.Layer
	require.NoError(t, yaml.Unmarshal(data, &parsed))
	assert.Equal(t, PebbleLayer(), &parsed)
}
