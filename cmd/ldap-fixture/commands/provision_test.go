package commands

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvision_Flags(t *testing.T) {
	cmd := Provision()

	backend := cmd.Flags().Lookup("backend")
	require.NotNil(t, backend)
	assert.Equal(t, "pebble", backend.DefValue)

	timeout, err := cmd.Flags().GetDuration("wait-timeout")
	require.NoError(t, err)
	assert.Equal(t, 2*time.Minute, timeout)

	for _, name := range []string{"socket", "ssh-host", "ssh-key", "kubeconfig", "namespace", "pod", "domain", "users"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag %s", name)
	}
}

func TestProvision_UnknownBackend(t *testing.T) {
	cmd := Provision()
	captureOutput(cmd)
	cmd.SetArgs([]string{"--backend", "carrier-pigeon"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown backend "carrier-pigeon"`)
}
