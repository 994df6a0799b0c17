package handlers

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	testutil "github.com/openstack-charmers/ldap-test-fixture-k8s/internal/testing"
)

func TestLDAPURL(t *testing.T) {
	resolver := &testutil.MockResolver{}
	resolver.On("ResolveHostIP").Return("192.0.2.10", nil)
	stubFactories(t, nil, &fakeRunner{}, nil, resolver)

	var out bytes.Buffer
	require.NoError(t, LDAPURL(context.Background(), &out))
	assert.Equal(t, "ldap://192.0.2.10\n", out.String())
}

func TestLDAPURL_ResolutionFails(t *testing.T) {
	resolver := &testutil.MockResolver{}
	resolver.On("ResolveHostIP").Return("", errors.New("no such host"))
	stubFactories(t, nil, &fakeRunner{}, nil, resolver)

	var out bytes.Buffer
	require.Error(t, LDAPURL(context.Background(), &out))
	assert.Empty(t, out.String())
}
