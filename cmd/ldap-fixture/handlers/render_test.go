package handlers

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_FromFileAndOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.yaml")
	require.NoError(t, os.WriteFile(path, []byte("domain: example.org\nusers: Jane Doe, John Smith\n"), 0o600))

	var out bytes.Buffer
	require.NoError(t, Render(context.Background(), &out, path, map[string]any{"admin-password": "s3cret"}))

	ldif := out.String()
	assert.True(t, strings.HasPrefix(ldif, "dn: ou=People,dc=example,dc=org\n"))
	assert.Contains(t, ldif, "dn: uid=janedoe,ou=People,dc=example,dc=org")
	assert.Contains(t, ldif, "dn: uid=johnsmith,ou=People,dc=example,dc=org")
	assert.Contains(t, ldif, "userPassword: s3cret")
	assert.Less(t, strings.Index(ldif, "uid=janedoe"), strings.Index(ldif, "uid=johnsmith"))
}

func TestRender_MissingFile(t *testing.T) {
	var out bytes.Buffer
	err := Render(context.Background(), &out, "/nonexistent/fixture.yaml", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
	assert.Empty(t, out.String())
}

func TestRender_RejectsUnsafeDisplayName(t *testing.T) {
	var out bytes.Buffer
	err := Render(context.Background(), &out, "", map[string]any{"users": "Jane Doe,Eve {{ nope }}"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "template markers")
	assert.Empty(t, out.String())
}
