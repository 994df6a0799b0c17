package juju

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	name string
	args []string
}

type fakeRunner struct {
	calls  []call
	output map[string][]byte
	err    error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, call{name: name, args: args})
	if f.err != nil {
		return nil, f.err
	}
	return f.output[name], nil
}

func TestHookTools_ConfigGet(t *testing.T) {
	t.Parallel()
	runner := &fakeRunner{output: map[string][]byte{
		"config-get": []byte(`{"domain": "test.com", "users": "Alice Smith,Bob Jones"}`),
	}}

	values, err := NewHookTools(runner).ConfigGet(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "test.com", values["domain"])
	assert.Equal(t, "Alice Smith,Bob Jones", values["users"])
	assert.Equal(t, []string{"--format=json", "--all"}, runner.calls[0].args)
}

func TestHookTools_ConfigGetEmpty(t *testing.T) {
	t.Parallel()
	values, err := NewHookTools(&fakeRunner{}).ConfigGet(context.Background())
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestHookTools_ConfigGetError(t *testing.T) {
	t.Parallel()
	_, err := NewHookTools(&fakeRunner{err: errors.New("no agent")}).ConfigGet(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config-get failed")
}

func TestHookTools_ActionSet(t *testing.T) {
	t.Parallel()
	runner := &fakeRunner{}
	tools := NewHookTools(runner)

	require.NoError(t, tools.ActionSet(context.Background(), map[string]string{
		"url":  "ldap://10.1.2.3",
		"base": "dc=test,dc=com",
	}))
	require.NoError(t, tools.ActionSet(context.Background(), nil))

	require.Len(t, runner.calls, 1)
	assert.Equal(t, "action-set", runner.calls[0].name)
	assert.Equal(t, []string{"base=dc=test,dc=com", "url=ldap://10.1.2.3"}, runner.calls[0].args)
}

func TestHookTools_StatusAndLogs(t *testing.T) {
	t.Parallel()
	runner := &fakeRunner{}
	tools := NewHookTools(runner)
	ctx := context.Background()

	require.NoError(t, tools.StatusSet(ctx, StatusActive, ""))
	require.NoError(t, tools.ActionFail(ctx, "lookup failed"))
	require.NoError(t, tools.ActionLog(ctx, "resolving"))
	require.NoError(t, tools.Log(ctx, LevelError, "hello"))

	assert.Equal(t, []call{
		{name: "status-set", args: []string{"active", ""}},
		{name: "action-fail", args: []string{"lookup failed"}},
		{name: "action-log", args: []string{"resolving"}},
		{name: "juju-log", args: []string{"--log-level", "ERROR", "hello"}},
	}, runner.calls)
}
