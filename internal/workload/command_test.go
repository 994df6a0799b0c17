package workload

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type recordedRun struct {
	argv  []string
	stdin string
}

// fakeExecutor records every command and answers from a table keyed by argv[0].
type fakeExecutor struct {
	runs    []recordedRun
	outputs map[string]string
	fail    map[string]*ExitError
}

func newFakeExecutor() *fakeExecutor {
	return &fakeExecutor{
		outputs: make(map[string]string),
		fail:    make(map[string]*ExitError),
	}
}

func (f *fakeExecutor) Run(_ context.Context, argv []string, stdin io.Reader, stdout, stderr io.Writer) error {
	run := recordedRun{argv: argv}
	if stdin != nil {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return err
		}
		run.stdin = string(data)
	}
	f.runs = append(f.runs, run)

	if exitErr, ok := f.fail[argv[0]]; ok {
		if stderr != nil {
			_, _ = io.WriteString(stderr, "boom")
		}
		return exitErr
	}
	if out, ok := f.outputs[argv[0]]; ok && stdout != nil {
		_, _ = io.WriteString(stdout, out)
	}
	return nil
}

func TestCommandContainer_Push(t *testing.T) {
	t.Parallel()
	fake := newFakeExecutor()
	c := NewCommandContainer("phpldapadmin", fake)

	err := c.Push(context.Background(), "/tmp/setup.ldif", "dn: dc=test\n")
	require.NoError(t, err)

	require.Len(t, fake.runs, 1)
	assert.Equal(t, []string{"sh", "-c", "mkdir -p /tmp && cat > /tmp/setup.ldif"}, fake.runs[0].argv)
	assert.Equal(t, "dn: dc=test\n", fake.runs[0].stdin)
}

func TestCommandContainer_Pull(t *testing.T) {
	t.Parallel()
	fake := newFakeExecutor()
	fake.outputs["cat"] = "<?php\n"
	c := NewCommandContainer("phpldapadmin", fake)

	got, err := c.Pull(context.Background(), "/etc/phpldapadmin/config.php")
	require.NoError(t, err)
	assert.Equal(t, "<?php\n", got)
	assert.Equal(t, []string{"cat", "/etc/phpldapadmin/config.php"}, fake.runs[0].argv)
}

func TestCommandContainer_PullFailure(t *testing.T) {
	t.Parallel()
	fake := newFakeExecutor()
	fake.fail["cat"] = &ExitError{Command: []string{"cat"}, ExitCode: 1}
	c := NewCommandContainer("phpldapadmin", fake)

	_, err := c.Pull(context.Background(), "/missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to pull /missing")
	assert.Contains(t, err.Error(), "boom")
}

func TestCommandContainer_AddLayer(t *testing.T) {
	t.Parallel()
	fake := newFakeExecutor()
	c := NewCommandContainer("phpldapadmin", fake, WithPebbleBinary("pebble"))

	layer := &Layer{
		Summary: "test",
		Services: map[string]*Service{
			"slapd": {Override: OverrideReplace, Command: "/usr/sbin/slapd -d 0", Startup: StartupEnabled},
		},
	}

	err := c.AddLayer(context.Background(), "phpldapadmin", layer, true)
	require.NoError(t, err)

	require.Len(t, fake.runs, 2)
	assert.Equal(t, []string{"pebble", "add", "--combine", "phpldapadmin", "/tmp/phpldapadmin-layer.yaml"}, fake.runs[1].argv)

	var staged Layer
	require.NoError(t, yaml.Unmarshal([]byte(fake.runs[0].stdin), &staged))
	assert.Equal(t, "/usr/sbin/slapd -d 0", staged.Services["slapd"].Command)
}

func TestCommandContainer_ReplanAndRestart(t *testing.T) {
	t.Parallel()
	fake := newFakeExecutor()
	c := NewCommandContainer("phpldapadmin", fake)

	require.NoError(t, c.Replan(context.Background()))
	require.NoError(t, c.Restart(context.Background(), "phpldapadmin", "slapd"))
	require.NoError(t, c.Restart(context.Background()))

	require.Len(t, fake.runs, 2)
	assert.Equal(t, []string{DefaultPebbleBinary, "replan"}, fake.runs[0].argv)
	assert.Equal(t, []string{DefaultPebbleBinary, "restart", "phpldapadmin", "slapd"}, fake.runs[1].argv)
}

func TestCommandContainer_ExecEmptyCommand(t *testing.T) {
	t.Parallel()
	c := NewCommandContainer("phpldapadmin", newFakeExecutor())

	err := c.Exec(context.Background(), &ExecOptions{})
	require.Error(t, err)
}

func TestExitError(t *testing.T) {
	t.Parallel()
	err := &ExitError{Command: []string{"slapadd", "-l", "x"}, ExitCode: 1, Stderr: "bad entry\n"}
	assert.Equal(t, `command "slapadd -l x" exited with code 1: bad entry`, err.Error())

	err = &ExitError{Command: []string{"true"}, ExitCode: 2}
	assert.False(t, strings.Contains(err.Error(), ": "))
}
