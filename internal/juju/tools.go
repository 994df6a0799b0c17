package juju

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"sort"
	"strings"

	"sigs.k8s.io/yaml"
)

// Status is a workload status understood by status-set.
type Status string

const (
	StatusActive      Status = "active"
	StatusMaintenance Status = "maintenance"
	StatusBlocked     Status = "blocked"
	StatusWaiting     Status = "waiting"
)

// LogLevel is a juju-log level.
type LogLevel string

// LevelError is used to surface hook failures in juju debug-log.
const LevelError LogLevel = "ERROR"

// Runner runs a hook tool and returns its stdout.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs hook tools as subprocesses found on PATH.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return stdout.Bytes(), fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}

// HookTools invokes the unit agent's hook tools.
type HookTools struct {
	runner Runner
}

// NewHookTools creates HookTools. A nil runner uses ExecRunner.
func NewHookTools(runner Runner) *HookTools {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &HookTools{runner: runner}
}

// ConfigGet returns the unit's current charm configuration.
func (h *HookTools) ConfigGet(ctx context.Context) (map[string]any, error) {
	out, err := h.runner.Run(ctx, "config-get", "--format=json", "--all")
	if err != nil {
		return nil, fmt.Errorf("config-get failed: %w", err)
	}

	values := make(map[string]any)
	if len(bytes.TrimSpace(out)) == 0 {
		return values, nil
	}
	if err := yaml.Unmarshal(out, &values); err != nil {
		return nil, fmt.Errorf("failed to parse config-get output: %w", err)
	}
	return values, nil
}

// ActionSet reports results of the running action. Keys are emitted in
// sorted order.
func (h *HookTools) ActionSet(ctx context.Context, results map[string]string) error {
	if len(results) == 0 {
		return nil
	}
	keys := make([]string, 0, len(results))
	for k := range results {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]string, 0, len(keys))
	for _, k := range keys {
		args = append(args, k+"="+results[k])
	}
	if _, err := h.runner.Run(ctx, "action-set", args...); err != nil {
		return fmt.Errorf("action-set failed: %w", err)
	}
	return nil
}

// ActionFail marks the running action as failed.
func (h *HookTools) ActionFail(ctx context.Context, message string) error {
	if _, err := h.runner.Run(ctx, "action-fail", message); err != nil {
		return fmt.Errorf("action-fail failed: %w", err)
	}
	return nil
}

// ActionLog sends a progress message to the operator running the action.
func (h *HookTools) ActionLog(ctx context.Context, message string) error {
	if _, err := h.runner.Run(ctx, "action-log", message); err != nil {
		return fmt.Errorf("action-log failed: %w", err)
	}
	return nil
}

// StatusSet sets the unit workload status.
func (h *HookTools) StatusSet(ctx context.Context, status Status, message string) error {
	if _, err := h.runner.Run(ctx, "status-set", string(status), message); err != nil {
		return fmt.Errorf("status-set failed: %w", err)
	}
	return nil
}

// Log writes to the model's debug-log.
func (h *HookTools) Log(ctx context.Context, level LogLevel, message string) error {
	if _, err := h.runner.Run(ctx, "juju-log", "--log-level", string(level), message); err != nil {
		return fmt.Errorf("juju-log failed: %w", err)
	}
	return nil
}
