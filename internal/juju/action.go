package juju

import "context"

// Action reports the outcome of the running action through hook tools.
type Action struct {
	tools *HookTools
}

// NewAction returns the handle for the action the unit agent is running.
func (h *HookTools) NewAction() *Action {
	return &Action{tools: h}
}

// SetResults calls action-set.
func (a *Action) SetResults(ctx context.Context, results map[string]string) error {
	return a.tools.ActionSet(ctx, results)
}

// Fail calls action-fail.
func (a *Action) Fail(ctx context.Context, message string) error {
	return a.tools.ActionFail(ctx, message)
}

// Log calls action-log.
func (a *Action) Log(ctx context.Context, message string) error {
	return a.tools.ActionLog(ctx, message)
}
