// Package juju talks to the Juju unit agent from inside a hook.
//
// The agent describes the event being dispatched through environment
// variables ([Env]) and exposes hook tools on PATH (config-get, action-set,
// action-fail, status-set, juju-log). [HookTools] wraps those tools behind a
// [Runner] so handlers can be exercised without an agent.
package juju
