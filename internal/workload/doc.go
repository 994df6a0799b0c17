// Package workload defines the container handle the charm drives.
//
// A [Container] can run commands with stdin, push and pull files, add a
// Pebble layer, replan, and restart services. The Pebble API implementation
// lives in internal/platform/pebble; [CommandContainer] provides the same
// operations on top of any [Executor] (SSH, pod exec) by invoking shell
// utilities and the pebble CLI inside the target.
package workload
