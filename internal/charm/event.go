package charm

import (
	"context"
	"strings"
)

// EventKind identifies an event the charm can react to.
type EventKind int

// Event kinds, derived from JUJU_DISPATCH_PATH by ParseDispatchPath.
const (
	// EventUnknown is any hook or action the charm does not handle.
	EventUnknown EventKind = iota
	// EventWorkloadReady fires when Pebble in the workload container is up.
	EventWorkloadReady
	// EventGetLDAPURL is the get-ldap-url action.
	EventGetLDAPURL
	// EventConfigChanged fires after the charm options change.
	EventConfigChanged
)

func (k EventKind) String() string {
	switch k {
	case EventWorkloadReady:
		return "workload-ready"
	case EventGetLDAPURL:
		return "get-ldap-url"
	case EventConfigChanged:
		return "config-changed"
	default:
		return "unknown"
	}
}

// ActionName is the action returning the directory URL.
const ActionName = "get-ldap-url"

// ActionEvent reports action results back to the operator.
type ActionEvent interface {
	SetResults(ctx context.Context, results map[string]string) error
	Fail(ctx context.Context, message string) error
	Log(ctx context.Context, message string) error
}

// Event is one delivery from the unit agent.
type Event struct {
	Kind EventKind

	// Name is the raw hook or action name.
	Name string

	// Action is set for action events only.
	Action ActionEvent
}

// IsAction reports whether the event was triggered by an action.
func (e *Event) IsAction() bool {
	return strings.HasPrefix(e.Name, "actions/")
}

// ParseDispatchPath maps JUJU_DISPATCH_PATH to an event. workload is the
// container whose pebble-ready hook means the workload is ready.
func ParseDispatchPath(path, workload string) *Event {
	ev := &Event{Kind: EventUnknown, Name: path}

	switch {
	case path == "hooks/"+workload+"-pebble-ready":
		ev.Kind = EventWorkloadReady
	case path == "hooks/config-changed":
		ev.Kind = EventConfigChanged
	case path == "actions/"+ActionName:
		ev.Kind = EventGetLDAPURL
	}
	return ev
}
