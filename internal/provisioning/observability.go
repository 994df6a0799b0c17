package provisioning

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-logr/logr"
)

// Logger is the printf-style subset of Observer.
type Logger interface {
	Printf(format string, v ...any)
}

// Observer defines structured observability during provisioning.
type Observer interface {
	Logger

	// Event emits a structured event.
	Event(event Event)

	// Progress reports progress through the pipeline.
	Progress(phase string, current, total int)

	// WithFields returns an Observer that adds fields to every event.
	WithFields(fields map[string]string) Observer
}

// Event represents a structured provisioning event.
type Event struct {
	Type      EventType
	Phase     string
	Message   string
	Resource  string // file path or command, if applicable
	Timestamp time.Time
	Fields    map[string]string
}

// EventType represents the type of provisioning event.
type EventType string

const (
	// EventPhaseStarted indicates a phase has started.
	EventPhaseStarted EventType = "phase.started"
	// EventPhaseCompleted indicates a phase completed successfully.
	EventPhaseCompleted EventType = "phase.completed"
	// EventPhaseFailed indicates a phase failed.
	EventPhaseFailed EventType = "phase.failed"

	// EventCommandRun indicates a command was run in the container.
	EventCommandRun EventType = "command.run"
	// EventFilePushed indicates a file was written into the container.
	EventFilePushed EventType = "file.pushed"
	// EventFilePulled indicates a file was read from the container.
	EventFilePulled EventType = "file.pulled"
	// EventServicesRestarted indicates services were restarted.
	EventServicesRestarted EventType = "services.restarted"

	// EventProgress indicates progress through the pipeline.
	EventProgress EventType = "progress"
)

// LogObserver implements Observer on a logr.Logger.
type LogObserver struct {
	log           logr.Logger
	contextFields map[string]string
}

// NewLogObserver creates an observer writing to log.
func NewLogObserver(log logr.Logger) *LogObserver {
	return &LogObserver{
		log:           log,
		contextFields: make(map[string]string),
	}
}

// Printf implements Logger.
func (o *LogObserver) Printf(format string, v ...any) {
	o.log.Info(fmt.Sprintf(format, v...))
}

// Event implements Observer.
func (o *LogObserver) Event(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	fields := make(map[string]string, len(o.contextFields)+len(event.Fields))
	for k, v := range o.contextFields {
		fields[k] = v
	}
	for k, v := range event.Fields {
		fields[k] = v
	}

	kv := []any{"event", string(event.Type)}
	if event.Phase != "" {
		kv = append(kv, "phase", event.Phase)
	}
	if event.Resource != "" {
		kv = append(kv, "resource", event.Resource)
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		kv = append(kv, k, fields[k])
	}

	if event.Type == EventPhaseFailed {
		o.log.Error(nil, event.Message, kv...)
		return
	}
	o.log.Info(event.Message, kv...)
}

// Progress implements Observer.
func (o *LogObserver) Progress(phase string, current, total int) {
	o.log.V(1).Info("progress", "phase", phase, "step", fmt.Sprintf("%d/%d", current, total))
}

// WithFields implements Observer.
func (o *LogObserver) WithFields(fields map[string]string) Observer {
	newFields := make(map[string]string, len(o.contextFields)+len(fields))
	for k, v := range o.contextFields {
		newFields[k] = v
	}
	for k, v := range fields {
		newFields[k] = v
	}
	return &LogObserver{log: o.log, contextFields: newFields}
}

// LogPhaseStart logs a phase start event.
func LogPhaseStart(observer Observer, phase string) {
	observer.Event(Event{
		Type:    EventPhaseStarted,
		Phase:   phase,
		Message: "starting",
	})
}

// LogPhaseComplete logs a phase completion event.
func LogPhaseComplete(observer Observer, phase string, duration time.Duration) {
	observer.Event(Event{
		Type:    EventPhaseCompleted,
		Phase:   phase,
		Message: fmt.Sprintf("completed in %v", duration.Round(time.Millisecond)),
	})
}

// LogPhaseFailed logs a phase failure event.
func LogPhaseFailed(observer Observer, phase string, err error) {
	observer.Event(Event{
		Type:    EventPhaseFailed,
		Phase:   phase,
		Message: fmt.Sprintf("failed: %v", err),
	})
}

// LogCommand logs a command run in the container.
func LogCommand(observer Observer, phase string, argv []string) {
	observer.Event(Event{
		Type:     EventCommandRun,
		Phase:    phase,
		Resource: strings.Join(argv, " "),
		Message:  "command run",
	})
}

// LogFilePushed logs a file written into the container.
func LogFilePushed(observer Observer, phase, path string, size int) {
	observer.Event(Event{
		Type:     EventFilePushed,
		Phase:    phase,
		Resource: path,
		Message:  "file pushed",
		Fields:   map[string]string{"bytes": fmt.Sprintf("%d", size)},
	})
}

// LogFilePulled logs a file read from the container.
func LogFilePulled(observer Observer, phase, path string, size int) {
	observer.Event(Event{
		Type:     EventFilePulled,
		Phase:    phase,
		Resource: path,
		Message:  "file pulled",
		Fields:   map[string]string{"bytes": fmt.Sprintf("%d", size)},
	})
}

// LogServicesRestarted logs a service restart.
func LogServicesRestarted(observer Observer, phase string, services []string) {
	observer.Event(Event{
		Type:     EventServicesRestarted,
		Phase:    phase,
		Resource: strings.Join(services, ","),
		Message:  "services restarted",
	})
}
