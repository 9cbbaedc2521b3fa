package provisioning

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Observer receives structured events from the provisioning pipeline.
// Implementations must never be handed credential values; callers log
// resource names and IDs only.
type Observer interface {
	Logger

	// Event emits a structured event.
	Event(event Event)

	// WithFields returns an Observer that attaches fields to every event.
	WithFields(fields map[string]string) Observer
}

// Event is one structured provisioning event.
type Event struct {
	Type     EventType
	Phase    string
	Message  string
	Resource string
	Fields   map[string]string
}

// EventType classifies provisioning events.
type EventType string

const (
	EventPhaseStarted   EventType = "phase.started"
	EventPhaseCompleted EventType = "phase.completed"
	EventPhaseFailed    EventType = "phase.failed"

	EventResourceCreating EventType = "resource.creating"
	EventResourceCreated  EventType = "resource.created"
	EventResourceExists   EventType = "resource.exists"
	EventResourceDeleting EventType = "resource.deleting"
	EventResourceDeleted  EventType = "resource.deleted"

	EventWarning EventType = "warning"
)

// LogObserver implements Observer on a zerolog logger.
type LogObserver struct {
	log zerolog.Logger
}

// NewConsoleObserver creates an observer that writes human-readable output
// to stderr on a terminal and JSON lines otherwise.
func NewConsoleObserver() *LogObserver {
	var out io.Writer = os.Stderr
	if isatty.IsTerminal(os.Stderr.Fd()) {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	}
	return NewLogObserver(out)
}

// NewLogObserver creates an observer writing JSON events to w. Phases in
// the same dependency layer run concurrently, so writes are serialized.
func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{
		log: zerolog.New(zerolog.SyncWriter(w)).With().Timestamp().Logger(),
	}
}

// Printf implements Logger.
func (o *LogObserver) Printf(format string, v ...any) {
	o.log.Info().Msgf(format, v...)
}

// Event implements Observer.
func (o *LogObserver) Event(event Event) {
	var e *zerolog.Event
	switch event.Type {
	case EventPhaseFailed:
		e = o.log.Error()
	case EventWarning:
		e = o.log.Warn()
	default:
		e = o.log.Info()
	}

	e = e.Str("event", string(event.Type))
	if event.Phase != "" {
		e = e.Str("phase", event.Phase)
	}
	if event.Resource != "" {
		e = e.Str("resource", event.Resource)
	}
	for k, v := range event.Fields {
		e = e.Str(k, v)
	}
	e.Msg(event.Message)
}

// WithFields implements Observer.
func (o *LogObserver) WithFields(fields map[string]string) Observer {
	ctx := o.log.With()
	for k, v := range fields {
		ctx = ctx.Str(k, v)
	}
	return &LogObserver{log: ctx.Logger()}
}

// Helper functions for common events.

func LogPhaseStart(observer Observer, phase string) {
	observer.Event(Event{
		Type:    EventPhaseStarted,
		Phase:   phase,
		Message: "starting",
	})
}

func LogPhaseComplete(observer Observer, phase string, duration time.Duration) {
	observer.Event(Event{
		Type:    EventPhaseCompleted,
		Phase:   phase,
		Message: fmt.Sprintf("completed in %v", duration.Round(time.Millisecond)),
	})
}

func LogPhaseFailed(observer Observer, phase string, err error) {
	observer.Event(Event{
		Type:    EventPhaseFailed,
		Phase:   phase,
		Message: fmt.Sprintf("failed: %v", err),
	})
}

func LogResourceCreating(observer Observer, phase, resourceType, resourceName string) {
	observer.Event(Event{
		Type:     EventResourceCreating,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("creating %s", resourceType),
		Fields:   map[string]string{"type": resourceType},
	})
}

func LogResourceCreated(observer Observer, phase, resourceType, resourceName, resourceID string) {
	observer.Event(Event{
		Type:     EventResourceCreated,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("%s created", resourceType),
		Fields:   map[string]string{"type": resourceType, "id": resourceID},
	})
}

func LogResourceExists(observer Observer, phase, resourceType, resourceName, resourceID string) {
	observer.Event(Event{
		Type:     EventResourceExists,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("%s already exists", resourceType),
		Fields:   map[string]string{"type": resourceType, "id": resourceID},
	})
}

func LogResourceDeleting(observer Observer, phase, resourceType, resourceName string) {
	observer.Event(Event{
		Type:     EventResourceDeleting,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("deleting %s", resourceType),
		Fields:   map[string]string{"type": resourceType},
	})
}

func LogResourceDeleted(observer Observer, phase, resourceType, resourceName string) {
	observer.Event(Event{
		Type:     EventResourceDeleted,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("%s deleted", resourceType),
		Fields:   map[string]string{"type": resourceType},
	})
}
