package events

import (
	"sync"
	"time"
)

// EventType represents the type of event
type EventType string

const (
	// EventNotification is published when the OS reports a settings,
	// theme, display, colour or DPI change.
	EventNotification EventType = "system.notification"

	// EventValuesRefreshed is published after every view was refreshed.
	EventValuesRefreshed EventType = "values.refreshed"

	// EventValuesSaved is published after the values were written to a file.
	EventValuesSaved EventType = "values.saved"

	// EventConfigReloaded is published when the configuration file changed.
	EventConfigReloaded EventType = "config.reloaded"
)

var allEventTypes = []EventType{
	EventNotification,
	EventValuesRefreshed,
	EventValuesSaved,
	EventConfigReloaded,
}

// Event represents a system event
type Event struct {
	Type EventType
	// Source names the publisher, e.g. the watched path or the view title.
	Source string
	Data   map[string]interface{}
}

// Handler is a function that handles events
type Handler func(event Event)

// Bus is a simple event bus for decoupled communication between components
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
	closed   bool
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// SubscribeAll registers a handler for all events
func (b *Bus) SubscribeAll(handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	for _, et := range allEventTypes {
		b.handlers[et] = append(b.handlers[et], handler)
	}
}

func (b *Bus) snapshot(t EventType) []Handler {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return nil
	}
	handlers := make([]Handler, len(b.handlers[t]))
	copy(handlers, b.handlers[t])
	return handlers
}

// Publish sends an event to all registered handlers
// Handlers are called synchronously in the order they were registered
func (b *Bus) Publish(event Event) {
	for _, handler := range b.snapshot(event.Type) {
		handler(event)
	}
}

// PublishAsync sends an event to all registered handlers asynchronously
func (b *Bus) PublishAsync(event Event) {
	for _, handler := range b.snapshot(event.Type) {
		go handler(event)
	}
}

// Close stops the event bus and prevents new subscriptions/publications
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	b.handlers = make(map[EventType][]Handler)
}

// NewNotificationEvent creates an OS change notification event. kind is the
// notify.Kind name.
func NewNotificationEvent(kind, source, detail string) Event {
	return Event{
		Type:   EventNotification,
		Source: source,
		Data: map[string]interface{}{
			"kind":   kind,
			"detail": detail,
		},
	}
}

// NewRefreshedEvent creates a values refreshed event.
func NewRefreshedEvent(views int) Event {
	return Event{
		Type: EventValuesRefreshed,
		Data: map[string]interface{}{
			"views": views,
		},
	}
}

// NewSavedEvent creates a values saved event.
func NewSavedEvent(path string, lines int) Event {
	return Event{
		Type:   EventValuesSaved,
		Source: path,
		Data: map[string]interface{}{
			"lines": lines,
		},
	}
}

// NewConfigReloadedEvent creates a configuration reloaded event carrying the
// settings the running window applies without a restart. restart names the
// changed settings that wait for the next start.
func NewConfigReloadedEvent(path string, autoRefresh bool, refreshDelay time.Duration, restart []string) Event {
	return Event{
		Type:   EventConfigReloaded,
		Source: path,
		Data: map[string]interface{}{
			"autoRefresh":  autoRefresh,
			"refreshDelay": refreshDelay,
			"restart":      restart,
		},
	}
}
