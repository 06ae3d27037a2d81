package ui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr"
	"github.com/nvm/sysinspect/internal/events"
	"github.com/nvm/sysinspect/internal/notify"
)

// DefaultRelaySize is the number of notifications a Relay buffers.
const DefaultRelaySize = 64

// resultQueueSize bounds background results and configuration reloads.
// Each host lookup has at most one result outstanding.
const resultQueueSize = 16

// NotificationMsg carries an OS change notification into the program.
type NotificationMsg struct {
	Notification notify.Notification
}

// ConfigReloadedMsg carries the settings of a reloaded configuration file.
type ConfigReloadedMsg struct {
	Path         string
	AutoRefresh  bool
	RefreshDelay time.Duration
	// Restart names changed settings that need a restart.
	Restart []string
}

// relayedMsg wraps every message read from a Relay so the model knows to
// wait for the next one.
type relayedMsg struct {
	msg any
}

// Relay moves messages from background goroutines into the program. Post
// never blocks. Background results and configuration reloads are queued
// apart from notifications and delivered first, so a burst of notifications
// cannot push a host-name result out.
type Relay struct {
	notices chan any
	results chan any
	log     logr.Logger
}

// NewRelay creates a relay buffering up to size notifications.
func NewRelay(size int, log logr.Logger) *Relay {
	if size <= 0 {
		size = DefaultRelaySize
	}
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	return &Relay{
		notices: make(chan any, size),
		results: make(chan any, resultQueueSize),
		log:     log.WithName("relay"),
	}
}

// Post queues msg for the program. A full queue drops the message.
func (r *Relay) Post(msg any) {
	if _, ok := msg.(NotificationMsg); ok {
		select {
		case r.notices <- msg:
		default:
			r.log.Info("dropping notification, relay is full")
		}
		return
	}
	select {
	case r.results <- msg:
	default:
		r.log.Error(nil, "dropping background result, relay is full", "type", fmt.Sprintf("%T", msg))
	}
}

// Forward subscribes the relay to notification and configuration events.
func (r *Relay) Forward(bus *events.Bus) {
	bus.Subscribe(events.EventNotification, func(e events.Event) {
		if n, ok := notify.FromEvent(e); ok {
			r.Post(NotificationMsg{Notification: n})
		}
	})
	bus.Subscribe(events.EventConfigReloaded, func(e events.Event) {
		msg := ConfigReloadedMsg{Path: e.Source}
		msg.AutoRefresh, _ = e.Data["autoRefresh"].(bool)
		msg.RefreshDelay, _ = e.Data["refreshDelay"].(time.Duration)
		msg.Restart, _ = e.Data["restart"].([]string)
		r.Post(msg)
	})
}

// wait returns a command delivering the next relayed message, results
// before notifications.
func (r *Relay) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-r.results:
			return relayedMsg{msg: msg}
		default:
		}
		select {
		case msg := <-r.results:
			return relayedMsg{msg: msg}
		case msg := <-r.notices:
			return relayedMsg{msg: msg}
		}
	}
}
