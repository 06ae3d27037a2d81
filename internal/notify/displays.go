package notify

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-logr/logr"
	"github.com/nvm/sysinspect/internal/events"
	"github.com/nvm/sysinspect/internal/platform"
	"github.com/nvm/sysinspect/internal/retry"
)

// maxPollBackoff caps the poll delay while displays cannot be enumerated.
const maxPollBackoff = 30 * time.Second

// DisplaySource enumerates the connected displays.
type DisplaySource interface {
	Displays() ([]platform.Display, error)
}

// DisplayPoller publishes a display notification when the set of connected
// displays or their geometry changes. X11 and Wayland offer no portable
// change signal to a terminal program, so the displays are polled.
type DisplayPoller struct {
	source   DisplaySource
	interval time.Duration
	bus      *events.Bus
	log      logr.Logger
	now      func() time.Time

	last    string
	primed  bool
	failing bool
	done    chan struct{}
	wg      sync.WaitGroup
	stopped sync.Once
}

// NewDisplayPoller creates a poller. An interval of zero or less disables
// Start.
func NewDisplayPoller(source DisplaySource, interval time.Duration, bus *events.Bus, log logr.Logger) *DisplayPoller {
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	return &DisplayPoller{
		source:   source,
		interval: interval,
		bus:      bus,
		log:      log.WithName("displays"),
		now:      time.Now,
		done:     make(chan struct{}),
	}
}

// Start polls in the background until Stop. While the displays cannot be
// enumerated the poll delay backs off up to maxPollBackoff.
func (p *DisplayPoller) Start() {
	if p.interval <= 0 {
		return
	}
	p.Poll()
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		backoff := retry.NewBackoff(p.interval, maxPollBackoff)
		timer := time.NewTimer(p.nextDelay(backoff))
		defer timer.Stop()
		for {
			select {
			case <-timer.C:
				p.Poll()
				timer.Reset(p.nextDelay(backoff))
			case <-p.done:
				return
			}
		}
	}()
}

// nextDelay returns the poll interval, or the next backoff delay after a
// failed poll.
func (p *DisplayPoller) nextDelay(b *retry.Backoff) time.Duration {
	if !p.failing {
		b.Reset()
		return p.interval
	}
	return b.Next()
}

// Stop ends polling and waits for the poll loop.
func (p *DisplayPoller) Stop() {
	p.stopped.Do(func() { close(p.done) })
	p.wg.Wait()
}

// Poll checks the displays once and reports whether a change was published.
// The first poll only records the current state.
func (p *DisplayPoller) Poll() bool {
	displays, err := p.source.Displays()
	p.failing = err != nil
	if err != nil {
		p.log.V(1).Info("cannot enumerate displays", "error", err.Error())
		displays = nil
	}
	fp := fingerprint(displays)
	if !p.primed {
		p.primed, p.last = true, fp
		return false
	}
	if fp == p.last {
		return false
	}
	p.last = fp

	n := Notification{
		Kind:   KindDisplay,
		Source: "displays",
		Detail: fmt.Sprintf("%d display(s) connected", len(displays)),
		At:     p.now(),
	}
	p.bus.Publish(n.Event())
	return true
}

func fingerprint(displays []platform.Display) string {
	var sb strings.Builder
	for _, d := range displays {
		fmt.Fprintf(&sb, "%s|%t|%d|%v|%v;", d.Name, d.Primary, d.RefreshHz, d.Geometry, d.ClientArea)
	}
	return sb.String()
}
