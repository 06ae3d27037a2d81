package sysview

import (
	"context"
	"time"

	"github.com/go-logr/logr"
)

// DefaultHostLookupTimeout bounds one full host name lookup.
const DefaultHostLookupTimeout = 5 * time.Second

// HostNameMsg carries the result of a background full host name lookup. It
// is only honoured when Generation matches the latest lookup.
type HostNameMsg struct {
	Generation uint64
	Value      string
	Err        error
}

// hostLookup runs at most one live lookup at a time. Starting a new lookup
// cancels and joins the previous one; a result it already posted carries an
// old generation and is dropped by MiscView.Apply.
type hostLookup struct {
	log        logr.Logger
	poster     Poster
	timeout    time.Duration
	generation uint64
	cancel     context.CancelFunc
	done       chan struct{}
	closed     bool
}

func newHostLookup(log logr.Logger, poster Poster, timeout time.Duration) *hostLookup {
	if timeout <= 0 {
		timeout = DefaultHostLookupTimeout
	}
	return &hostLookup{log: log, poster: poster, timeout: timeout}
}

// start launches a lookup and returns its generation. Without a poster the
// lookup is not run and the caller keeps showing the placeholder.
func (h *hostLookup) start(resolve func(context.Context) (string, error)) uint64 {
	h.stop()
	h.generation++
	gen := h.generation
	if h.closed {
		return gen
	}
	if h.poster == nil {
		h.log.Error(nil, "cannot evaluate full host name in background", "reason", "no message poster")
		return gen
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	done := make(chan struct{})
	h.cancel, h.done = cancel, done
	post := h.poster
	go func() {
		defer close(done)
		value, err := resolve(ctx)
		post(HostNameMsg{Generation: gen, Value: value, Err: err})
	}()
	return gen
}

// stop cancels the running lookup and waits for its goroutine. The
// resolver is expected to honour its context and the poster not to block.
func (h *hostLookup) stop() {
	if h.cancel == nil {
		return
	}
	h.cancel()
	<-h.done
	h.cancel, h.done = nil, nil
}

// accepts reports whether a result still belongs to the current lookup.
func (h *hostLookup) accepts(gen uint64) bool {
	return !h.closed && gen == h.generation
}

func (h *hostLookup) close() {
	h.stop()
	h.closed = true
}
