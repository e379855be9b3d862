package session

import (
	"sync"
	"time"
)

// throttler coalesces rapid edits per field into at most one send per
// debounce window. A new value for a pending field replaces the queued one
// and restarts that field's timer only; the last value written before the
// window closes is the one sent.
type throttler struct {
	mu      sync.Mutex
	window  time.Duration
	send    func(name string, value int)
	pending map[string]*pendingEdit
	closed  bool
}

type pendingEdit struct {
	value int
	timer *time.Timer
}

func newThrottler(window time.Duration, send func(string, int)) *throttler {
	return &throttler{
		window:  window,
		send:    send,
		pending: make(map[string]*pendingEdit),
	}
}

func (t *throttler) put(name string, value int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	if p, ok := t.pending[name]; ok {
		p.value = value
		p.timer.Reset(t.window)
		return
	}
	p := &pendingEdit{value: value}
	p.timer = time.AfterFunc(t.window, func() { t.flush(name) })
	t.pending[name] = p
}

func (t *throttler) flush(name string) {
	t.mu.Lock()
	p, ok := t.pending[name]
	if !ok || t.closed {
		t.mu.Unlock()
		return
	}
	delete(t.pending, name)
	value := p.value
	t.mu.Unlock()

	t.send(name, value)
}

func (t *throttler) pendingCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.pending)
}

// cancelAll drops every pending edit without sending. A full-state load
// supersedes anything still queued.
func (t *throttler) cancelAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for name, p := range t.pending {
		p.timer.Stop()
		delete(t.pending, name)
	}
}

// close cancels every pending timer. No send fires after close, even when
// a timer was already scheduled.
func (t *throttler) close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	for name, p := range t.pending {
		p.timer.Stop()
		delete(t.pending, name)
	}
}
