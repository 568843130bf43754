// Package backend polls tmux for the live state of menu items.
package backend

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/atomicstack/flyout/internal/menu"
	"github.com/atomicstack/flyout/internal/tmux"
)

// probeSpacing is the minimum gap between two tmux queries.
const probeSpacing = 25 * time.Millisecond

var runTmux = tmux.Run

// Probe asks tmux for the checked state of one item. A checkbox is checked
// when the output reads on; a radio item when the output equals Value.
type Probe struct {
	Target menu.Target
	Args   []string
	Value  string
}

// State maps probe output to a checked state.
func (p Probe) State(output string) menu.CheckedState {
	out := strings.TrimSpace(output)
	if p.Value != "" {
		if out == p.Value {
			return menu.Checked
		}
		return menu.Unchecked
	}
	switch strings.ToLower(out) {
	case "on", "1", "yes", "true":
		return menu.Checked
	case "off", "0", "no", "false", "":
		return menu.Unchecked
	}
	return menu.Indeterminate
}

// Event conveys the probed state of one item or the error of a probe.
type Event struct {
	Target  menu.Target
	Checked menu.CheckedState
	Err     error
}

// Watcher polls tmux at a fixed interval and publishes events.
type Watcher struct {
	socketPath string
	interval   time.Duration
	throttle   *throttle

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher starts one poller per probe. Each poller probes once
// immediately and then every interval; a non-positive interval probes once.
func NewWatcher(socketPath string, interval time.Duration, probes []Probe) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		socketPath: socketPath,
		interval:   interval,
		throttle:   newThrottle(probeSpacing),
		ctx:        ctx,
		cancel:     cancel,
		events:     make(chan Event, 16),
	}

	for _, p := range probes {
		w.wg.Add(1)
		go w.poll(p)
	}

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of backend events. It is closed once every
// poller has exited.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. Pollers exit after their current probe
// completes; use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until all poller goroutines have exited and the events channel
// is closed.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) poll(p Probe) {
	defer w.wg.Done()

	emit := func() bool {
		if !w.throttle.wait(w.ctx) {
			return false
		}
		out, err := runTmux(w.socketPath, p.Args...)
		evt := Event{Target: p.Target, Err: err}
		if err == nil {
			evt.Checked = p.State(out)
		}
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- evt:
			return true
		}
	}

	if !emit() || w.interval <= 0 {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if !emit() {
				return
			}
		}
	}
}
