// Package monitor runs the one-shot reachability check: probe the target on a
// fixed interval until the first success, then stop for good.
package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/SiirRandall/monic/internal/logging"
)

// Interval between two attempts. Fixed on purpose; it is not configurable.
const Interval = 60 * time.Second

type State int

const (
	Unreachable State = iota
	Reachable
)

func (s State) String() string {
	if s == Reachable {
		return "reachable"
	}
	return "unreachable"
}

// Prober attempts one connection to the target.
type Prober interface {
	Connect(ctx context.Context) error
}

// Sink displays the connectivity state. Calls come from the monitor goroutine.
type Sink interface {
	Unreachable(target string)
	Reachable(target string, at time.Time)
}

// Monitor owns the check loop for a single target.
//
//	Unreachable --failure--> Unreachable (next tick)
//	Unreachable --success--> Reachable (terminal, loop ends)
type Monitor struct {
	target   string
	prober   Prober
	sink     Sink
	interval time.Duration
	now      func() time.Time

	mu        sync.Mutex
	state     State
	attempts  int
	reachedAt time.Time
	started   bool

	ctx      context.Context
	cancel   context.CancelFunc
	doneCh   chan struct{}
	stopOnce sync.Once
}

// New builds a monitor. A non-positive interval falls back to Interval.
func New(target string, prober Prober, sink Sink, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = Interval
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Monitor{
		target:   target,
		prober:   prober,
		sink:     sink,
		interval: interval,
		now:      time.Now,
		ctx:      ctx,
		cancel:   cancel,
		doneCh:   make(chan struct{}),
	}
}

// Start shows the initial unreachable state and launches the loop. The first
// attempt happens immediately. Calling Start twice, or after Stop, does nothing.
func (m *Monitor) Start() {
	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return
	}
	m.started = true
	m.mu.Unlock()

	if m.sink != nil {
		m.sink.Unreachable(m.target)
	}
	go m.run()
}

// Stop cancels the in-flight attempt and every future one, then waits for the
// loop to exit. Safe to call more than once and before Start.
func (m *Monitor) Stop() {
	m.stopOnce.Do(m.cancel)

	m.mu.Lock()
	if !m.started {
		m.started = true
		close(m.doneCh)
	}
	m.mu.Unlock()

	<-m.doneCh
}

// Done is closed once the loop has ended, either reached or stopped.
func (m *Monitor) Done() <-chan struct{} { return m.doneCh }

func (m *Monitor) Target() string { return m.target }

func (m *Monitor) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Attempts returns how many connection attempts have been made so far.
func (m *Monitor) Attempts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.attempts
}

// ReachedAt is zero until the target has been reached.
func (m *Monitor) ReachedAt() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reachedAt
}

func (m *Monitor) run() {
	defer close(m.doneCh)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	if m.tick() {
		return
	}
	for {
		select {
		case <-ticker.C:
			if m.tick() {
				return
			}
		case <-m.ctx.Done():
			return
		}
	}
}

// tick makes one attempt and reports whether the loop is finished.
func (m *Monitor) tick() bool {
	if m.ctx.Err() != nil {
		return true
	}

	m.mu.Lock()
	m.attempts++
	n := m.attempts
	m.mu.Unlock()

	now := m.now()
	logging.Debug("--- attempt to reach "+m.target+" ---", logging.Fields{
		"target":  m.target,
		"attempt": n,
		"at":      now.Format(time.TimeOnly),
	})

	err := m.prober.Connect(m.ctx)
	if m.ctx.Err() != nil {
		// exit was requested mid-attempt; leave the indicator alone
		return true
	}
	if err != nil {
		logging.Debug(err.Error(), logging.Fields{"target": m.target, "attempt": n})
		return false
	}

	m.mu.Lock()
	m.state = Reachable
	m.reachedAt = now
	m.mu.Unlock()

	if m.sink != nil {
		m.sink.Reachable(m.target, now)
	}
	logging.Info(m.target+" reached !", logging.Fields{"target": m.target, "attempts": n})
	return true
}

// LogSink is the indicator used when no system tray is available.
type LogSink struct{}

func (LogSink) Unreachable(target string) {
	logging.Info(target+" not reached yet...", logging.Fields{"target": target})
}

func (LogSink) Reachable(target string, at time.Time) {
	logging.Info(target+" reached at "+at.Format(time.TimeOnly), logging.Fields{"target": target})
}
