// Package querytest provides a hand-driven query.Scheduler for use case tests.
package querytest

import (
	"context"
	"sync"
	"time"

	"github.com/MMN3003/tradedesk/src/query"
)

var _ query.Scheduler = (*ManualScheduler)(nil)

// ManualScheduler never ticks on its own; Tick runs every live subscription of a name.
type ManualScheduler struct {
	mu   sync.Mutex
	subs []*manualSub
}

type manualSub struct {
	name     string
	interval time.Duration
	fn       func(ctx context.Context)
	ctx      context.Context
	handle   *query.Subscription
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Start registers fn. Unlike query.Poller it does not run the first tick.
func (m *ManualScheduler) Start(name string, every time.Duration, fn func(ctx context.Context)) *query.Subscription {
	ctx, cancel := context.WithCancel(context.Background())
	s := &manualSub{name: name, interval: every, fn: fn, ctx: ctx}
	s.handle = query.NewSubscription(name, cancel)

	m.mu.Lock()
	m.subs = append(m.subs, s)
	m.mu.Unlock()
	return s.handle
}

// Tick runs one round of every live subscription called name and returns how many ran.
func (m *ManualScheduler) Tick(name string) int {
	m.mu.Lock()
	var live []*manualSub
	for _, s := range m.subs {
		if s.name == name && !s.handle.Stopped() {
			live = append(live, s)
		}
	}
	m.mu.Unlock()

	for _, s := range live {
		s.fn(s.ctx)
	}
	return len(live)
}

// Active returns the number of live subscriptions called name.
func (m *ManualScheduler) Active(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, s := range m.subs {
		if s.name == name && !s.handle.Stopped() {
			n++
		}
	}
	return n
}

// Interval returns the interval of the most recent subscription called name.
func (m *ManualScheduler) Interval(name string) time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.subs) - 1; i >= 0; i-- {
		if m.subs[i].name == name {
			return m.subs[i].interval
		}
	}
	return 0
}
