package query

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MMN3003/tradedesk/src/logger"
	"github.com/robfig/cron/v3"
)

// PollRecorder receives polling events. *metrics.Metrics satisfies it.
type PollRecorder interface {
	PollTick(query string)
	SubscriptionStarted()
	SubscriptionStopped()
}

// Scheduler starts polling subscriptions. *Poller is the production one.
type Scheduler interface {
	Start(name string, every time.Duration, fn func(ctx context.Context)) *Subscription
}

var _ Scheduler = (*Poller)(nil)

// Poller runs every subscription as its own @every entry on one cron scheduler.
type Poller struct {
	cron     *cron.Cron
	logger   *logger.Logger
	recorder PollRecorder
}

func NewPoller(logg *logger.Logger, recorder PollRecorder) *Poller {
	c := cron.New(cron.WithChain(cron.Recover(cronLogger{logg})))
	c.Start()
	return &Poller{cron: c, logger: logg, recorder: recorder}
}

// Start runs fn right away and then every interval until the returned
// subscription is stopped. A tick is skipped while the previous one is running.
func (p *Poller) Start(name string, every time.Duration, fn func(ctx context.Context)) *Subscription {
	ctx, cancel := context.WithCancel(context.Background())

	var running atomic.Bool
	job := func() {
		if ctx.Err() != nil {
			return
		}
		if !running.CompareAndSwap(false, true) {
			p.logger.Debugf("poll %s: previous tick still running, skipped", name)
			return
		}
		defer running.Store(false)
		if p.recorder != nil {
			p.recorder.PollTick(name)
		}
		fn(ctx)
	}

	id := p.cron.Schedule(cron.Every(every), cron.FuncJob(job))
	if p.recorder != nil {
		p.recorder.SubscriptionStarted()
	}
	p.logger.Debugf("poll %s: started every %s", name, every)

	sub := NewSubscription(name, func() {
		p.cron.Remove(id)
		cancel()
		if p.recorder != nil {
			p.recorder.SubscriptionStopped()
		}
		p.logger.Debugf("poll %s: stopped", name)
	})
	go job()
	return sub
}

// Shutdown stops the scheduler and waits for running ticks until ctx expires.
func (p *Poller) Shutdown(ctx context.Context) {
	select {
	case <-p.cron.Stop().Done():
	case <-ctx.Done():
	}
}

// Subscription is the handle of one running poll.
type Subscription struct {
	name   string
	once   sync.Once
	stopFn func()
	done   chan struct{}
}

// NewSubscription wraps a stop function. Schedulers other than Poller use it.
func NewSubscription(name string, stop func()) *Subscription {
	return &Subscription{name: name, stopFn: stop, done: make(chan struct{})}
}

func (s *Subscription) Name() string { return s.name }

// Stop ends the poll. Calling it more than once is a no-op.
func (s *Subscription) Stop() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		if s.stopFn != nil {
			s.stopFn()
		}
		close(s.done)
	})
}

// Done is closed once Stop has run.
func (s *Subscription) Done() <-chan struct{} { return s.done }

// Stopped reports whether Stop has run.
func (s *Subscription) Stopped() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// cronLogger routes cron's own messages into the console logger.
type cronLogger struct {
	log *logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debugf("cron: %s %v", msg, keysAndValues)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Errorf("cron: %s: %v %v", msg, err, keysAndValues)
}
