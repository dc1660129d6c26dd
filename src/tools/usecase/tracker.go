package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/MMN3003/tradedesk/src/Infrastructure/tradeapi"
	"github.com/MMN3003/tradedesk/src/logger"
	"github.com/MMN3003/tradedesk/src/query"
	"github.com/MMN3003/tradedesk/src/tools/domain"
)

// SnipePoll names the subscription of the tracked snipe.
const SnipePoll = query.GetSnipeData

// Tracker polls the data of one snipe and publishes every observation.
type Tracker struct {
	api            domain.ToolsAPI
	cache          *query.Cache
	scheduler      query.Scheduler
	logger         *logger.Logger
	every          time.Duration
	stopOnTerminal bool

	mu        sync.Mutex
	snipe     *tradeapi.Snipe
	sub       *query.Subscription
	latest    *domain.SnipeUpdate
	listeners map[int]func(domain.SnipeUpdate)
	nextID    int
}

// NewTracker builds a tracker polling every interval. With stopOnTerminal the
// subscription ends once the snipe reaches DONE or ERROR.
func NewTracker(api domain.ToolsAPI, cache *query.Cache, scheduler query.Scheduler, logg *logger.Logger, every time.Duration, stopOnTerminal bool) *Tracker {
	return &Tracker{
		api:            api,
		cache:          cache,
		scheduler:      scheduler,
		logger:         logg,
		every:          every,
		stopOnTerminal: stopOnTerminal,
		listeners:      make(map[int]func(domain.SnipeUpdate)),
	}
}

// Track replaces whatever was tracked before with snipe.
func (t *Tracker) Track(snipe tradeapi.Snipe) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopLocked()
	t.snipe = &snipe
	t.latest = nil
	log := t.logger.WithFields(map[string]interface{}{"snipe": snipe.ID, "contract": snipe.ContractID})
	t.sub = t.scheduler.Start(SnipePoll, t.every, t.tick(snipe.ID, log))
	log.Infof("tools: tracking snipe")
}

// Stop ends tracking. Calling it while nothing is tracked is a no-op.
func (t *Tracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
	t.snipe = nil
	t.latest = nil
}

func (t *Tracker) stopLocked() {
	if t.sub != nil {
		t.sub.Stop()
		t.sub = nil
	}
}

// Tracking returns the tracked snipe, nil in list mode.
func (t *Tracker) Tracking() *tradeapi.Snipe {
	t.mu.Lock()
	defer t.mu.Unlock()
	return copyOf(t.snipe)
}

// Latest returns the last published update of the tracked snipe.
func (t *Tracker) Latest() (domain.SnipeUpdate, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.latest == nil {
		return domain.SnipeUpdate{}, false
	}
	return *t.latest, true
}

// Polling reports whether the tracked snipe is still being polled.
func (t *Tracker) Polling() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sub != nil && !t.sub.Stopped()
}

// Subscribe registers fn for every update; the returned func unregisters it.
func (t *Tracker) Subscribe(fn func(domain.SnipeUpdate)) (cancel func()) {
	t.mu.Lock()
	id := t.nextID
	t.nextID++
	t.listeners[id] = fn
	t.mu.Unlock()

	return func() {
		t.mu.Lock()
		delete(t.listeners, id)
		t.mu.Unlock()
	}
}

func (t *Tracker) tick(id int64, log *logger.Logger) func(ctx context.Context) {
	key := query.Key(query.GetSnipeData, map[string]any{"id": id})
	return func(ctx context.Context) {
		data, err := query.Refetch(ctx, t.cache, key, func(ctx context.Context) (*tradeapi.SnipeData, error) {
			return t.api.GetSnipeDataByID(ctx, id)
		})
		if err != nil {
			if ctx.Err() == nil {
				log.Warnf("tools: snipe data: %v", err)
			}
			return
		}
		if data == nil || ctx.Err() != nil {
			return
		}
		update := domain.NewSnipeUpdate(id, *data)

		t.mu.Lock()
		if t.snipe == nil || t.snipe.ID != id {
			t.mu.Unlock()
			return
		}
		tracked := *t.snipe
		tracked.Status = update.Status
		t.snipe = &tracked
		t.latest = &update
		listeners := make([]func(domain.SnipeUpdate), 0, len(t.listeners))
		for _, fn := range t.listeners {
			listeners = append(listeners, fn)
		}
		var finished *query.Subscription
		if update.Terminal && t.stopOnTerminal {
			finished, t.sub = t.sub, nil
		}
		t.mu.Unlock()

		for _, fn := range listeners {
			fn(update)
		}
		if finished != nil {
			finished.Stop()
			log.Infof("tools: snipe finished with %s, polling stopped", update.Label)
		}
	}
}
