package query

import (
	"container/list"
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Recorder receives cache lookup outcomes. *metrics.Metrics satisfies it.
type Recorder interface {
	CacheLookup(result string)
}

// Cache is a key-addressed LRU of backend query results with a freshness
// window. Concurrent fetches of the same key share one backend call.
type Cache struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	items    map[string]*list.Element
	order    *list.List
	epoch    uint64
	group    singleflight.Group
	nowFn    func() time.Time
	recorder Recorder
}

type entry struct {
	key       string
	value     any
	fetchedAt time.Time
}

type CacheOption func(*Cache)

func WithClock(now func() time.Time) CacheOption { return func(c *Cache) { c.nowFn = now } }
func WithRecorder(r Recorder) CacheOption        { return func(c *Cache) { c.recorder = r } }

// NewCache creates a cache holding at most capacity results, each fresh for ttl.
func NewCache(capacity int, ttl time.Duration, opts ...CacheOption) *Cache {
	if capacity <= 0 {
		capacity = 256
	}
	c := &Cache{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*list.Element, capacity),
		order:    list.New(),
		nowFn:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch returns the fresh cached value under key, or runs fn to load it.
// Only one fn runs per key at a time; concurrent callers share its result.
func Fetch[T any](ctx context.Context, c *Cache, key string, fn func(context.Context) (T, error)) (T, error) {
	if v, ok := c.get(key, true); ok {
		if typed, ok := v.(T); ok {
			c.record("hit")
			return typed, nil
		}
	}
	c.record("miss")
	return load(ctx, c, key, fn)
}

// Refetch ignores freshness and always goes to the backend, still
// de-duplicated per key. Polling ticks use it.
func Refetch[T any](ctx context.Context, c *Cache, key string, fn func(context.Context) (T, error)) (T, error) {
	c.record("refetch")
	return load(ctx, c, key, fn)
}

// Peek returns the last stored value under key regardless of freshness.
func Peek[T any](c *Cache, key string) (T, bool) {
	var zero T
	v, ok := c.get(key, false)
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

// load runs fn once per key and epoch. fn gets a context detached from the
// caller's cancellation so one caller giving up does not fail the others; each
// caller still returns as soon as its own ctx is done.
func load[T any](ctx context.Context, c *Cache, key string, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	c.mu.Lock()
	epoch := c.epoch
	c.mu.Unlock()

	detached := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key+"#"+strconv.FormatUint(epoch, 10), func() (any, error) {
		v, err := fn(detached)
		if err != nil {
			return nil, err
		}
		c.set(key, v, epoch)
		return v, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Shared {
			c.record("shared")
		}
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

// Invalidate drops every entry of the named query and returns how many went.
// Results of fetches that were already in flight are not stored afterwards.
func (c *Cache) Invalidate(names ...string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.epoch++
	removed := 0
	for key, elem := range c.items {
		for _, name := range names {
			if strings.HasPrefix(key, name+"?") {
				c.order.Remove(elem)
				delete(c.items, key)
				removed++
				break
			}
		}
	}
	return removed
}

// Clear drops everything. Called on logout.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.epoch++
	c.items = make(map[string]*list.Element, c.capacity)
	c.order.Init()
}

// Len returns the number of stored entries, fresh or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *Cache) get(key string, freshOnly bool) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return nil, false
	}
	e := elem.Value.(*entry)
	if freshOnly && c.nowFn().Sub(e.fetchedAt) > c.ttl {
		return nil, false
	}
	c.order.MoveToFront(elem)
	return e.value, true
}

func (c *Cache) set(key string, v any, epoch uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if epoch != c.epoch {
		return
	}
	if elem, ok := c.items[key]; ok {
		e := elem.Value.(*entry)
		e.value = v
		e.fetchedAt = c.nowFn()
		c.order.MoveToFront(elem)
		return
	}
	c.items[key] = c.order.PushFront(&entry{key: key, value: v, fetchedAt: c.nowFn()})
	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.items, oldest.Value.(*entry).key)
	}
}

func (c *Cache) record(result string) {
	if c.recorder != nil {
		c.recorder.CacheLookup(result)
	}
}
