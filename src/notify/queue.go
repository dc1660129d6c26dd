// Package notify keeps the operator's transient notifications. Every entry
// dismisses itself after the queue's TTL.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

type Notification struct {
	ID        uuid.UUID `json:"id"`
	Level     Level     `json:"level"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Recorder counts pushed notifications. *metrics.Metrics satisfies it.
type Recorder interface {
	Notification(level string)
}

type Queue struct {
	mu       sync.Mutex
	ttl      time.Duration
	items    []Notification
	nowFn    func() time.Time
	recorder Recorder
}

func NewQueue(ttl time.Duration, recorder Recorder) *Queue {
	return &Queue{ttl: ttl, nowFn: time.Now, recorder: recorder}
}

// SetClock replaces the time source. Tests only.
func (q *Queue) SetClock(now func() time.Time) {
	q.mu.Lock()
	q.nowFn = now
	q.mu.Unlock()
}

func (q *Queue) Push(level Level, title, message string) Notification {
	q.mu.Lock()
	now := q.nowFn()
	n := Notification{
		ID:        uuid.New(),
		Level:     level,
		Title:     title,
		Message:   message,
		CreatedAt: now,
		ExpiresAt: now.Add(q.ttl),
	}
	q.items = append(q.prune(now), n)
	q.mu.Unlock()

	if q.recorder != nil {
		q.recorder.Notification(string(level))
	}
	return n
}

func (q *Queue) Success(message string) Notification {
	return q.Push(LevelSuccess, "Success", message)
}

func (q *Queue) Error(message string) Notification {
	return q.Push(LevelError, "Error", message)
}

// List returns the live notifications, oldest first.
func (q *Queue) List() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = q.prune(q.nowFn())
	out := make([]Notification, len(q.items))
	copy(out, q.items)
	return out
}

// Dismiss removes one notification and reports whether it was still live.
func (q *Queue) Dismiss(id uuid.UUID) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, n := range q.items {
		if n.ID == id {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return true
		}
	}
	return false
}

func (q *Queue) Clear() {
	q.mu.Lock()
	q.items = nil
	q.mu.Unlock()
}

func (q *Queue) prune(now time.Time) []Notification {
	live := q.items[:0]
	for _, n := range q.items {
		if now.Before(n.ExpiresAt) {
			live = append(live, n)
		}
	}
	return live
}
