package services

import (
	"errors"
	"sync"
	"time"

	"charter-api/models"

	"gorm.io/gorm"
)

// ErrQueueDrained reports a Track call against a queue that has been shut
// down.
var ErrQueueDrained = errors.New("event queue is drained")

const defaultQueueCapacity = 50

// EventQueue buffers analytics events and writes them to analytics_events in
// batches. It is constructed and owned by the caller rather than being a
// process-wide singleton: callers Track events, decide when to Flush, and
// Drain on shutdown. The queue never starts its own goroutine; a batch is
// written inline when the buffer reaches capacity.
type EventQueue struct {
	db       *gorm.DB
	capacity int

	mu      sync.Mutex
	buffer  []models.AnalyticsEvent
	seen    map[string]struct{}
	drained bool
}

// NewEventQueue returns a queue that auto-flushes once capacity events are
// buffered. Non-positive capacity falls back to the default.
func NewEventQueue(db *gorm.DB, capacity int) *EventQueue {
	if capacity <= 0 {
		capacity = defaultQueueCapacity
	}
	return &EventQueue{
		db:       db,
		capacity: capacity,
		seen:     make(map[string]struct{}),
	}
}

// Track buffers an event. Events carrying a dedup key already present in the
// current batch are dropped silently. Tracking after Drain fails with
// ErrQueueDrained.
func (q *EventQueue) Track(event models.AnalyticsEvent) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.drained {
		return ErrQueueDrained
	}

	if event.DedupKey != "" {
		if _, dup := q.seen[event.DedupKey]; dup {
			return nil
		}
		q.seen[event.DedupKey] = struct{}{}
	}

	now := time.Now()
	if event.OccurredAt.IsZero() {
		event.OccurredAt = now
	}
	event.CreateAt = now
	q.buffer = append(q.buffer, event)

	if len(q.buffer) >= q.capacity {
		return q.flushLocked()
	}
	return nil
}

// Flush writes the buffered batch. On failure the events stay buffered so a
// later flush can retry.
func (q *EventQueue) Flush() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.flushLocked()
}

// Drain flushes and permanently stops the queue.
func (q *EventQueue) Drain() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	err := q.flushLocked()
	q.drained = true
	return err
}

// Len reports how many events are currently buffered.
func (q *EventQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.buffer)
}

func (q *EventQueue) flushLocked() error {
	if len(q.buffer) == 0 {
		return nil
	}
	batch := q.buffer
	if err := q.db.Create(&batch).Error; err != nil {
		return &PersistenceError{Err: err}
	}
	q.buffer = nil
	q.seen = make(map[string]struct{})
	return nil
}
