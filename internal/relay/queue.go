package relay

import (
	"context"
	"sync"
	"time"

	"github.com/mrhobbeys/HooknSock/pkg/id"
)

// Item is one relayed payload awaiting delivery.
type Item struct {
	ID         id.ID
	Payload    []byte
	EnqueuedAt time.Time
}

// Queue is a FIFO delivery queue for one channel. Push never blocks;
// Pop blocks until an item arrives or the context is cancelled.
type Queue struct {
	mu       sync.Mutex
	items    []Item
	capacity int
	notifyCh chan struct{}
}

// NewQueue creates a queue. capacity 0 means unbounded.
func NewQueue(capacity int) *Queue {
	return &Queue{capacity: capacity, notifyCh: make(chan struct{})}
}

// Push appends an item at the tail. Returns ErrQueueFull when a bounded
// queue is at capacity.
func (q *Queue) Push(it Item) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.capacity > 0 && len(q.items) >= q.capacity {
		return ErrQueueFull
	}
	q.items = append(q.items, it)
	// wake all waiters
	close(q.notifyCh)
	q.notifyCh = make(chan struct{})
	return nil
}

// Pop removes and returns the head item, blocking while the queue is
// empty. Cancellation returns ctx.Err() promptly and leaves no waiter
// registered on the queue.
func (q *Queue) Pop(ctx context.Context) (Item, error) {
	for {
		q.mu.Lock()
		if len(q.items) > 0 {
			it := q.items[0]
			q.items = q.items[1:]
			if len(q.items) == 0 {
				q.items = nil
			}
			q.mu.Unlock()
			return it, nil
		}
		ch := q.notifyCh
		q.mu.Unlock()
		select {
		case <-ch:
		case <-ctx.Done():
			return Item{}, ctx.Err()
		}
	}
}

// Len returns the current queue depth.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
