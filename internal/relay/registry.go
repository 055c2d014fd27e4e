package relay

import "sync"

// Registry owns the delivery queue of every channel. Queues are created
// on first reference and live for the process lifetime; channel
// cardinality is operator-configured and expected to be small.
type Registry struct {
	mu       sync.RWMutex
	queues   map[string]*Queue
	capacity int
}

// NewRegistry creates a registry whose queues carry the given capacity
// (0 = unbounded).
func NewRegistry(capacity int) *Registry {
	return &Registry{queues: make(map[string]*Queue), capacity: capacity}
}

// QueueFor returns the channel's queue, creating it on first call.
// Concurrent first calls for the same name return the same instance.
func (r *Registry) QueueFor(name string) *Queue {
	r.mu.RLock()
	q, ok := r.queues[name]
	r.mu.RUnlock()
	if ok {
		return q
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if q, ok := r.queues[name]; ok {
		return q
	}
	q = NewQueue(r.capacity)
	r.queues[name] = q
	return q
}

// Channels returns the number of channels referenced so far.
func (r *Registry) Channels() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.queues)
}

// Depths returns the current queue depth per channel.
func (r *Registry) Depths() map[string]int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]int, len(r.queues))
	for name, q := range r.queues {
		out[name] = q.Len()
	}
	return out
}
