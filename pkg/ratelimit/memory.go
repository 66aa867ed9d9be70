package ratelimit

import (
	"container/list"
	"context"
	"sync"
	"time"
)

type window struct {
	resetAt time.Time
	key     string
	count   int
}

// Memory is a process-local fixed-window limiter.
//
// Windows live in a map for lookup and a list ordered by last hit, so the
// key table stays bounded under a flood of distinct client keys.
type Memory struct {
	items  map[string]*list.Element
	order  *list.List
	opts   *memoryOptions
	done   chan struct{}
	policy Policy
	mu     sync.Mutex
	closed bool
}

// NewMemory creates an in-memory limiter. It panics on an invalid policy,
// since policies come from validated configuration.
func NewMemory(p Policy, opts ...MemoryOption) *Memory {
	if err := p.Validate(); err != nil {
		panic(err)
	}

	o := defaultMemoryOptions()
	for _, opt := range opts {
		opt(o)
	}

	m := &Memory{
		items:  make(map[string]*list.Element),
		order:  list.New(),
		opts:   o,
		done:   make(chan struct{}),
		policy: p,
	}

	if o.cleanupInterval > 0 {
		go m.janitor()
	}

	return m
}

// Allow implements Limiter.
func (m *Memory) Allow(_ context.Context, key string) (Decision, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return Decision{}, ErrClosed
	}

	now := m.opts.now()

	elem, ok := m.items[key]
	if !ok || now.After(elem.Value.(*window).resetAt) {
		w := &window{key: key, count: 1, resetAt: now.Add(m.policy.Window)}
		if ok {
			elem.Value = w
			m.order.MoveToFront(elem)
		} else {
			if m.opts.maxKeys > 0 && len(m.items) >= m.opts.maxKeys {
				m.evictOldest()
			}
			m.items[key] = m.order.PushFront(w)
		}
		return decide(m.policy, w.count, w.resetAt, true), nil
	}

	w := elem.Value.(*window)
	m.order.MoveToFront(elem)

	if w.count >= m.policy.Max {
		return decide(m.policy, w.count, w.resetAt, false), nil
	}

	w.count++
	return decide(m.policy, w.count, w.resetAt, true), nil
}

// Len returns the number of tracked keys.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Close stops the janitor. Close is idempotent.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true
	close(m.done)
	return nil
}

func (m *Memory) janitor() {
	ticker := time.NewTicker(m.opts.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.purge()
		}
	}
}

// purge drops windows that have already reset. Walks from the least recently
// hit end, which is where stale windows collect.
func (m *Memory) purge() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.opts.now()
	for elem := m.order.Back(); elem != nil; {
		prev := elem.Prev()
		if now.After(elem.Value.(*window).resetAt) {
			m.remove(elem)
		}
		elem = prev
	}
}

// Caller must hold the mutex.
func (m *Memory) evictOldest() {
	if elem := m.order.Back(); elem != nil {
		m.remove(elem)
	}
}

// Caller must hold the mutex.
func (m *Memory) remove(elem *list.Element) {
	m.order.Remove(elem)
	delete(m.items, elem.Value.(*window).key)
}

var _ Limiter = (*Memory)(nil)
