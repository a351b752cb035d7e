package transport

import (
	"encoding/json"
	"fmt"
	"sync"
)

// Memory is an in-process topic hub. It backs the window-local host events
// (pointer, drag, drop) and stands in for Redis in tests: payloads still
// round-trip through JSON so anything non-wire-safe fails loudly.
type Memory struct {
	mu     sync.RWMutex
	nextID int
	topics map[string][]*memorySub
	closed bool
}

type memorySub struct {
	id      int
	handler Handler
}

// NewMemory creates an empty in-process bus.
func NewMemory() *Memory {
	return &Memory{topics: make(map[string][]*memorySub)}
}

// Listen registers a handler for a channel. Delivery is synchronous, in
// subscription order, matching the per-channel FIFO the protocol assumes.
func (m *Memory) Listen(channel string, handler Handler) (func(), error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return func() {}, fmt.Errorf("memory bus closed")
	}
	m.nextID++
	sub := &memorySub{id: m.nextID, handler: handler}
	m.topics[channel] = append(m.topics[channel], sub)

	id := sub.id
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		subs := m.topics[channel]
		for i, s := range subs {
			if s.id == id {
				m.topics[channel] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}, nil
}

// Emit marshals the payload and delivers it to every current subscriber.
func (m *Memory) Emit(channel string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", channel, err)
	}

	m.mu.RLock()
	subs := append([]*memorySub(nil), m.topics[channel]...)
	closed := m.closed
	m.mu.RUnlock()
	if closed {
		return fmt.Errorf("memory bus closed")
	}

	for _, sub := range subs {
		dispatch(channel, sub.handler, data)
	}
	return nil
}

// Close drops all subscriptions.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.topics = make(map[string][]*memorySub)
	return nil
}
