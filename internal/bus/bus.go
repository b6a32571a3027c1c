// Package bus carries the "something changed, re-check" signal between
// mutations (win marking, completion edits) and whatever caches or views
// need to refresh. No payload is passed; subscribers re-fetch what they need.
package bus

import (
	"log"
	"sync"
)

// Bus is a process-local set of zero-argument listeners. Instances are
// constructor-injected from the composition root so tests can run isolated
// buses.
type Bus struct {
	mu        sync.Mutex
	nextID    int
	listeners map[int]func()
}

func New() *Bus {
	return &Bus{listeners: make(map[int]func())}
}

// Subscribe registers a listener and returns its unsubscribe function.
// Unsubscribing during a publish is safe.
func (b *Bus) Subscribe(fn func()) (unsubscribe func()) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.listeners[id] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.listeners, id)
		b.mu.Unlock()
	}
}

// Publish synchronously invokes every listener registered at call time.
// Listeners run against a snapshot, and a panicking listener cannot block
// the others. No ordering guarantee between listeners.
func (b *Bus) Publish() {
	b.mu.Lock()
	snapshot := make([]func(), 0, len(b.listeners))
	for _, fn := range b.listeners {
		snapshot = append(snapshot, fn)
	}
	b.mu.Unlock()

	for _, fn := range snapshot {
		b.invoke(fn)
	}
}

func (b *Bus) invoke(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("bus: listener panicked: %v", r)
		}
	}()
	fn()
}
