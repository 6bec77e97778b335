// Package state holds the client-side view state: the catalog cache
// with its derived filtered view, the cart, the wishlist, and the
// Result-wrapped auth/profile/sell operation states. Managers own their
// state exclusively; the UI asks, it never mutates.
package state

import "sync"

// Observable is a single piece of state plus its subscribers. Writes go
// through the owning manager; subscribers are notified synchronously
// with the new value, so after a mutation returns no observer can read
// a stale value.
type Observable[T any] struct {
	mu   sync.Mutex
	val  T
	subs map[int]func(T)
	next int
}

func newObservable[T any](initial T) *Observable[T] {
	return &Observable[T]{val: initial, subs: map[int]func(T){}}
}

// Get returns the current value.
func (o *Observable[T]) Get() T {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.val
}

// Subscribe registers fn and returns a cancel func. fn is not called
// with the current value; read it with Get first if needed.
func (o *Observable[T]) Subscribe(fn func(T)) (cancel func()) {
	o.mu.Lock()
	id := o.next
	o.next++
	o.subs[id] = fn
	o.mu.Unlock()
	return func() {
		o.mu.Lock()
		delete(o.subs, id)
		o.mu.Unlock()
	}
}

// publish stores v and notifies subscribers on the calling goroutine.
func (o *Observable[T]) publish(v T) {
	o.mu.Lock()
	o.val = v
	fns := make([]func(T), 0, len(o.subs))
	for _, fn := range o.subs {
		fns = append(fns, fn)
	}
	o.mu.Unlock()
	for _, fn := range fns {
		fn(v)
	}
}
