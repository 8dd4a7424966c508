package dnd

import "sync"

// Handler receives events published on a Bus.
type Handler func(Event)

type subscription struct {
	id      int
	handler Handler
}

// Bus fans drag-and-drop events out to every subscribed handler. Views
// subscribe when they mount and must call the returned function when they are
// torn down.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   []subscription
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers h and returns the function that removes it. The
// returned function may be called more than once.
func (b *Bus) Subscribe(h Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, handler: h})

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

func (b *Bus) remove(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}

// Publish delivers e to every handler in subscription order.
func (b *Bus) Publish(e Event) {
	b.mu.Lock()
	handlers := make([]Handler, len(b.subs))
	for i, s := range b.subs {
		handlers[i] = s.handler
	}
	b.mu.Unlock()

	for _, h := range handlers {
		h(e)
	}
}

// Len returns the number of live subscriptions.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
