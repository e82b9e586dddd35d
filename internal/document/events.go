package document

import (
	"sort"
	"sync"

	"github.com/san-kum/pagescroll/internal/scroll"
)

// EventTarget holds listeners keyed by event name.
type EventTarget struct {
	mu        sync.Mutex
	listeners map[string]map[int]scroll.Listener
	next      int
}

func NewEventTarget() *EventTarget {
	return &EventTarget{listeners: make(map[string]map[int]scroll.Listener)}
}

func (t *EventTarget) AddListener(event string, l scroll.Listener) func() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.listeners[event] == nil {
		t.listeners[event] = make(map[int]scroll.Listener)
	}
	id := t.next
	t.next++
	t.listeners[event][id] = l

	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		delete(t.listeners[event], id)
	}
}

// Dispatch calls every listener registered for ev.Type in registration
// order. Listeners may remove themselves while being dispatched.
func (t *EventTarget) Dispatch(ev scroll.Event) int {
	t.mu.Lock()
	ids := make([]int, 0, len(t.listeners[ev.Type]))
	for id := range t.listeners[ev.Type] {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	snapshot := make([]scroll.Listener, 0, len(ids))
	for _, id := range ids {
		snapshot = append(snapshot, t.listeners[ev.Type][id])
	}
	t.mu.Unlock()

	for _, l := range snapshot {
		l(ev)
	}
	return len(snapshot)
}

func (t *EventTarget) ListenerCount(event string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.listeners[event])
}

func (t *EventTarget) TotalListeners() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, ls := range t.listeners {
		n += len(ls)
	}
	return n
}
