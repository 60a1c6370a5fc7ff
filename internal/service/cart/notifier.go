package cart

import "sync"

// Event describes a cart change, carrying enough for a header badge to
// update without re-reading storage.
type Event struct {
	CartID        string `json:"cartId"`
	TotalQuantity int    `json:"totalQuantity"`
}

// Notifier fans cart change events out to same-process observers.
// Slow observers drop events rather than stall the add path.
type Notifier struct {
	mu   sync.Mutex
	subs map[int]chan Event
	next int
}

func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int]chan Event)}
}

// Subscribe registers an observer. The returned cancel function must be
// called when the observing view goes away.
func (n *Notifier) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 8)
	n.mu.Lock()
	id := n.next
	n.next++
	n.subs[id] = ch
	n.mu.Unlock()

	cancel := func() {
		n.mu.Lock()
		if _, ok := n.subs[id]; ok {
			delete(n.subs, id)
			close(ch)
		}
		n.mu.Unlock()
	}
	return ch, cancel
}

func (n *Notifier) notify(e Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, ch := range n.subs {
		select {
		case ch <- e:
		default:
		}
	}
}
