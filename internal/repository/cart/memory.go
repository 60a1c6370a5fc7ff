package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"zafago-storefront/internal/domain"
)

// memoryRepo keeps carts in process memory. It round-trips through JSON
// so it honors exactly the same storage contract as the Redis backend,
// including corrupt-payload detection. Used when no Redis address is
// configured and by tests.
type memoryRepo struct {
	mu   sync.Mutex
	data map[string][]byte
	subs map[int]chan string
	next int
}

func NewMemory() *memoryRepo {
	return &memoryRepo{
		data: make(map[string][]byte),
		subs: make(map[int]chan string),
	}
}

func (r *memoryRepo) Load(_ context.Context, cartID string) ([]domain.CartLine, error) {
	r.mu.Lock()
	raw, ok := r.data[cartID]
	r.mu.Unlock()
	if !ok {
		return nil, nil
	}

	var lines []domain.CartLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCartCorrupt, err)
	}
	return lines, nil
}

func (r *memoryRepo) Save(_ context.Context, cartID string, lines []domain.CartLine) error {
	raw, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	r.mu.Lock()
	r.data[cartID] = raw
	r.mu.Unlock()
	return nil
}

func (r *memoryRepo) Clear(_ context.Context, cartID string) error {
	r.mu.Lock()
	delete(r.data, cartID)
	r.mu.Unlock()
	return nil
}

func (r *memoryRepo) Publish(_ context.Context, cartID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ch := range r.subs {
		select {
		case ch <- cartID:
		default:
		}
	}
	return nil
}

func (r *memoryRepo) Updates(ctx context.Context) (<-chan string, func(), error) {
	ch := make(chan string, 16)
	r.mu.Lock()
	id := r.next
	r.next++
	r.subs[id] = ch
	r.mu.Unlock()

	stop := func() {
		r.mu.Lock()
		if _, ok := r.subs[id]; ok {
			delete(r.subs, id)
			close(ch)
		}
		r.mu.Unlock()
	}
	return ch, stop, nil
}

// Corrupt overwrites a stored cart with an undecodable payload. Test hook.
func (r *memoryRepo) Corrupt(cartID string) {
	r.mu.Lock()
	r.data[cartID] = []byte("{not json")
	r.mu.Unlock()
}
