package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"zafago-storefront/internal/domain"
	cartrepo "zafago-storefront/internal/repository/cart"
)

type stubProductRepo struct {
	products map[string]domain.Product
}

func (s *stubProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

type failingRepo struct {
	cartrepo.Repository
	loadErr error
	saved   []domain.CartLine
}

func (f *failingRepo) Load(_ context.Context, _ string) ([]domain.CartLine, error) {
	return nil, f.loadErr
}

func (f *failingRepo) Save(_ context.Context, _ string, lines []domain.CartLine) error {
	f.saved = lines
	return nil
}

func (f *failingRepo) Publish(_ context.Context, _ string) error { return nil }

func newTestService(repo cartrepo.Repository) (*Service, *stubProductRepo) {
	products := &stubProductRepo{products: map[string]domain.Product{
		"p1": {ID: "p1", Name: "Emberfall", PriceCents: 3999},
		"p2": {ID: "p2", Name: "Hollow Crown", PriceCents: 4999, DiscountPct: 50},
	}}
	return New(repo, products, nil), products
}

func TestAddSameProductTwiceMergesLine(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(cartrepo.NewMemory())

	if _, err := svc.Add(ctx, "c1", "p1", 1); err != nil {
		t.Fatalf("first add: %v", err)
	}
	cart, err := svc.Add(ctx, "c1", "p1", 1)
	if err != nil {
		t.Fatalf("second add: %v", err)
	}

	if len(cart.Lines) != 1 {
		t.Fatalf("expected a single merged line, got %d", len(cart.Lines))
	}
	if cart.Lines[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", cart.Lines[0].Quantity)
	}
}

func TestAddPreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(cartrepo.NewMemory())

	if _, err := svc.Add(ctx, "c1", "p1", 1); err != nil {
		t.Fatalf("add p1: %v", err)
	}
	cart, err := svc.Add(ctx, "c1", "p2", 1)
	if err != nil {
		t.Fatalf("add p2: %v", err)
	}

	if len(cart.Lines) != 2 {
		t.Fatalf("expected two lines, got %d", len(cart.Lines))
	}
	if cart.Lines[0].Product.ID != "p1" || cart.Lines[1].Product.ID != "p2" {
		t.Fatalf("insertion order lost: %+v", cart.Lines)
	}
	if cart.Lines[0].Quantity != 1 || cart.Lines[1].Quantity != 1 {
		t.Fatalf("expected quantities 1/1, got %+v", cart.Lines)
	}
}

func TestAddComputesDiscountedTotals(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(cartrepo.NewMemory())

	cart, err := svc.Add(ctx, "c1", "p2", 2)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	// 4999 at 50% off is 2500 per unit, rounded.
	if cart.TotalCents != 5000 {
		t.Fatalf("expected total 5000, got %d", cart.TotalCents)
	}
	if cart.TotalQuantity != 2 {
		t.Fatalf("expected quantity 2, got %d", cart.TotalQuantity)
	}
}

func TestAddUnknownProduct(t *testing.T) {
	svc, _ := newTestService(cartrepo.NewMemory())
	_, err := svc.Add(context.Background(), "c1", "ghost", 1)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAddRecoversFromMalformedStorage(t *testing.T) {
	ctx := context.Background()
	repo := cartrepo.NewMemory()
	svc, _ := newTestService(repo)

	if _, err := svc.Add(ctx, "c1", "p1", 1); err != nil {
		t.Fatalf("seed add: %v", err)
	}
	repo.Corrupt("c1")

	cart, err := svc.Add(ctx, "c1", "p2", 1)
	if err != nil {
		t.Fatalf("add after corruption: %v", err)
	}
	if !cart.Recovered {
		t.Fatal("expected recovery notice")
	}
	if len(cart.Lines) != 1 || cart.Lines[0].Product.ID != "p2" {
		t.Fatalf("expected single-line cart from empty baseline, got %+v", cart.Lines)
	}

	// The recovered cart was persisted; subsequent reads are clean.
	got, err := svc.Get(ctx, "c1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Recovered || len(got.Lines) != 1 {
		t.Fatalf("expected clean single-line cart, got %+v", got)
	}
}

func TestAddRecoversFromUnavailableStorage(t *testing.T) {
	repo := &failingRepo{loadErr: errors.New("connection refused")}
	svc, _ := newTestService(repo)

	cart, err := svc.Add(context.Background(), "c1", "p1", 1)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !cart.Recovered {
		t.Fatal("expected recovery notice")
	}
	if len(repo.saved) != 1 {
		t.Fatalf("expected add applied to empty baseline, saved %+v", repo.saved)
	}
}

func TestGetAbsentCartIsEmpty(t *testing.T) {
	svc, _ := newTestService(cartrepo.NewMemory())
	cart, err := svc.Get(context.Background(), "fresh")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(cart.Lines) != 0 || cart.TotalQuantity != 0 || cart.Recovered {
		t.Fatalf("expected pristine empty cart, got %+v", cart)
	}
}

func TestRemoveLine(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(cartrepo.NewMemory())

	if _, err := svc.Add(ctx, "c1", "p1", 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	cart, err := svc.Remove(ctx, "c1", "p1")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(cart.Lines) != 0 {
		t.Fatalf("expected empty cart, got %+v", cart.Lines)
	}

	if _, err := svc.Remove(ctx, "c1", "p1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for absent line, got %v", err)
	}
}

func TestAddNotifiesSubscribers(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(cartrepo.NewMemory())

	events, cancel := svc.Notifier().Subscribe()
	defer cancel()

	if _, err := svc.Add(ctx, "c1", "p1", 3); err != nil {
		t.Fatalf("add: %v", err)
	}

	e := <-events
	if e.CartID != "c1" || e.TotalQuantity != 3 {
		t.Fatalf("unexpected event %+v", e)
	}
}

func TestWatchStorageForwardsRemoteChanges(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo := cartrepo.NewMemory()
	svc, _ := newTestService(repo)

	// Another instance wrote the cart and published the change signal.
	if err := repo.Save(ctx, "c1", []domain.CartLine{
		{Product: domain.Product{ID: "p1"}, Quantity: 4},
	}); err != nil {
		t.Fatalf("save: %v", err)
	}

	events, cancelSub := svc.Notifier().Subscribe()
	defer cancelSub()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = svc.WatchStorage(ctx)
	}()

	// The watcher subscribes asynchronously; keep publishing until the
	// forwarded event comes through.
	deadline := time.After(2 * time.Second)
	var e Event
	for waiting := true; waiting; {
		if err := repo.Publish(ctx, "c1"); err != nil {
			t.Fatalf("publish: %v", err)
		}
		select {
		case e = <-events:
			waiting = false
		case <-deadline:
			t.Fatal("timed out waiting for forwarded event")
		case <-time.After(10 * time.Millisecond):
		}
	}
	if e.CartID != "c1" || e.TotalQuantity != 4 {
		t.Fatalf("unexpected event %+v", e)
	}

	cancel()
	<-done
}

func TestUnsubscribedObserverStopsReceiving(t *testing.T) {
	svc, _ := newTestService(cartrepo.NewMemory())

	events, cancel := svc.Notifier().Subscribe()
	cancel()

	if _, ok := <-events; ok {
		t.Fatal("expected closed channel after cancel")
	}
}
