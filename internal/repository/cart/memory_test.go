package cart

import (
	"context"
	"errors"
	"testing"

	"zafago-storefront/internal/domain"
)

func TestMemoryLoadAbsentIsEmpty(t *testing.T) {
	repo := NewMemory()
	lines, err := repo.Load(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("expected empty cart, got %+v", lines)
	}
}

func TestMemorySaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory()
	in := []domain.CartLine{{Product: domain.Product{ID: "p1", Name: "Emberfall"}, Quantity: 2}}

	if err := repo.Save(ctx, "c1", in); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := repo.Load(ctx, "c1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 || got[0].Product.ID != "p1" || got[0].Quantity != 2 {
		t.Fatalf("unexpected lines %+v", got)
	}
}

func TestMemoryCorruptPayload(t *testing.T) {
	repo := NewMemory()
	repo.Corrupt("c1")

	_, err := repo.Load(context.Background(), "c1")
	if !errors.Is(err, domain.ErrCartCorrupt) {
		t.Fatalf("expected ErrCartCorrupt, got %v", err)
	}
}

func TestMemoryPublishReachesSubscribers(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory()

	updates, stop, err := repo.Updates(ctx)
	if err != nil {
		t.Fatalf("updates: %v", err)
	}
	defer stop()

	if err := repo.Publish(ctx, "c9"); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if got := <-updates; got != "c9" {
		t.Fatalf("expected c9, got %q", got)
	}
}
