package importer

import (
	"context"
	"strings"
	"testing"

	"zafago-storefront/internal/domain"
)

type captureRepo struct {
	products []domain.Product
}

func (r *captureRepo) Upsert(_ context.Context, p domain.Product) error {
	r.products = append(r.products, p)
	return nil
}

const sampleCSV = `id,key,name,description,category,price_cents,currency,discount_pct,release_date,platforms,genres,rating,sales,publisher_id,image_url
prod-1,neon-drift,Neon Drift,Arcade racer,games,2999,USD,20,2026-05-01T00:00:00Z,Steam;Epic,Racing;Arcade,4.3,12000,pub-1,https://img/neon.jpg
prod-2,steam-card,Steam Card $10,,gift-card,1000,,,,Steam,,,,,
`

func TestRunImportsRows(t *testing.T) {
	repo := &captureRepo{}
	imp := NewCSVImporter(strings.NewReader(sampleCSV), repo)

	count, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if count != 2 || len(repo.products) != 2 {
		t.Fatalf("expected 2 imports, got %d", count)
	}

	game := repo.products[0]
	if game.ID != "prod-1" || game.DiscountPct != 20 || len(game.Platforms) != 2 {
		t.Fatalf("unexpected product %+v", game)
	}
	if game.ReleaseDate == nil || game.Rating == nil || *game.Rating != 4.3 {
		t.Fatalf("optional fields not parsed: %+v", game)
	}

	card := repo.products[1]
	if card.Category != domain.CategoryGiftCard || card.Currency != "USD" {
		t.Fatalf("unexpected gift card %+v", card)
	}
	if card.ReleaseDate != nil || card.Rating != nil || card.Sales != nil {
		t.Fatalf("empty cells must import as absent values: %+v", card)
	}
}

func TestRunRejectsBadCategory(t *testing.T) {
	csv := "id,name,category,price_cents\nprod-1,Thing,vehicles,100\n"
	imp := NewCSVImporter(strings.NewReader(csv), &captureRepo{})

	if _, err := imp.Run(context.Background()); err == nil {
		t.Fatal("expected unknown category to fail")
	}
}

func TestRunRejectsMissingPrice(t *testing.T) {
	csv := "id,name,category,price_cents\nprod-1,Thing,games,\n"
	imp := NewCSVImporter(strings.NewReader(csv), &captureRepo{})

	if _, err := imp.Run(context.Background()); err == nil {
		t.Fatal("expected missing price to fail")
	}
}
