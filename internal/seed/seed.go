package seed

import (
	"context"
	"fmt"
	"log"

	"zafago-storefront/internal/fixture"
	productrepo "zafago-storefront/internal/repository/product"
	publisherrepo "zafago-storefront/internal/repository/publisher"
)

// Apply loads the embedded catalog fixture into Postgres. Idempotent:
// rerunning upserts the same rows.
func Apply(ctx context.Context, products productrepo.Writer, publishers publisherrepo.Writer, logger *log.Logger) error {
	cat, err := fixture.Load()
	if err != nil {
		return fmt.Errorf("load fixture: %w", err)
	}

	// Publishers first so product foreign keys resolve.
	for _, pub := range cat.Publishers {
		if err := publishers.Upsert(ctx, pub); err != nil {
			return fmt.Errorf("upsert publisher %s: %w", pub.ID, err)
		}
	}
	for _, p := range cat.Products {
		if err := products.Upsert(ctx, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.ID, err)
		}
	}

	logger.Printf("seeded %d products, %d publishers", len(cat.Products), len(cat.Publishers))
	return nil
}
