// Package fixture holds the embedded storefront catalog. The catalog is
// read-only at runtime; the API serves it directly unless a database
// source is configured, and cmd/seed loads it into Postgres.
package fixture

import (
	"embed"
	"encoding/json"
	"fmt"

	"zafago-storefront/internal/domain"
	"zafago-storefront/internal/promo"
)

//go:embed data/catalog.json
var dataFS embed.FS

type Catalog struct {
	Products   []domain.Product   `json:"products"`
	Promo      promo.Sale         `json:"promo"`
	Publishers []domain.Publisher `json:"publishers"`
}

// Load parses and validates the embedded catalog.
func Load() (*Catalog, error) {
	raw, err := dataFS.ReadFile("data/catalog.json")
	if err != nil {
		return nil, fmt.Errorf("read embedded catalog: %w", err)
	}

	var c Catalog
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	seen := make(map[string]struct{}, len(c.Products))
	for _, p := range c.Products {
		if p.ID == "" {
			return fmt.Errorf("product %q: missing id", p.Name)
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("product id %q duplicated", p.ID)
		}
		seen[p.ID] = struct{}{}
		if !p.Category.Valid() {
			return fmt.Errorf("product %s: unknown category %q", p.ID, p.Category)
		}
		if p.PriceCents < 0 {
			return fmt.Errorf("product %s: negative price", p.ID)
		}
		if p.DiscountPct < 0 || p.DiscountPct > 100 {
			return fmt.Errorf("product %s: discount %d out of range", p.ID, p.DiscountPct)
		}
		if p.Rating != nil && (*p.Rating < 0 || *p.Rating > 5) {
			return fmt.Errorf("product %s: rating %.2f out of range", p.ID, *p.Rating)
		}
	}

	if len(c.Promo.Slides) == 0 {
		return fmt.Errorf("promo %q: no carousel slides", c.Promo.Label)
	}
	for _, s := range c.Promo.Slides {
		if s.ProductID == "" {
			continue
		}
		if _, ok := seen[s.ProductID]; !ok {
			return fmt.Errorf("promo slide %s: unknown product id %q", s.ID, s.ProductID)
		}
	}

	for _, pub := range c.Publishers {
		if pub.ID == "" {
			return fmt.Errorf("publisher %q: missing id", pub.Name)
		}
		for _, pid := range pub.ProductIDs {
			if _, ok := seen[pid]; !ok {
				return fmt.Errorf("publisher %s: unknown product id %q", pub.ID, pid)
			}
		}
	}
	return nil
}
