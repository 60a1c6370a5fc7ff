package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"zafago-storefront/internal/domain"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) error
}

// CSVImporter reads catalog CSV exports and inserts/updates products.
// Expected header: id,key,name,description,category,price_cents,currency,
// discount_pct,release_date,platforms,genres,rating,sales,publisher_id,image_url.
// Platform and genre cells hold semicolon-separated tags; empty optional
// cells import as absent values, never as zeroes.
type CSVImporter struct {
	reader      *csv.Reader
	productRepo ProductWriter
}

func NewCSVImporter(r io.Reader, repo ProductWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:      csvr,
		productRepo: repo,
	}
}

// Run parses CSV rows and upserts products. It returns the number of
// imported rows and stops at the first malformed one.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	imported := 0
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}

		p, err := parseRow(record, index)
		if err != nil {
			return imported, fmt.Errorf("row %d: %w", imported+2, err)
		}
		if err := i.productRepo.Upsert(ctx, *p); err != nil {
			return imported, fmt.Errorf("upsert %s: %w", p.ID, err)
		}
		imported++
	}

	return imported, nil
}

func headerIndex(headers []string) map[string]int {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return index
}

func parseRow(record []string, index map[string]int) (*domain.Product, error) {
	field := func(name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	id := field("id")
	if id == "" {
		return nil, errors.New("missing id")
	}
	name := field("name")
	if name == "" {
		return nil, errors.New("missing name")
	}

	category := domain.Category(field("category"))
	if !category.Valid() {
		return nil, fmt.Errorf("unknown category %q", field("category"))
	}

	cents, err := strconv.ParseInt(field("price_cents"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("price_cents: %w", err)
	}

	p := &domain.Product{
		ID:          id,
		Key:         field("key"),
		Name:        name,
		Description: field("description"),
		Category:    category,
		PriceCents:  cents,
		Currency:    field("currency"),
		Platforms:   splitTags(field("platforms")),
		Genres:      splitTags(field("genres")),
		PublisherID: field("publisher_id"),
		ImageURL:    field("image_url"),
	}
	if p.Currency == "" {
		p.Currency = "USD"
	}

	if raw := field("discount_pct"); raw != "" {
		pct, err := strconv.Atoi(raw)
		if err != nil || pct < 0 || pct > 100 {
			return nil, fmt.Errorf("discount_pct %q out of range", raw)
		}
		p.DiscountPct = pct
	}
	if raw := field("release_date"); raw != "" {
		d, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, fmt.Errorf("release_date: %w", err)
		}
		p.ReleaseDate = &d
	}
	if raw := field("rating"); raw != "" {
		r, err := strconv.ParseFloat(raw, 64)
		if err != nil || r < 0 || r > 5 {
			return nil, fmt.Errorf("rating %q out of range", raw)
		}
		p.Rating = &r
	}
	if raw := field("sales"); raw != "" {
		s, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("sales: %w", err)
		}
		p.Sales = &s
	}

	return p, nil
}

func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
