// Package catalog provides pure filter and ranking helpers over
// materialized product lists. Every helper returns a fresh slice and
// leaves its input untouched; storefront pages compose these to derive
// their view-specific subsets.
package catalog

import (
	"sort"
	"time"

	"zafago-storefront/internal/domain"
)

// NewReleaseWindow is the trailing window a product counts as a "new release" in.
const NewReleaseWindow = 30 * 24 * time.Hour

// KeyFunc extracts a ranking key from a product. Higher ranks first.
type KeyFunc func(domain.Product) float64

// RatingKey ranks by rating, missing ratings rank as 0.
func RatingKey(p domain.Product) float64 { return p.RatingValue() }

// SalesKey ranks by sales count, missing counts rank as 0.
func SalesKey(p domain.Product) float64 { return float64(p.SalesValue()) }

// CompositeKey ranks by rating weighted by sales, so a highly rated
// product with no sales does not outrank a proven seller.
func CompositeKey(p domain.Product) float64 {
	return p.RatingValue() * float64(p.SalesValue())
}

// ReleasedBetween returns products whose release date falls in
// [lower, upper). Products without a release date are excluded.
func ReleasedBetween(products []domain.Product, lower, upper time.Time) []domain.Product {
	var out []domain.Product
	for _, p := range products {
		if p.ReleaseDate == nil {
			continue
		}
		d := *p.ReleaseDate
		if d.Before(lower) || !d.Before(upper) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// NewReleases returns products released in the trailing 30-day window,
// both bounds inclusive, newest first.
func NewReleases(products []domain.Product, now time.Time) []domain.Product {
	lower := now.Add(-NewReleaseWindow)
	var out []domain.Product
	for _, p := range products {
		if p.ReleaseDate == nil {
			continue
		}
		d := *p.ReleaseDate
		if d.Before(lower) || d.After(now) {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ReleaseDate.After(*out[j].ReleaseDate)
	})
	return out
}

// ComingSoon returns products with a release date strictly after now,
// sorted ascending by release date.
func ComingSoon(products []domain.Product, now time.Time) []domain.Product {
	var out []domain.Product
	for _, p := range products {
		if p.ReleaseDate == nil || !p.ReleaseDate.After(now) {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ReleaseDate.Before(*out[j].ReleaseDate)
	})
	return out
}

// UpcomingWithin returns products releasing in (now, now+window), sorted
// ascending. Pages use 1-month and 3-month windows for release groupings.
func UpcomingWithin(products []domain.Product, now time.Time, window time.Duration) []domain.Product {
	upper := now.Add(window)
	out := ComingSoon(products, now)
	n := 0
	for _, p := range out {
		if p.ReleaseDate.Before(upper) {
			out[n] = p
			n++
		}
	}
	return out[:n]
}

// TopN sorts descending by key and takes the first n. The sort is
// stable: ties keep input order, which pages rely on for reproducible
// rankings. A nil key ranks everything equal.
func TopN(products []domain.Product, n int, key KeyFunc) []domain.Product {
	if n <= 0 || len(products) == 0 {
		return nil
	}
	out := make([]domain.Product, len(products))
	copy(out, products)
	if key != nil {
		sort.SliceStable(out, func(i, j int) bool {
			return key(out[i]) > key(out[j])
		})
	}
	if n > len(out) {
		n = len(out)
	}
	return out[:n]
}

// ByCategory returns products in the given category.
func ByCategory(products []domain.Product, category domain.Category) []domain.Product {
	var out []domain.Product
	for _, p := range products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// ByPlatform returns products carrying the given platform tag.
func ByPlatform(products []domain.Product, platform string) []domain.Product {
	var out []domain.Product
	for _, p := range products {
		if p.HasPlatform(platform) {
			out = append(out, p)
		}
	}
	return out
}

// ByGenre returns products carrying the given genre tag.
func ByGenre(products []domain.Product, genre string) []domain.Product {
	var out []domain.Product
	for _, p := range products {
		if p.HasGenre(genre) {
			out = append(out, p)
		}
	}
	return out
}

// Discounted returns products with an active discount, steepest first.
func Discounted(products []domain.Product) []domain.Product {
	var out []domain.Product
	for _, p := range products {
		if p.DiscountPct > 0 {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DiscountPct > out[j].DiscountPct
	})
	return out
}
