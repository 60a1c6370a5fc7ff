package domain

import (
	"math"
	"time"
)

// Category classifies a catalog item.
type Category string

const (
	CategoryGames        Category = "games"
	CategorySoftware     Category = "software"
	CategoryGiftCard     Category = "gift-card"
	CategorySubscription Category = "subscription"
)

// Valid reports whether the category is one of the known values.
func (c Category) Valid() bool {
	switch c {
	case CategoryGames, CategorySoftware, CategoryGiftCard, CategorySubscription:
		return true
	}
	return false
}

type Product struct {
	ID          string     `json:"id"`
	Key         string     `json:"key"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Category    Category   `json:"category"`
	PriceCents  int64      `json:"priceCents"`
	Currency    string     `json:"currency"`
	DiscountPct int        `json:"discountPct,omitempty"`
	ReleaseDate *time.Time `json:"releaseDate,omitempty"`
	Platforms   []string   `json:"platforms,omitempty"`
	Genres      []string   `json:"genres,omitempty"`
	Rating      *float64   `json:"rating,omitempty"`
	Sales       *int64     `json:"sales,omitempty"`
	PublisherID string     `json:"publisherId,omitempty"`
	ImageURL    string     `json:"imageUrl,omitempty"`
}

// EffectivePriceCents applies the discount percentage to the list price.
// A discount of 0 leaves the list price untouched.
func (p Product) EffectivePriceCents() int64 {
	if p.DiscountPct <= 0 {
		return p.PriceCents
	}
	pct := p.DiscountPct
	if pct > 100 {
		pct = 100
	}
	return int64(math.Round(float64(p.PriceCents) * (1 - float64(pct)/100)))
}

// RatingValue returns the rating, treating a missing rating as 0.
func (p Product) RatingValue() float64 {
	if p.Rating == nil {
		return 0
	}
	return *p.Rating
}

// SalesValue returns the sales count, treating a missing count as 0.
func (p Product) SalesValue() int64 {
	if p.Sales == nil {
		return 0
	}
	return *p.Sales
}

// HasPlatform reports whether the product is available on the given store platform.
func (p Product) HasPlatform(platform string) bool {
	for _, v := range p.Platforms {
		if v == platform {
			return true
		}
	}
	return false
}

// HasGenre reports whether the product carries the given genre tag.
func (p Product) HasGenre(genre string) bool {
	for _, v := range p.Genres {
		if v == genre {
			return true
		}
	}
	return false
}
