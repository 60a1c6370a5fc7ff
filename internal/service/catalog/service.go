package catalog

import (
	"context"
	"time"

	"zafago-storefront/internal/catalog"
	"zafago-storefront/internal/domain"
)

type productRepo interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

type publisherRepo interface {
	List(ctx context.Context) ([]domain.Publisher, error)
	GetByID(ctx context.Context, id string) (*domain.Publisher, error)
}

// Service derives the storefront's page views from the materialized
// catalog. All derivations go through the pure helpers in
// internal/catalog; the service only adds the data source and the clock.
type Service struct {
	products   productRepo
	publishers publisherRepo
	now        func() time.Time
}

func New(products productRepo, publishers publisherRepo) *Service {
	return &Service{products: products, publishers: publishers, now: time.Now}
}

// ListFilter narrows the full product listing.
type ListFilter struct {
	Category domain.Category
	Platform string
	Genre    string
	Sort     string // "rating", "sales", "featured" or empty
	Limit    int
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]domain.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	if f.Category != "" {
		products = catalog.ByCategory(products, f.Category)
	}
	if f.Platform != "" {
		products = catalog.ByPlatform(products, f.Platform)
	}
	if f.Genre != "" {
		products = catalog.ByGenre(products, f.Genre)
	}

	var key catalog.KeyFunc
	switch f.Sort {
	case "rating":
		key = catalog.RatingKey
	case "sales":
		key = catalog.SalesKey
	case "featured":
		key = catalog.CompositeKey
	}
	limit := f.Limit
	if limit <= 0 {
		limit = len(products)
	}
	if key != nil {
		return catalog.TopN(products, limit, key), nil
	}
	if limit < len(products) {
		products = products[:limit]
	}
	return products, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *Service) NewReleases(ctx context.Context) ([]domain.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.NewReleases(products, s.now()), nil
}

func (s *Service) ComingSoon(ctx context.Context) ([]domain.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.ComingSoon(products, s.now()), nil
}

// Upcoming groups releases landing within the next n months.
func (s *Service) Upcoming(ctx context.Context, months int) ([]domain.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	return catalog.ReleasedBetween(catalog.ComingSoon(products, now), now, now.AddDate(0, months, 0)), nil
}

func (s *Service) TopRated(ctx context.Context, n int) ([]domain.Product, error) {
	return s.ranked(ctx, n, catalog.RatingKey)
}

func (s *Service) BestSellers(ctx context.Context, n int) ([]domain.Product, error) {
	return s.ranked(ctx, n, catalog.SalesKey)
}

func (s *Service) Featured(ctx context.Context, n int) ([]domain.Product, error) {
	return s.ranked(ctx, n, catalog.CompositeKey)
}

func (s *Service) Deals(ctx context.Context) ([]domain.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Discounted(products), nil
}

func (s *Service) Publishers(ctx context.Context) ([]domain.Publisher, error) {
	return s.publishers.List(ctx)
}

func (s *Service) Publisher(ctx context.Context, id string) (*domain.Publisher, error) {
	return s.publishers.GetByID(ctx, id)
}

func (s *Service) ranked(ctx context.Context, n int, key catalog.KeyFunc) ([]domain.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.TopN(products, n, key), nil
}
