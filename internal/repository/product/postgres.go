package product

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"zafago-storefront/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) *postgresRepo {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const selectColumns = `
id, key, name, COALESCE(description, ''), category, price_cents, currency,
discount_pct, release_date, platforms, genres, rating, sales,
COALESCE(publisher_id, ''), COALESCE(image_url, '')`

func (r *postgresRepo) List(ctx context.Context) ([]domain.Product, error) {
	q := `SELECT ` + selectColumns + ` FROM products ORDER BY name`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: list rows error=%v", err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	q := `SELECT ` + selectColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, p domain.Product) error {
	const q = `
INSERT INTO products (id, key, name, description, category, price_cents, currency,
                      discount_pct, release_date, platforms, genres, rating, sales,
                      publisher_id, image_url)
VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9, $10, $11, $12, $13, NULLIF($14, ''), NULLIF($15, ''))
ON CONFLICT (id) DO UPDATE SET
    key = EXCLUDED.key,
    name = EXCLUDED.name,
    description = EXCLUDED.description,
    category = EXCLUDED.category,
    price_cents = EXCLUDED.price_cents,
    currency = EXCLUDED.currency,
    discount_pct = EXCLUDED.discount_pct,
    release_date = EXCLUDED.release_date,
    platforms = EXCLUDED.platforms,
    genres = EXCLUDED.genres,
    rating = EXCLUDED.rating,
    sales = EXCLUDED.sales,
    publisher_id = EXCLUDED.publisher_id,
    image_url = EXCLUDED.image_url
`
	_, err := r.pool.Exec(ctx, q,
		p.ID, p.Key, p.Name, p.Description, string(p.Category), p.PriceCents, p.Currency,
		p.DiscountPct, p.ReleaseDate, p.Platforms, p.Genres, p.Rating, p.Sales,
		p.PublisherID, p.ImageURL,
	)
	if err != nil {
		r.logger.Printf("product repo: upsert id=%s error=%v", p.ID, err)
	}
	return err
}

func scanProduct(row pgx.Row) (domain.Product, error) {
	var (
		p        domain.Product
		category string
	)
	err := row.Scan(&p.ID, &p.Key, &p.Name, &p.Description, &category, &p.PriceCents, &p.Currency,
		&p.DiscountPct, &p.ReleaseDate, &p.Platforms, &p.Genres, &p.Rating, &p.Sales,
		&p.PublisherID, &p.ImageURL)
	if err != nil {
		return domain.Product{}, err
	}
	p.Category = domain.Category(category)
	return p, nil
}
