package publisher

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

func (r *postgresRepo) List(ctx context.Context) ([]domain.Publisher, error) {
	const q = `
SELECT id, name, COALESCE(logo_url, ''), COALESCE(founded, 0), COALESCE(description, ''), product_ids
FROM publishers
ORDER BY name
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("publisher repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Publisher
	for rows.Next() {
		var p domain.Publisher
		if err := rows.Scan(&p.ID, &p.Name, &p.LogoURL, &p.Founded, &p.Description, &p.ProductIDs); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("publisher repo: list rows error=%v", err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Publisher, error) {
	const q = `
SELECT id, name, COALESCE(logo_url, ''), COALESCE(founded, 0), COALESCE(description, ''), product_ids
FROM publishers
WHERE id = $1
`
	var p domain.Publisher
	err := r.pool.QueryRow(ctx, q, id).Scan(&p.ID, &p.Name, &p.LogoURL, &p.Founded, &p.Description, &p.ProductIDs)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("publisher repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, p domain.Publisher) error {
	const q = `
INSERT INTO publishers (id, name, logo_url, founded, description, product_ids)
VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, 0), NULLIF($5, ''), $6)
ON CONFLICT (id) DO UPDATE SET
    name = EXCLUDED.name,
    logo_url = EXCLUDED.logo_url,
    founded = EXCLUDED.founded,
    description = EXCLUDED.description,
    product_ids = EXCLUDED.product_ids
`
	_, err := r.pool.Exec(ctx, q, p.ID, p.Name, p.LogoURL, p.Founded, p.Description, p.ProductIDs)
	if err != nil {
		r.logger.Printf("publisher repo: upsert id=%s error=%v", p.ID, err)
	}
	return err
}
