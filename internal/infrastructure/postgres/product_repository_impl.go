package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/farmstack/farm-api/internal/domain/entity"
	"github.com/farmstack/farm-api/internal/domain/repository"
)

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

const productColumns = `id, farmer_id, name, category, description, unit,
	price_cents, stock, image_url, created_at, updated_at`

func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO products (farmer_id, name, category, description, unit, price_cents, stock, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, p.FarmerID, p.Name, p.Category, p.Description, p.Unit, p.PriceCents, p.Stock, p.ImageURL)
	return mapErr(row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt))
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p := &entity.Product{}
	row := r.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	if err := scanProduct(row, p); err != nil {
		return nil, mapErr(err)
	}
	return p, nil
}

func (r *ProductRepository) Update(ctx context.Context, p *entity.Product) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE products
		SET name = $1, category = $2, description = $3, unit = $4,
		    price_cents = $5, stock = $6, image_url = $7, updated_at = now()
		WHERE id = $8
	`, p.Name, p.Category, p.Description, p.Unit, p.PriceCents, p.Stock, p.ImageURL, p.ID)
	if err != nil {
		return mapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) List(ctx context.Context, f repository.ProductFilter) ([]entity.Product, int64, error) {
	const where = `($1 = '' OR category = $1) AND ($2 = '' OR farmer_id::text = $2)`

	var total int64
	if err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM products WHERE `+where, f.Category, f.FarmerID,
	).Scan(&total); err != nil {
		return nil, 0, mapErr(err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE `+where+`
		ORDER BY created_at DESC
		OFFSET $3 LIMIT $4
	`, f.Category, f.FarmerID, f.Offset, f.Limit)
	if err != nil {
		return nil, 0, mapErr(err)
	}
	defer rows.Close()

	var out []entity.Product
	for rows.Next() {
		var p entity.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, 0, mapErr(err)
		}
		out = append(out, p)
	}
	return out, total, mapErr(rows.Err())
}

type scanner interface{ Scan(dest ...any) error }

func scanProduct(s scanner, p *entity.Product) error {
	return s.Scan(&p.ID, &p.FarmerID, &p.Name, &p.Category, &p.Description, &p.Unit,
		&p.PriceCents, &p.Stock, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
}

var _ repository.ProductRepository = (*ProductRepository)(nil)
