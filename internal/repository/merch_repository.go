package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/thehatchggs/site-api/internal/domain"
)

// MerchRepository encapsulates merchandise catalogue persistence.
type MerchRepository interface {
	Create(ctx context.Context, item *domain.MerchItem) error
	Update(ctx context.Context, item *domain.MerchItem) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.MerchItem, error)
	List(ctx context.Context) ([]domain.MerchItem, error)
	ListVisible(ctx context.Context) ([]domain.MerchItem, error)
}

type merchRepository struct {
	pool *pgxpool.Pool
}

// NewMerchRepository instantiates repository.
func NewMerchRepository(pool *pgxpool.Pool) MerchRepository {
	return &merchRepository{pool: pool}
}

func (r *merchRepository) Create(ctx context.Context, item *domain.MerchItem) error {
	const query = `
        INSERT INTO merch_items (name, description, image_url, is_featured, is_hidden)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		item.Name,
		item.Description,
		item.ImageURL,
		item.IsFeatured,
		item.IsHidden,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
}

func (r *merchRepository) Update(ctx context.Context, item *domain.MerchItem) error {
	const query = `
        UPDATE merch_items
        SET name=$1, description=$2, image_url=$3, is_featured=$4, is_hidden=$5, updated_at=NOW()
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		item.Name,
		item.Description,
		item.ImageURL,
		item.IsFeatured,
		item.IsHidden,
		item.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *merchRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM merch_items WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *merchRepository) GetByID(ctx context.Context, id string) (*domain.MerchItem, error) {
	const query = `
        SELECT id, name, description, image_url, is_featured, is_hidden, created_at, updated_at
        FROM merch_items WHERE id=$1`
	var item domain.MerchItem
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&item.ID,
		&item.Name,
		&item.Description,
		&item.ImageURL,
		&item.IsFeatured,
		&item.IsHidden,
		&item.CreatedAt,
		&item.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *merchRepository) List(ctx context.Context) ([]domain.MerchItem, error) {
	return r.list(ctx, `SELECT id, name, description, image_url, is_featured, is_hidden, created_at, updated_at
        FROM merch_items ORDER BY created_at DESC`)
}

func (r *merchRepository) ListVisible(ctx context.Context) ([]domain.MerchItem, error) {
	return r.list(ctx, `SELECT id, name, description, image_url, is_featured, is_hidden, created_at, updated_at
        FROM merch_items WHERE NOT is_hidden ORDER BY is_featured DESC, created_at DESC`)
}

func (r *merchRepository) list(ctx context.Context, query string) ([]domain.MerchItem, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.MerchItem
	for rows.Next() {
		var item domain.MerchItem
		if err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Description,
			&item.ImageURL,
			&item.IsFeatured,
			&item.IsHidden,
			&item.CreatedAt,
			&item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}
