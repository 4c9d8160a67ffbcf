package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/thehatchggs/site-api/internal/domain"
)

// AboutRepository persists the single about-page document.
type AboutRepository interface {
	Get(ctx context.Context) (*domain.AboutContent, error)
	Upsert(ctx context.Context, about *domain.AboutContent) error
}

type aboutRepository struct {
	pool *pgxpool.Pool
}

// NewAboutRepository instantiates repository.
func NewAboutRepository(pool *pgxpool.Pool) AboutRepository {
	return &aboutRepository{pool: pool}
}

func (r *aboutRepository) Get(ctx context.Context) (*domain.AboutContent, error) {
	const query = `
        SELECT id, title, body, hero_image_url, updated_at
        FROM about_content ORDER BY updated_at DESC LIMIT 1`
	var about domain.AboutContent
	if err := r.pool.QueryRow(ctx, query).Scan(
		&about.ID,
		&about.Title,
		&about.Body,
		&about.HeroImageURL,
		&about.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &about, nil
}

// Upsert replaces the existing about document or creates the first one.
func (r *aboutRepository) Upsert(ctx context.Context, about *domain.AboutContent) error {
	existing, err := r.Get(ctx)
	if err == nil {
		const query = `
            UPDATE about_content SET title=$1, body=$2, hero_image_url=$3, updated_at=NOW()
            WHERE id=$4
            RETURNING id, updated_at`
		return r.pool.QueryRow(ctx, query,
			about.Title, about.Body, about.HeroImageURL, existing.ID,
		).Scan(&about.ID, &about.UpdatedAt)
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	const query = `
        INSERT INTO about_content (title, body, hero_image_url)
        VALUES ($1,$2,$3)
        RETURNING id, updated_at`
	return r.pool.QueryRow(ctx, query,
		about.Title, about.Body, about.HeroImageURL,
	).Scan(&about.ID, &about.UpdatedAt)
}
