package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/thehatchggs/site-api/internal/domain"
)

// KnowledgeRepository encapsulates knowledge-base article persistence.
type KnowledgeRepository interface {
	Create(ctx context.Context, article *domain.KnowledgeArticle) error
	Update(ctx context.Context, article *domain.KnowledgeArticle) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.KnowledgeArticle, error)
	List(ctx context.Context) ([]domain.KnowledgeArticle, error)
	ListPublished(ctx context.Context) ([]domain.KnowledgeArticle, error)
}

type knowledgeRepository struct {
	pool *pgxpool.Pool
}

// NewKnowledgeRepository instantiates repository.
func NewKnowledgeRepository(pool *pgxpool.Pool) KnowledgeRepository {
	return &knowledgeRepository{pool: pool}
}

func (r *knowledgeRepository) Create(ctx context.Context, article *domain.KnowledgeArticle) error {
	const query = `
        INSERT INTO knowledge_articles (title, category, content, keywords, is_published)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, updated_at`
	return r.pool.QueryRow(ctx, query,
		article.Title,
		article.Category,
		article.Content,
		article.Keywords,
		article.IsPublished,
	).Scan(&article.ID, &article.UpdatedAt)
}

func (r *knowledgeRepository) Update(ctx context.Context, article *domain.KnowledgeArticle) error {
	const query = `
        UPDATE knowledge_articles
        SET title=$1, category=$2, content=$3, keywords=$4, is_published=$5, updated_at=NOW()
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		article.Title,
		article.Category,
		article.Content,
		article.Keywords,
		article.IsPublished,
		article.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *knowledgeRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM knowledge_articles WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *knowledgeRepository) GetByID(ctx context.Context, id string) (*domain.KnowledgeArticle, error) {
	const query = `
        SELECT id, title, category, content, keywords, is_published, updated_at
        FROM knowledge_articles WHERE id=$1`
	var article domain.KnowledgeArticle
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&article.ID,
		&article.Title,
		&article.Category,
		&article.Content,
		&article.Keywords,
		&article.IsPublished,
		&article.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *knowledgeRepository) List(ctx context.Context) ([]domain.KnowledgeArticle, error) {
	return r.list(ctx, `SELECT id, title, category, content, keywords, is_published, updated_at
        FROM knowledge_articles ORDER BY updated_at DESC`)
}

func (r *knowledgeRepository) ListPublished(ctx context.Context) ([]domain.KnowledgeArticle, error) {
	return r.list(ctx, `SELECT id, title, category, content, keywords, is_published, updated_at
        FROM knowledge_articles WHERE is_published ORDER BY updated_at DESC`)
}

func (r *knowledgeRepository) list(ctx context.Context, query string) ([]domain.KnowledgeArticle, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.KnowledgeArticle
	for rows.Next() {
		var article domain.KnowledgeArticle
		if err := rows.Scan(
			&article.ID,
			&article.Title,
			&article.Category,
			&article.Content,
			&article.Keywords,
			&article.IsPublished,
			&article.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, article)
	}
	return result, rows.Err()
}
