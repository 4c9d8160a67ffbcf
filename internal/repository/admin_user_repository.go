package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/thehatchggs/site-api/internal/domain"
)

// AdminUserRepository encapsulates admin account persistence.
type AdminUserRepository interface {
	Create(ctx context.Context, user *domain.AdminUser) error
	GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error)
	GetByID(ctx context.Context, id string) (*domain.AdminUser, error)
	Count(ctx context.Context) (int64, error)
}

type adminUserRepository struct {
	pool *pgxpool.Pool
}

// NewAdminUserRepository instantiates repository.
func NewAdminUserRepository(pool *pgxpool.Pool) AdminUserRepository {
	return &adminUserRepository{pool: pool}
}

func (r *adminUserRepository) Create(ctx context.Context, user *domain.AdminUser) error {
	const query = `
        INSERT INTO admin_users (email, password_hash)
        VALUES ($1,$2)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt)
}

func (r *adminUserRepository) GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error) {
	return r.fetch(ctx, `SELECT id, email, password_hash, created_at FROM admin_users WHERE email=$1`, email)
}

func (r *adminUserRepository) GetByID(ctx context.Context, id string) (*domain.AdminUser, error) {
	return r.fetch(ctx, `SELECT id, email, password_hash, created_at FROM admin_users WHERE id=$1`, id)
}

func (r *adminUserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM admin_users`).Scan(&count)
	return count, err
}

func (r *adminUserRepository) fetch(ctx context.Context, query string, arg any) (*domain.AdminUser, error) {
	var user domain.AdminUser
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}
