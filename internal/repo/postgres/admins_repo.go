package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mmttc/workshop-registration/internal/domain"
)

type AdminsRepo interface {
	FindByEmail(ctx context.Context, email string) (*domain.AdminUser, error)
}

type AdminsRepoImpl struct{ pool *pgxpool.Pool }

func NewAdminsRepo(pool *pgxpool.Pool) *AdminsRepoImpl { return &AdminsRepoImpl{pool: pool} }

func (r *AdminsRepoImpl) FindByEmail(ctx context.Context, email string) (*domain.AdminUser, error) {
	const q = `SELECT id, email, name, password_hash, created_at FROM admin_users WHERE email = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var u domain.AdminUser
	err := r.pool.QueryRow(ctx, q, email).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

var _ AdminsRepo = (*AdminsRepoImpl)(nil)
