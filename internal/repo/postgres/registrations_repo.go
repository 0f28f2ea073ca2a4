package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mmttc/workshop-registration/internal/domain"
)

type RegistrationsRepo interface {
	Create(ctx context.Context, in *domain.RegistrationReq, capacity int) (*domain.Registration, error)
	Count(ctx context.Context) (int, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, limit int) ([]domain.Registration, int, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type RegistrationsRepoImpl struct{ pool *pgxpool.Pool }

func NewRegistrationsRepo(pool *pgxpool.Pool) *RegistrationsRepoImpl {
	return &RegistrationsRepoImpl{pool: pool}
}

const registrationCols = `id, name, email, phone,
dob, whatsapp, affiliation, department,
designation, contact_method, created_at`

// Create inserts a registration only while the table holds fewer rows than
// capacity; the unique index on email backs the advisory duplicate check.
// A race lost on the seat count comes back as ErrCapacityFull, one lost on
// the email as ErrDuplicateEmail.
func (r *RegistrationsRepoImpl) Create(ctx context.Context, in *domain.RegistrationReq, capacity int) (*domain.Registration, error) {
	const q = `INSERT INTO registrations (
    id, name, email, phone,
    dob, whatsapp, affiliation, department,
    designation, contact_method
  )
  SELECT $1,$2,$3,$4,$5,$6,$7,$8,$9,$10
  WHERE (SELECT count(*) FROM registrations) < $11
  RETURNING ` + registrationCols

	id := uuid.NewString()
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var reg domain.Registration
	err := r.pool.QueryRow(ctx, q, id,
		in.Name, in.Email, in.Phone,
		in.DateOfBirth, in.WhatsApp, in.Affiliation, in.Department,
		in.Designation, in.ContactMethod, capacity,
	).Scan(
		&reg.ID, &reg.Name, &reg.Email, &reg.Phone,
		&reg.DateOfBirth, &reg.WhatsApp, &reg.Affiliation, &reg.Department,
		&reg.Designation, &reg.ContactMethod, &reg.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCapacityFull
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return nil, domain.ErrDuplicateEmail
	}
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *RegistrationsRepoImpl) Count(ctx context.Context) (int, error) {
	const q = `SELECT count(*) FROM registrations`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var n int
	if err := r.pool.QueryRow(ctx, q).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// ExistsByEmail is a case-sensitive exact match, mirroring the equality
// filter the legacy duplicate check ran against the document store.
func (r *RegistrationsRepoImpl) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM registrations WHERE email = $1)`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var exists bool
	if err := r.pool.QueryRow(ctx, q, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// List returns up to limit registrations, newest first, together with the
// total row count so callers can derive seats remaining from one call.
func (r *RegistrationsRepoImpl) List(ctx context.Context, limit int) ([]domain.Registration, int, error) {
	if limit <= 0 {
		limit = 500
	}

	total, err := r.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	const q = `SELECT ` + registrationCols + ` FROM registrations ORDER BY created_at DESC LIMIT $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	regs := make([]domain.Registration, 0, limit)
	for rows.Next() {
		var reg domain.Registration
		if err := rows.Scan(
			&reg.ID, &reg.Name, &reg.Email, &reg.Phone,
			&reg.DateOfBirth, &reg.WhatsApp, &reg.Affiliation, &reg.Department,
			&reg.Designation, &reg.ContactMethod, &reg.CreatedAt,
		); err != nil {
			return nil, 0, err
		}
		regs = append(regs, reg)
	}
	return regs, total, rows.Err()
}

func (r *RegistrationsRepoImpl) Delete(ctx context.Context, id string) (bool, error) {
	const q = `DELETE FROM registrations WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	ct, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

var _ RegistrationsRepo = (*RegistrationsRepoImpl)(nil)
