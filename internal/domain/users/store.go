package users

import (
	"context"
	"errors"
	"fmt"

	"bazaar/internal/apperr"
	"bazaar/internal/infra/dbx"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type Repository struct {
	db dbx.Querier
}

func NewRepository(q dbx.Querier) *Repository {
	return &Repository{db: q}
}

const userColumns = `id, email, name, password, role, is_active, is_verified, deleted_at, version, created_at, updated_at`

func scanUser(row pgx.Row) (*User, error) {
	u := &User{}
	var hash []byte
	if err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&hash,
		&u.Role,
		&u.Active,
		&u.Verified,
		&u.DeletedAt,
		&u.Version,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	u.Password.SetHash(hash)
	return u, nil
}

func (r *Repository) Create(ctx context.Context, u *User) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	err := r.db.QueryRow(ctx, `
INSERT INTO users (email, name, password, role, is_active, is_verified)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, version, created_at, updated_at`,
		u.Email, u.Name, u.Password.Hash(), u.Role, u.Active, u.Verified,
	).Scan(&u.ID, &u.Version, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperr.Wrap(apperr.KindConflict, "users.Create", ErrDuplicateEmail)
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, id int64) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.Newf(apperr.KindNotFound, "users.Get", "user %d", id)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	u, err := scanUser(r.db.QueryRow(ctx, `
SELECT `+userColumns+`
FROM users
WHERE lower(email) = lower($1) AND deleted_at IS NULL`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.New(apperr.KindNotFound, "users.GetByEmail", "user")
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

func (r *Repository) SetState(ctx context.Context, u *User, expectedVersion int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	err := r.db.QueryRow(ctx, `
UPDATE users
SET is_active  = $3,
    deleted_at = $4,
    version    = version + 1,
    updated_at = now()
WHERE id = $1 AND version = $2
RETURNING version, updated_at`,
		u.ID, expectedVersion, u.Active, u.DeletedAt,
	).Scan(&u.Version, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.Newf(apperr.KindConflict, "users.SetState", "user %d changed since version %d", u.ID, expectedVersion)
		}
		return fmt.Errorf("update user state: %w", err)
	}
	return nil
}

func (r *Repository) List(ctx context.Context, f Filter) ([]User, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	rows, err := r.db.Query(ctx, `
SELECT `+userColumns+`
FROM users
WHERE ($1 = '' OR role = $1)
  AND ($2::boolean IS NULL OR is_active = $2)
  AND ($3 OR deleted_at IS NULL)
ORDER BY id
LIMIT $4 OFFSET $5`,
		string(f.Role), f.Active, f.IncludeDelete, limit, f.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}
