package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/myfolio/server/internal/models"
)

type UsersRepo struct {
	pool *pgxpool.Pool
}

func NewUsersRepo(pg *Postgres) *UsersRepo {
	return &UsersRepo{pool: pg.Pool}
}

// Create inserts the user in a single attempt and relies on the unique
// constraints to reject duplicates, so there is no window between a
// pre-check and the insert.
func (r *UsersRepo) Create(ctx context.Context, user models.User) (models.User, error) {
	const query = `INSERT INTO users (email, username, salt, hashed_password)
		VALUES ($1, $2, $3, $4) RETURNING id`

	err := r.pool.QueryRow(ctx, query, user.Email, user.Username, user.Salt, user.HashedPassword).
		Scan(&user.ID)
	if err != nil {
		if dupErr := translateUniqueViolation(err); dupErr != nil {
			return models.User{}, dupErr
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}

	return user, nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id int64) (models.User, error) {
	const query = `SELECT id, email, username, salt, hashed_password FROM users WHERE id = $1`
	return r.scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	const query = `SELECT id, email, username, salt, hashed_password FROM users WHERE email = $1`
	return r.scanUser(r.pool.QueryRow(ctx, query, email))
}

// Update persists the whole record; callers load the user first and apply
// the changed fields onto it.
func (r *UsersRepo) Update(ctx context.Context, user models.User) (models.User, error) {
	const query = `UPDATE users SET email = $1, username = $2, salt = $3, hashed_password = $4
		WHERE id = $5`

	tag, err := r.pool.Exec(ctx, query, user.Email, user.Username, user.Salt, user.HashedPassword, user.ID)
	if err != nil {
		if dupErr := translateUniqueViolation(err); dupErr != nil {
			return models.User{}, dupErr
		}
		return models.User{}, fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.User{}, ErrNotFound
	}

	return user, nil
}

func (r *UsersRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UsersRepo) scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Email, &user.Username, &user.Salt, &user.HashedPassword)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("scan user: %w", err)
	}
	return user, nil
}

// translateUniqueViolation maps a constraint violation onto the matching
// duplicate-field sentinel, or returns nil for unrelated errors.
func translateUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return nil
	}

	switch pgErr.ConstraintName {
	case "uq_users_email":
		return ErrDuplicateEmail
	case "uq_users_username":
		return ErrDuplicateUsername
	default:
		return nil
	}
}
