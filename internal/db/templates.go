package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/myfolio/server/internal/models"
)

type TemplatesRepo struct {
	pool *pgxpool.Pool
}

func NewTemplatesRepo(pg *Postgres) *TemplatesRepo {
	return &TemplatesRepo{pool: pg.Pool}
}

func (r *TemplatesRepo) Create(ctx context.Context, tpl models.Template) (models.Template, error) {
	const query = `INSERT INTO templates (type, title, content, user_id)
		VALUES ($1, $2, $3, $4) RETURNING id, likes, created_at`

	err := r.pool.QueryRow(ctx, query, tpl.Type, tpl.Title, tpl.Content, tpl.UserID).
		Scan(&tpl.ID, &tpl.Likes, &tpl.CreatedAt)
	if err != nil {
		return models.Template{}, fmt.Errorf("insert template: %w", err)
	}

	return tpl, nil
}

func (r *TemplatesRepo) GetByID(ctx context.Context, id int64) (models.Template, error) {
	const query = `SELECT t.id, t.type, t.title, t.content, t.likes, t.created_at, t.user_id, u.username
		FROM templates t JOIN users u ON u.id = t.user_id
		WHERE t.id = $1`

	var tpl models.Template
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&tpl.ID, &tpl.Type, &tpl.Title, &tpl.Content, &tpl.Likes, &tpl.CreatedAt,
		&tpl.UserID, &tpl.Author.Username,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Template{}, ErrNotFound
	}
	if err != nil {
		return models.Template{}, fmt.Errorf("query template: %w", err)
	}

	tpl.Author.ID = tpl.UserID
	return tpl, nil
}

// OwnerID returns the owning user of a template without loading the row.
func (r *TemplatesRepo) OwnerID(ctx context.Context, id int64) (int64, error) {
	var ownerID int64
	err := r.pool.QueryRow(ctx, `SELECT user_id FROM templates WHERE id = $1`, id).Scan(&ownerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("query template owner: %w", err)
	}
	return ownerID, nil
}

// ListByUser returns one page of the user's templates ordered newest-first
// by (created_at, id). rawCursor, when non-empty, restricts the page to rows
// strictly older than it. The second return value is the raw cursor of the
// last row, or "" on an empty page.
func (r *TemplatesRepo) ListByUser(ctx context.Context, userID int64, rawCursor string, limit int) ([]models.TemplateSummary, string, error) {
	query := fmt.Sprintf(`SELECT %s AS cursor, id, type, title, likes, created_at
		FROM templates
		WHERE user_id = $1`, cursorExpr("created_at", "id"))

	args := []any{userID}
	if rawCursor != "" {
		query += ` AND ` + cursorExpr("created_at", "id") + ` < $2`
		args = append(args, rawCursor)
	}
	query += fmt.Sprintf(` ORDER BY cursor DESC LIMIT %d`, limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, "", fmt.Errorf("query templates page: %w", err)
	}
	defer rows.Close()

	summaries := make([]models.TemplateSummary, 0, limit)
	var lastCursor string
	for rows.Next() {
		var s models.TemplateSummary
		if err := rows.Scan(&lastCursor, &s.ID, &s.Type, &s.Title, &s.Likes, &s.CreatedAt); err != nil {
			return nil, "", fmt.Errorf("scan template row: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, "", fmt.Errorf("iterate templates page: %w", err)
	}

	return summaries, lastCursor, nil
}

// Update changes the title and/or content; nil pointers leave the field
// untouched.
func (r *TemplatesRepo) Update(ctx context.Context, id int64, title, content *string) (models.Template, error) {
	const query = `UPDATE templates
		SET title = COALESCE($1, title), content = COALESCE($2, content)
		WHERE id = $3`

	tag, err := r.pool.Exec(ctx, query, title, content, id)
	if err != nil {
		return models.Template{}, fmt.Errorf("update template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.Template{}, ErrNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *TemplatesRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Like increments the like counter and returns the new count.
func (r *TemplatesRepo) Like(ctx context.Context, id int64) (int, error) {
	var likes int
	err := r.pool.QueryRow(ctx, `UPDATE templates SET likes = likes + 1 WHERE id = $1 RETURNING likes`, id).
		Scan(&likes)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("like template: %w", err)
	}
	return likes, nil
}
