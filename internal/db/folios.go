package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/myfolio/server/internal/models"
)

type FoliosRepo struct {
	pool *pgxpool.Pool
}

func NewFoliosRepo(pg *Postgres) *FoliosRepo {
	return &FoliosRepo{pool: pg.Pool}
}

type FolioCreate struct {
	Type           string
	Title          string
	BaseTemplateID int64
	UserInputData  string
}

// Create snapshots the base template's content into the new folio. Reading
// the template and inserting the folio happen in one transaction so the
// copied content matches what existed at creation time. ErrNotFound means
// the base template does not exist.
func (r *FoliosRepo) Create(ctx context.Context, authorID int64, in FolioCreate) (models.Folio, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return models.Folio{}, fmt.Errorf("begin folio create: %w", err)
	}
	defer tx.Rollback(ctx)

	var content string
	err = tx.QueryRow(ctx, `SELECT content FROM templates WHERE id = $1`, in.BaseTemplateID).Scan(&content)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Folio{}, ErrNotFound
	}
	if err != nil {
		return models.Folio{}, fmt.Errorf("snapshot template: %w", err)
	}

	userInput := in.UserInputData
	if userInput == "" {
		userInput = "{}"
	}

	folio := models.Folio{
		Type:          in.Type,
		Title:         in.Title,
		AuthorID:      authorID,
		UserInputData: userInput,
		BaseTemplate: models.TemplateSnapshot{
			ID:      in.BaseTemplateID,
			Content: content,
		},
	}

	const query = `INSERT INTO folios (type, title, author_id, base_template_id, base_template_content, user_input_data)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, base_template_fetched_at, last_modified`

	err = tx.QueryRow(ctx, query, folio.Type, folio.Title, authorID, in.BaseTemplateID, content, userInput).
		Scan(&folio.ID, &folio.BaseTemplate.FetchedAt, &folio.LastModified)
	if err != nil {
		return models.Folio{}, fmt.Errorf("insert folio: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Folio{}, fmt.Errorf("commit folio create: %w", err)
	}

	return folio, nil
}

func (r *FoliosRepo) GetByID(ctx context.Context, id int64) (models.Folio, error) {
	const query = `SELECT f.id, f.type, f.title, f.author_id, f.base_template_id, f.base_template_content,
			f.base_template_fetched_at, f.user_input_data, f.last_modified, u.username
		FROM folios f JOIN users u ON u.id = f.author_id
		WHERE f.id = $1`

	var folio models.Folio
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&folio.ID, &folio.Type, &folio.Title, &folio.AuthorID,
		&folio.BaseTemplate.ID, &folio.BaseTemplate.Content, &folio.BaseTemplate.FetchedAt,
		&folio.UserInputData, &folio.LastModified, &folio.Author.Username,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Folio{}, ErrNotFound
	}
	if err != nil {
		return models.Folio{}, fmt.Errorf("query folio: %w", err)
	}

	folio.Author.ID = folio.AuthorID
	return folio, nil
}

// OwnerID returns the folio's author without loading the row, for the
// ownership check that runs before any mutation.
func (r *FoliosRepo) OwnerID(ctx context.Context, id int64) (int64, error) {
	var authorID int64
	err := r.pool.QueryRow(ctx, `SELECT author_id FROM folios WHERE id = $1`, id).Scan(&authorID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("query folio owner: %w", err)
	}
	return authorID, nil
}

// ListByAuthor returns one page of the author's folios ordered newest-first
// by (last_modified, id). See TemplatesRepo.ListByUser for the cursor
// contract.
func (r *FoliosRepo) ListByAuthor(ctx context.Context, authorID int64, rawCursor string, limit int) ([]models.FolioSummary, string, error) {
	query := fmt.Sprintf(`SELECT %s AS cursor, id, type, title, last_modified
		FROM folios
		WHERE author_id = $1`, cursorExpr("last_modified", "id"))

	args := []any{authorID}
	if rawCursor != "" {
		query += ` AND ` + cursorExpr("last_modified", "id") + ` < $2`
		args = append(args, rawCursor)
	}
	query += fmt.Sprintf(` ORDER BY cursor DESC LIMIT %d`, limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, "", fmt.Errorf("query folios page: %w", err)
	}
	defer rows.Close()

	summaries := make([]models.FolioSummary, 0, limit)
	var lastCursor string
	for rows.Next() {
		var s models.FolioSummary
		if err := rows.Scan(&lastCursor, &s.ID, &s.Type, &s.Title, &s.LastModified); err != nil {
			return nil, "", fmt.Errorf("scan folio row: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, "", fmt.Errorf("iterate folios page: %w", err)
	}

	return summaries, lastCursor, nil
}

// Update changes the title and/or user input payload; every successful
// update also bumps last_modified.
func (r *FoliosRepo) Update(ctx context.Context, id int64, title, userInputData *string) (models.Folio, error) {
	const query = `UPDATE folios
		SET title = COALESCE($1, title), user_input_data = COALESCE($2, user_input_data), last_modified = NOW()
		WHERE id = $3`

	tag, err := r.pool.Exec(ctx, query, title, userInputData, id)
	if err != nil {
		return models.Folio{}, fmt.Errorf("update folio: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.Folio{}, ErrNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *FoliosRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM folios WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete folio: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
