package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/RoyKeane94/toad/internal/entities"

	"github.com/jackc/pgx/v5"
)

const (
	templateColumns = `id, owner_id, name, row_titles, column_titles, created_at`

	countTemplatesQuery = `SELECT COUNT(*) FROM personal_templates WHERE owner_id=$1`
	insertTemplateQuery = `
INSERT INTO personal_templates(owner_id, name, row_titles, column_titles)
VALUES ($1, $2, $3, $4)
RETURNING ` + templateColumns
	selectTemplateQuery  = `SELECT ` + templateColumns + ` FROM personal_templates WHERE id=$1`
	selectTemplatesQuery = `SELECT ` + templateColumns + ` FROM personal_templates WHERE owner_id=$1 ORDER BY created_at DESC, id DESC`
	deleteTemplateQuery  = `DELETE FROM personal_templates WHERE id=$1`
)

func scanTemplate(row pgx.Row) (*entities.PersonalTemplate, error) {
	var t entities.PersonalTemplate
	if err := row.Scan(&t.ID, &t.OwnerID, &t.Name, &t.Rows, &t.Columns, &t.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrTemplateNotFound
		}
		return nil, err
	}
	return &t, nil
}

// CreateTemplate saves a layout if the owner has quota left.
func (p *Postgres) CreateTemplate(ctx context.Context, t entities.PersonalTemplate, limit int) (*entities.PersonalTemplate, error) {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, lockOwnerQuery, t.OwnerID); err != nil {
		return nil, fmt.Errorf("lock owner: %w", err)
	}
	var count int
	if err := tx.QueryRow(ctx, countTemplatesQuery, t.OwnerID).Scan(&count); err != nil {
		return nil, fmt.Errorf("count templates: %w", err)
	}
	if !entities.Allows(limit, count) {
		return nil, entities.ErrTierLimit
	}

	created, err := scanTemplate(tx.QueryRow(ctx, insertTemplateQuery, t.OwnerID, t.Name, t.Rows, t.Columns))
	if err != nil {
		return nil, fmt.Errorf("insert template: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	p.log.Infow("template created", "template_id", created.ID, "owner_id", created.OwnerID)
	return created, nil
}

// GetTemplate fetches a template by id.
func (p *Postgres) GetTemplate(ctx context.Context, templateID int64) (*entities.PersonalTemplate, error) {
	t, err := scanTemplate(p.db.QueryRow(ctx, selectTemplateQuery, templateID))
	if err != nil && !errors.Is(err, entities.ErrTemplateNotFound) {
		return nil, fmt.Errorf("get template: %w", err)
	}
	return t, err
}

// ListTemplates returns the owner's templates, newest first.
func (p *Postgres) ListTemplates(ctx context.Context, ownerID string) ([]entities.PersonalTemplate, error) {
	rows, err := p.db.Query(ctx, selectTemplatesQuery, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	templates := make([]entities.PersonalTemplate, 0)
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		templates = append(templates, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate templates: %w", err)
	}
	return templates, nil
}

// DeleteTemplate removes a template.
func (p *Postgres) DeleteTemplate(ctx context.Context, templateID int64) error {
	tag, err := p.db.Exec(ctx, deleteTemplateQuery, templateID)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrTemplateNotFound
	}
	return nil
}
