package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/RoyKeane94/toad/internal/entities"

	"github.com/jackc/pgx/v5"
)

const (
	companyColumns       = `id, name, kind, website, created_at`
	insertCompanyQuery   = `INSERT INTO companies(name, kind, website) VALUES ($1, $2, $3) RETURNING ` + companyColumns
	selectCompaniesQuery = `SELECT ` + companyColumns + ` FROM companies ORDER BY name, id`
	companyExistsQuery   = `SELECT EXISTS(SELECT 1 FROM companies WHERE id=$1)`

	leadSelect = `
SELECT l.id, l.company_id, COALESCE(c.name, ''), l.kind, l.name, l.email, l.status, l.notes,
       l.follow_ups, l.last_contacted_at, l.unsubscribe_token, l.created_at
FROM leads l
LEFT JOIN companies c ON c.id = l.company_id`

	insertLeadQuery = `
INSERT INTO leads(company_id, kind, name, email, notes, unsubscribe_token)
VALUES ($1, $2, $3, lower($4), $5, $6)
RETURNING id`
	selectLeadQuery        = leadSelect + ` WHERE l.id=$1`
	selectLeadByTokenQuery = leadSelect + ` WHERE l.unsubscribe_token=$1`
	selectLeadStatusQuery  = `SELECT status FROM leads WHERE id=$1 FOR UPDATE`
	listLeadsQuery         = leadSelect + `
WHERE ($1::text IS NULL OR l.kind=$1)
  AND ($2::text IS NULL OR l.status=$2)
  AND ($3::bigint IS NULL OR l.company_id=$3)
ORDER BY l.created_at DESC, l.id DESC
LIMIT NULLIF($4::int, 0)`
	updateLeadStatusQuery = `
UPDATE leads SET status=$2,
    notes = CASE WHEN $3::text = '' THEN notes WHEN notes = '' THEN $3 ELSE notes || E'\n' || $3 END
WHERE id=$1`
	unsubscribeQuery = `UPDATE leads SET status='unsubscribed' WHERE unsubscribe_token=$1 AND status <> 'unsubscribed'`
	audienceQuery    = leadSelect + `
WHERE l.status NOT IN ('won', 'lost', 'unsubscribed')
  AND ($1::text IS NULL OR l.kind=$1)
  AND ($2::text IS NULL OR l.status=$2)
  AND ($3::bigint IS NULL OR l.company_id=$3)
  AND (l.last_contacted_at IS NULL OR l.last_contacted_at < $4)
ORDER BY l.last_contacted_at NULLS FIRST, l.id
LIMIT NULLIF($5::int, 0)`
	markContactedQuery = `
UPDATE leads SET
    status = CASE WHEN status = 'new' THEN 'contacted' ELSE status END,
    follow_ups = follow_ups + 1,
    last_contacted_at = $2
WHERE id=$1`

	emailTemplateColumns      = `id, name, kind, subject, body, created_at`
	insertEmailTemplateQuery  = `INSERT INTO email_templates(name, kind, subject, body) VALUES ($1, $2, $3, $4) RETURNING ` + emailTemplateColumns
	selectEmailTemplateQuery  = `SELECT ` + emailTemplateColumns + ` FROM email_templates WHERE id=$1`
	selectEmailTemplatesQuery = `SELECT ` + emailTemplateColumns + ` FROM email_templates ORDER BY name, id`
)

func scanCompany(row pgx.Row) (*entities.Company, error) {
	var c entities.Company
	if err := row.Scan(&c.ID, &c.Name, &c.Kind, &c.Website, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrCompanyNotFound
		}
		return nil, err
	}
	return &c, nil
}

func scanLead(row pgx.Row) (*entities.Lead, error) {
	var l entities.Lead
	err := row.Scan(&l.ID, &l.CompanyID, &l.CompanyName, &l.Kind, &l.Name, &l.Email, &l.Status, &l.Notes,
		&l.FollowUps, &l.LastContactedAt, &l.UnsubscribeToken, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrLeadNotFound
		}
		return nil, err
	}
	return &l, nil
}

func scanEmailTemplate(row pgx.Row) (*entities.EmailTemplate, error) {
	var t entities.EmailTemplate
	if err := row.Scan(&t.ID, &t.Name, &t.Kind, &t.Subject, &t.Body, &t.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrEmailTemplateNotFound
		}
		return nil, err
	}
	return &t, nil
}

// filterArgs turns a lead filter into nullable query arguments.
func filterArgs(f entities.LeadFilter) (kind, status *string, companyID *int64) {
	if f.Kind != nil {
		k := string(*f.Kind)
		kind = &k
	}
	if f.Status != nil {
		s := string(*f.Status)
		status = &s
	}
	return kind, status, f.CompanyID
}

// CreateCompany inserts a company.
func (p *Postgres) CreateCompany(ctx context.Context, c entities.Company) (*entities.Company, error) {
	created, err := scanCompany(p.db.QueryRow(ctx, insertCompanyQuery, c.Name, c.Kind, c.Website))
	if err != nil {
		return nil, fmt.Errorf("insert company: %w", err)
	}
	return created, nil
}

// ListCompanies returns all companies by name.
func (p *Postgres) ListCompanies(ctx context.Context) ([]entities.Company, error) {
	rows, err := p.db.Query(ctx, selectCompaniesQuery)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	companies := make([]entities.Company, 0)
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		companies = append(companies, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate companies: %w", err)
	}
	return companies, nil
}

// CreateLead inserts a lead; the email must be unique.
func (p *Postgres) CreateLead(ctx context.Context, l entities.Lead) (*entities.Lead, error) {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if l.CompanyID != nil {
		var exists bool
		if err := tx.QueryRow(ctx, companyExistsQuery, *l.CompanyID).Scan(&exists); err != nil {
			return nil, fmt.Errorf("check company: %w", err)
		}
		if !exists {
			return nil, entities.ErrCompanyNotFound
		}
	}

	var id int64
	err = tx.QueryRow(ctx, insertLeadQuery, l.CompanyID, l.Kind, l.Name, l.Email, l.Notes, l.UnsubscribeToken).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, entities.ErrLeadExists
		}
		return nil, fmt.Errorf("insert lead: %w", err)
	}

	created, err := scanLead(tx.QueryRow(ctx, selectLeadQuery, id))
	if err != nil {
		return nil, fmt.Errorf("reload lead: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	p.log.Infow("lead created", "lead_id", id, "kind", l.Kind)
	return created, nil
}

// GetLead fetches a lead by id.
func (p *Postgres) GetLead(ctx context.Context, leadID int64) (*entities.Lead, error) {
	l, err := scanLead(p.db.QueryRow(ctx, selectLeadQuery, leadID))
	if err != nil && !errors.Is(err, entities.ErrLeadNotFound) {
		return nil, fmt.Errorf("get lead: %w", err)
	}
	return l, err
}

// ListLeads returns leads matching the filter, newest first.
func (p *Postgres) ListLeads(ctx context.Context, filter entities.LeadFilter) ([]entities.Lead, error) {
	kind, status, companyID := filterArgs(filter)
	return p.queryLeads(ctx, listLeadsQuery, kind, status, companyID, filter.Limit)
}

// UpdateLeadStatus moves a lead through the pipeline and appends a note.
func (p *Postgres) UpdateLeadStatus(ctx context.Context, leadID int64, status entities.LeadStatus, note string) (*entities.Lead, error) {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var current entities.LeadStatus
	if err := tx.QueryRow(ctx, selectLeadStatusQuery, leadID).Scan(&current); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrLeadNotFound
		}
		return nil, fmt.Errorf("lock lead: %w", err)
	}
	if !entities.CanTransition(current, status) {
		return nil, fmt.Errorf("%w: %s to %s", entities.ErrInvalidTransition, current, status)
	}

	if _, err := tx.Exec(ctx, updateLeadStatusQuery, leadID, status, note); err != nil {
		return nil, fmt.Errorf("update lead status: %w", err)
	}
	updated, err := scanLead(tx.QueryRow(ctx, selectLeadQuery, leadID))
	if err != nil {
		return nil, fmt.Errorf("reload lead: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	p.log.Infow("lead status changed", "lead_id", leadID, "from", current, "to", status)
	return updated, nil
}

// Unsubscribe marks the lead owning token as unsubscribed. Repeated calls are no-ops.
func (p *Postgres) Unsubscribe(ctx context.Context, token string) (*entities.Lead, error) {
	tag, err := p.db.Exec(ctx, unsubscribeQuery, token)
	if err != nil {
		return nil, fmt.Errorf("unsubscribe: %w", err)
	}
	l, err := scanLead(p.db.QueryRow(ctx, selectLeadByTokenQuery, token))
	if err != nil {
		if errors.Is(err, entities.ErrLeadNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get lead by token: %w", err)
	}
	if tag.RowsAffected() > 0 {
		p.log.Infow("lead unsubscribed", "lead_id", l.ID)
	}
	return l, nil
}

// CampaignAudience returns non-terminal leads matching filter not contacted since contactedBefore.
func (p *Postgres) CampaignAudience(ctx context.Context, filter entities.LeadFilter, contactedBefore time.Time) ([]entities.Lead, error) {
	kind, status, companyID := filterArgs(filter)
	return p.queryLeads(ctx, audienceQuery, kind, status, companyID, contactedBefore, filter.Limit)
}

// MarkContacted records an outreach email sent to the lead.
func (p *Postgres) MarkContacted(ctx context.Context, leadID int64, at time.Time) error {
	tag, err := p.db.Exec(ctx, markContactedQuery, leadID, at)
	if err != nil {
		return fmt.Errorf("mark contacted: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrLeadNotFound
	}
	return nil
}

// CreateEmailTemplate inserts an outreach template.
func (p *Postgres) CreateEmailTemplate(ctx context.Context, t entities.EmailTemplate) (*entities.EmailTemplate, error) {
	created, err := scanEmailTemplate(p.db.QueryRow(ctx, insertEmailTemplateQuery, t.Name, t.Kind, t.Subject, t.Body))
	if err != nil {
		return nil, fmt.Errorf("insert email template: %w", err)
	}
	return created, nil
}

// GetEmailTemplate fetches an outreach template by id.
func (p *Postgres) GetEmailTemplate(ctx context.Context, templateID int64) (*entities.EmailTemplate, error) {
	t, err := scanEmailTemplate(p.db.QueryRow(ctx, selectEmailTemplateQuery, templateID))
	if err != nil && !errors.Is(err, entities.ErrEmailTemplateNotFound) {
		return nil, fmt.Errorf("get email template: %w", err)
	}
	return t, err
}

// ListEmailTemplates returns all outreach templates.
func (p *Postgres) ListEmailTemplates(ctx context.Context) ([]entities.EmailTemplate, error) {
	rows, err := p.db.Query(ctx, selectEmailTemplatesQuery)
	if err != nil {
		return nil, fmt.Errorf("list email templates: %w", err)
	}
	defer rows.Close()

	templates := make([]entities.EmailTemplate, 0)
	for rows.Next() {
		t, err := scanEmailTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan email template: %w", err)
		}
		templates = append(templates, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate email templates: %w", err)
	}
	return templates, nil
}

func (p *Postgres) queryLeads(ctx context.Context, query string, args ...any) ([]entities.Lead, error) {
	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query leads: %w", err)
	}
	defer rows.Close()

	leads := make([]entities.Lead, 0)
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		leads = append(leads, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leads: %w", err)
	}
	return leads, nil
}
