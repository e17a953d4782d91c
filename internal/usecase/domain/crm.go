package domain

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/RoyKeane94/toad/internal/crmexport"
	"github.com/RoyKeane94/toad/internal/entities"

	"github.com/google/uuid"
)

// CreateCompany adds a company to the CRM.
func (u *Usecase) CreateCompany(ctx context.Context, c entities.Company) (*entities.Company, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return nil, fmt.Errorf("%w: company name is required", entities.ErrInvalidArgument)
	}
	if !c.Kind.Valid() {
		return nil, fmt.Errorf("%w: unknown kind %q", entities.ErrInvalidArgument, c.Kind)
	}
	return u.repo.CreateCompany(ctx, c)
}

// ListCompanies returns all companies.
func (u *Usecase) ListCompanies(ctx context.Context) ([]entities.Company, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	return u.repo.ListCompanies(ctx)
}

// CreateLead adds a lead with a fresh unsubscribe token.
func (u *Usecase) CreateLead(ctx context.Context, l entities.Lead) (*entities.Lead, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	email, err := normalizeEmail(l.Email)
	if err != nil {
		return nil, err
	}
	l.Email = email
	l.Name = strings.TrimSpace(l.Name)
	if l.Name == "" {
		return nil, fmt.Errorf("%w: lead name is required", entities.ErrInvalidArgument)
	}
	if !l.Kind.Valid() {
		return nil, fmt.Errorf("%w: unknown kind %q", entities.ErrInvalidArgument, l.Kind)
	}
	l.Status = entities.LeadNew
	l.UnsubscribeToken = uuid.NewString()
	return u.repo.CreateLead(ctx, l)
}

// ListLeads returns leads matching filter.
func (u *Usecase) ListLeads(ctx context.Context, filter entities.LeadFilter) ([]entities.Lead, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if err := validateFilter(filter); err != nil {
		return nil, err
	}
	return u.repo.ListLeads(ctx, filter)
}

// UpdateLeadStatus moves a lead through the pipeline.
func (u *Usecase) UpdateLeadStatus(ctx context.Context, leadID int64, status entities.LeadStatus, note string) (*entities.Lead, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", entities.ErrInvalidArgument, status)
	}
	return u.repo.UpdateLeadStatus(ctx, leadID, status, strings.TrimSpace(note))
}

// Unsubscribe opts a lead out of outreach.
func (u *Usecase) Unsubscribe(ctx context.Context, token string) (*entities.Lead, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if token == "" {
		return nil, fmt.Errorf("%w: token is required", entities.ErrInvalidArgument)
	}
	return u.repo.Unsubscribe(ctx, token)
}

// CreateEmailTemplate adds an outreach template.
func (u *Usecase) CreateEmailTemplate(ctx context.Context, t entities.EmailTemplate) (*entities.EmailTemplate, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	t.Name = strings.TrimSpace(t.Name)
	switch {
	case t.Name == "":
		return nil, fmt.Errorf("%w: template name is required", entities.ErrInvalidArgument)
	case !t.Kind.Valid():
		return nil, fmt.Errorf("%w: unknown kind %q", entities.ErrInvalidArgument, t.Kind)
	case strings.TrimSpace(t.Subject) == "" || strings.TrimSpace(t.Body) == "":
		return nil, fmt.Errorf("%w: subject and body are required", entities.ErrInvalidArgument)
	}
	return u.repo.CreateEmailTemplate(ctx, t)
}

// ListEmailTemplates returns all outreach templates.
func (u *Usecase) ListEmailTemplates(ctx context.Context) ([]entities.EmailTemplate, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	return u.repo.ListEmailTemplates(ctx)
}

// ExportLeads writes leads matching filter to w as an XLSX workbook and returns how many were written.
func (u *Usecase) ExportLeads(ctx context.Context, filter entities.LeadFilter, w io.Writer) (int, error) {
	leads, err := u.ListLeads(ctx, filter)
	if err != nil {
		return 0, err
	}
	if err := crmexport.WriteLeads(w, leads); err != nil {
		return 0, err
	}
	return len(leads), nil
}

func validateFilter(f entities.LeadFilter) error {
	if f.Kind != nil && !f.Kind.Valid() {
		return fmt.Errorf("%w: unknown kind %q", entities.ErrInvalidArgument, *f.Kind)
	}
	if f.Status != nil && !f.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", entities.ErrInvalidArgument, *f.Status)
	}
	if f.Limit < 0 {
		return fmt.Errorf("%w: limit must not be negative", entities.ErrInvalidArgument)
	}
	return nil
}
