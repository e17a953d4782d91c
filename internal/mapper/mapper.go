// Package mapper converts between domain models and transport DTOs.
package mapper

import (
	"time"

	"github.com/RoyKeane94/toad/internal/entities"
	"github.com/RoyKeane94/toad/internal/transport/http/dto"
)

// ToUser maps entities.User to transport model.
func ToUser(u entities.User) dto.User {
	return dto.User{
		UserID:        u.ID,
		Email:         u.Email,
		Username:      u.Username,
		Tier:          string(u.Tier),
		TierSource:    string(u.TierSource),
		TrialUsed:     u.TrialUsed,
		TrialEndsAt:   u.TrialEndsAt,
		EmailVerified: u.EmailVerified,
		IsStaff:       u.IsStaff,
		CreatedAt:     u.CreatedAt,
	}
}

// ToProject maps entities.Project to transport model.
func ToProject(p entities.Project) dto.Project {
	return dto.Project{
		ID:        p.ID,
		OwnerID:   p.OwnerID,
		Title:     p.Title,
		GroupID:   p.GroupID,
		Archived:  p.Archived,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// ToProjects maps a slice of projects.
func ToProjects(list []entities.Project) []dto.Project {
	res := make([]dto.Project, 0, len(list))
	for _, p := range list {
		res = append(res, ToProject(p))
	}
	return res
}

// ToHeader maps entities.Header to transport model.
func ToHeader(h entities.Header) dto.Header {
	return dto.Header{ID: h.ID, Kind: string(h.Kind), Title: h.Title, Order: h.Order}
}

// ToHeaders maps a slice of headers.
func ToHeaders(list []entities.Header) []dto.Header {
	res := make([]dto.Header, 0, len(list))
	for _, h := range list {
		res = append(res, ToHeader(h))
	}
	return res
}

// ToTask maps entities.Task to transport model.
func ToTask(t entities.Task) dto.Task {
	return dto.Task{
		ID:        t.ID,
		ProjectID: t.ProjectID,
		RowID:     t.RowID,
		ColumnID:  t.ColumnID,
		Text:      t.Text,
		Done:      t.Done,
		Order:     t.Order,
		CreatedAt: t.CreatedAt,
	}
}

// ToGrid maps a full grid.
func ToGrid(g entities.Grid) dto.Grid {
	tasks := make([]dto.Task, 0, len(g.Tasks))
	for _, t := range g.Tasks {
		tasks = append(tasks, ToTask(t))
	}
	return dto.Grid{
		Project: ToProject(g.Project),
		Rows:    ToHeaders(g.Rows),
		Columns: ToHeaders(g.Columns),
		Tasks:   tasks,
	}
}

// ToTemplates maps personal templates.
func ToTemplates(list []entities.PersonalTemplate) []dto.Template {
	res := make([]dto.Template, 0, len(list))
	for _, t := range list {
		res = append(res, ToTemplate(t))
	}
	return res
}

// ToTemplate maps a personal template.
func ToTemplate(t entities.PersonalTemplate) dto.Template {
	return dto.Template{ID: t.ID, Name: t.Name, Rows: t.Rows, Columns: t.Columns, CreatedAt: t.CreatedAt}
}

// ToInvitation maps an invitation without its token.
func ToInvitation(inv entities.TeamInvitation) dto.Invitation {
	return dto.Invitation{
		ID:        inv.ID,
		GroupID:   inv.GroupID,
		Email:     inv.Email,
		Status:    string(inv.Status),
		CreatedAt: inv.CreatedAt,
		ExpiresAt: inv.ExpiresAt,
	}
}

// ToGroup maps group details with seat usage computed at now.
func ToGroup(d entities.GroupDetails, now time.Time) dto.Group {
	members := make([]dto.Member, 0, len(d.Members))
	for _, m := range d.Members {
		members = append(members, dto.Member{UserID: m.UserID, Email: m.Email, Username: m.Username, JoinedAt: m.JoinedAt})
	}
	invitations := make([]dto.Invitation, 0, len(d.Invitations))
	for _, inv := range d.Invitations {
		invitations = append(invitations, ToInvitation(inv))
	}
	usage := d.Usage(now)
	return dto.Group{
		ID:          d.Group.ID,
		OwnerID:     d.Group.OwnerID,
		Name:        d.Group.Name,
		Active:      d.Group.Active,
		Usage:       dto.SeatUsage(usage),
		Members:     members,
		Invitations: invitations,
	}
}

// ToDowngrade maps a downgrade report.
func ToDowngrade(r entities.DowngradeReport) dto.Downgrade {
	return dto.Downgrade(r)
}

// ToCompanies maps CRM companies.
func ToCompanies(list []entities.Company) []dto.Company {
	res := make([]dto.Company, 0, len(list))
	for _, c := range list {
		res = append(res, ToCompany(c))
	}
	return res
}

// ToCompany maps a CRM company.
func ToCompany(c entities.Company) dto.Company {
	return dto.Company{ID: c.ID, Name: c.Name, Kind: string(c.Kind), Website: c.Website, CreatedAt: c.CreatedAt}
}

// FromCompanyRequest builds an entities.Company from transport DTO.
func FromCompanyRequest(req dto.CompanyRequest) entities.Company {
	return entities.Company{Name: req.Name, Kind: entities.LeadKind(req.Kind), Website: req.Website}
}

// ToLeads maps CRM leads.
func ToLeads(list []entities.Lead) []dto.Lead {
	res := make([]dto.Lead, 0, len(list))
	for _, l := range list {
		res = append(res, ToLead(l))
	}
	return res
}

// ToLead maps a CRM lead without its unsubscribe token.
func ToLead(l entities.Lead) dto.Lead {
	return dto.Lead{
		ID:              l.ID,
		CompanyID:       l.CompanyID,
		CompanyName:     l.CompanyName,
		Kind:            string(l.Kind),
		Name:            l.Name,
		Email:           l.Email,
		Status:          string(l.Status),
		Notes:           l.Notes,
		FollowUps:       l.FollowUps,
		LastContactedAt: l.LastContactedAt,
		CreatedAt:       l.CreatedAt,
	}
}

// FromLeadRequest builds an entities.Lead from transport DTO.
func FromLeadRequest(req dto.LeadRequest) entities.Lead {
	return entities.Lead{
		CompanyID: req.CompanyID,
		Kind:      entities.LeadKind(req.Kind),
		Name:      req.Name,
		Email:     req.Email,
		Notes:     req.Notes,
	}
}

// ToEmailTemplates maps outreach templates.
func ToEmailTemplates(list []entities.EmailTemplate) []dto.EmailTemplate {
	res := make([]dto.EmailTemplate, 0, len(list))
	for _, t := range list {
		res = append(res, ToEmailTemplate(t))
	}
	return res
}

// ToEmailTemplate maps an outreach template.
func ToEmailTemplate(t entities.EmailTemplate) dto.EmailTemplate {
	return dto.EmailTemplate{ID: t.ID, Name: t.Name, Kind: string(t.Kind), Subject: t.Subject, Body: t.Body, CreatedAt: t.CreatedAt}
}

// FromEmailTemplateRequest builds an entities.EmailTemplate from transport DTO.
func FromEmailTemplateRequest(req dto.EmailTemplateRequest) entities.EmailTemplate {
	return entities.EmailTemplate{Name: req.Name, Kind: entities.LeadKind(req.Kind), Subject: req.Subject, Body: req.Body}
}

// LeadFilter builds a filter from optional query values; empty strings mean "any".
func LeadFilter(kind, status string, companyID *int64, limit int) entities.LeadFilter {
	f := entities.LeadFilter{CompanyID: companyID, Limit: limit}
	if kind != "" {
		k := entities.LeadKind(kind)
		f.Kind = &k
	}
	if status != "" {
		s := entities.LeadStatus(status)
		f.Status = &s
	}
	return f
}

// FromCampaignRequest builds campaign options from transport DTO.
func FromCampaignRequest(req dto.CampaignRequest) entities.CampaignOptions {
	return entities.CampaignOptions{
		TemplateID: req.TemplateID,
		Filter:     LeadFilter(req.Kind, req.Status, req.CompanyID, req.Limit),
		DryRun:     req.DryRun,
	}
}

// ToCampaignResult maps a campaign summary.
func ToCampaignResult(r entities.CampaignResult) dto.CampaignResult {
	return dto.CampaignResult(r)
}
