package usecase

import (
	"context"
	"io"

	"github.com/RoyKeane94/toad/internal/entities"
)

// AccountUsecaseInterface abstracts account and tier operations for delivery layer.
type AccountUsecaseInterface interface {
	Me(ctx context.Context, userID string) (*entities.User, error)
	UserByEmail(ctx context.Context, email string) (*entities.User, error)
	CreateUser(ctx context.Context, email, username string, staff bool) (*entities.User, error)
	VerifyEmail(ctx context.Context, token string) (*entities.User, error)
	StartTrial(ctx context.Context, userID string, tier entities.Tier) (*entities.User, error)
	ChangeTier(ctx context.Context, userID string, tier entities.Tier, source entities.TierSource) (*entities.User, entities.DowngradeReport, error)
	ExpireTrials(ctx context.Context) (int, entities.DowngradeReport, error)
}

// GroupUsecaseInterface abstracts subscription group and seat operations.
type GroupUsecaseInterface interface {
	CreateGroup(ctx context.Context, ownerID, name string, seats int, subscriptionID string) (*entities.GroupDetails, error)
	Group(ctx context.Context, actorID string, groupID int64) (*entities.GroupDetails, error)
	Invite(ctx context.Context, groupID int64, actorID, email string) (*entities.TeamInvitation, error)
	AcceptInvitation(ctx context.Context, token, userID string) (*entities.GroupDetails, error)
	DeclineInvitation(ctx context.Context, token, userID string) error
	RevokeInvitation(ctx context.Context, groupID int64, actorID string, invitationID int64) error
	RemoveMember(ctx context.Context, groupID int64, actorID, userID string) (entities.DowngradeReport, error)
	SetSeats(ctx context.Context, groupID int64, seats int) (entities.DowngradeReport, error)
}

// GridUsecaseInterface abstracts project, header and task operations.
type GridUsecaseInterface interface {
	CreateProject(ctx context.Context, userID, title string, rows, columns []string) (*entities.Grid, error)
	ListProjects(ctx context.Context, userID string, includeArchived bool) ([]entities.Project, error)
	Grid(ctx context.Context, userID string, projectID int64) (*entities.Grid, error)
	RenameProject(ctx context.Context, userID string, projectID int64, title string) (*entities.Project, error)
	ArchiveProject(ctx context.Context, userID string, projectID int64, archived bool) (*entities.Project, error)
	DeleteProject(ctx context.Context, userID string, projectID int64) error
	ShareProject(ctx context.Context, userID string, projectID int64) (*entities.Project, error)
	UnshareProject(ctx context.Context, userID string, projectID int64) (*entities.Project, error)

	AddHeader(ctx context.Context, userID string, projectID int64, kind entities.HeaderKind, title string) (*entities.Header, error)
	RenameHeader(ctx context.Context, userID string, headerID int64, title string) (*entities.Header, error)
	MoveHeader(ctx context.Context, userID string, headerID int64, index int) ([]entities.Header, error)
	DeleteHeader(ctx context.Context, userID string, headerID int64) error

	AddTask(ctx context.Context, userID string, task entities.Task) (*entities.Task, error)
	UpdateTask(ctx context.Context, userID string, taskID int64, text *string, done *bool) (*entities.Task, error)
	MoveTask(ctx context.Context, userID string, taskID, rowID, columnID int64, index int) (*entities.Task, error)
	DeleteTask(ctx context.Context, userID string, taskID int64) error
	ClearCompleted(ctx context.Context, userID string, projectID int64) (int, error)
}

// TemplateUsecaseInterface abstracts personal templates and cloning.
type TemplateUsecaseInterface interface {
	SaveTemplate(ctx context.Context, userID string, projectID int64, name string) (*entities.PersonalTemplate, error)
	ListTemplates(ctx context.Context, userID string) ([]entities.PersonalTemplate, error)
	DeleteTemplate(ctx context.Context, userID string, templateID int64) error
	InstantiateTemplate(ctx context.Context, userID string, templateID int64, title string) (*entities.Grid, error)
	CloneProject(ctx context.Context, userID string, projectID int64, mode entities.CloneMode, title string) (*entities.Grid, error)
}

// BillingUsecaseInterface abstracts Stripe webhook handling.
type BillingUsecaseInterface interface {
	ProcessWebhook(ctx context.Context, payload []byte, signature string) error
}

// CRMUsecaseInterface abstracts the internal CRM.
type CRMUsecaseInterface interface {
	CreateCompany(ctx context.Context, c entities.Company) (*entities.Company, error)
	ListCompanies(ctx context.Context) ([]entities.Company, error)
	CreateLead(ctx context.Context, l entities.Lead) (*entities.Lead, error)
	ListLeads(ctx context.Context, filter entities.LeadFilter) ([]entities.Lead, error)
	UpdateLeadStatus(ctx context.Context, leadID int64, status entities.LeadStatus, note string) (*entities.Lead, error)
	Unsubscribe(ctx context.Context, token string) (*entities.Lead, error)
	CreateEmailTemplate(ctx context.Context, t entities.EmailTemplate) (*entities.EmailTemplate, error)
	ListEmailTemplates(ctx context.Context) ([]entities.EmailTemplate, error)
	ExportLeads(ctx context.Context, filter entities.LeadFilter, w io.Writer) (int, error)
}

// CampaignUsecaseInterface abstracts outreach campaigns.
type CampaignUsecaseInterface interface {
	SendCampaign(ctx context.Context, opts entities.CampaignOptions) (entities.CampaignResult, error)
}
