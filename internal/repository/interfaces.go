// Package repository contains repository interfaces for persistence layers.
package repository

import (
	"context"
	"time"

	"github.com/RoyKeane94/toad/internal/entities"
)

// LifecycleInterface describes storage startup/shutdown hooks.
type LifecycleInterface interface {
	OnStart(_ context.Context) error
	OnStop(_ context.Context) error
}

// UserInterface exposes account and tier operations.
type UserInterface interface {
	CreateUser(ctx context.Context, u entities.User) (*entities.User, error)
	GetUser(ctx context.Context, userID string) (*entities.User, error)
	GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
	GetUserByCustomer(ctx context.Context, customerID string) (*entities.User, error)
	VerifyEmail(ctx context.Context, token string) (*entities.User, error)
	StartTrial(ctx context.Context, userID string, tier entities.Tier, now, endsAt time.Time) (*entities.User, error)
	SetStripeCustomer(ctx context.Context, userID, customerID string) error
	ChangeTier(ctx context.Context, userID string, tier entities.Tier, source entities.TierSource) (*entities.User, entities.DowngradeReport, error)
	ListExpiredTrials(ctx context.Context, now time.Time) ([]entities.User, error)
}

// GroupInterface exposes subscription group and seat operations.
type GroupInterface interface {
	CreateGroup(ctx context.Context, g entities.SubscriptionGroup) (*entities.GroupDetails, error)
	GetGroup(ctx context.Context, groupID int64) (*entities.GroupDetails, error)
	GetGroupBySubscription(ctx context.Context, subscriptionID string) (*entities.SubscriptionGroup, error)
	GroupForUser(ctx context.Context, userID string) (*entities.SubscriptionGroup, error)
	CreateInvitation(ctx context.Context, inv entities.TeamInvitation, now time.Time) (*entities.TeamInvitation, error)
	AcceptInvitation(ctx context.Context, token, userID string, now time.Time) (*entities.GroupDetails, error)
	DeclineInvitation(ctx context.Context, token, userID string) error
	RevokeInvitation(ctx context.Context, groupID, invitationID int64) error
	RemoveMember(ctx context.Context, groupID int64, userID string) (entities.DowngradeReport, error)
	SetSeats(ctx context.Context, groupID int64, seats int, now time.Time) (entities.DowngradeReport, error)
	DeactivateGroup(ctx context.Context, groupID int64) (entities.DowngradeReport, error)
}

// GridInterface exposes project, header and task operations.
type GridInterface interface {
	CreateProject(ctx context.Context, p entities.Project, rows, columns []string, limit int) (*entities.Grid, error)
	GetProject(ctx context.Context, projectID int64) (*entities.Project, error)
	GetGrid(ctx context.Context, projectID int64) (*entities.Grid, error)
	ListProjects(ctx context.Context, userID string, groupID *int64, includeArchived bool) ([]entities.Project, error)
	RenameProject(ctx context.Context, projectID int64, title string) (*entities.Project, error)
	SetArchived(ctx context.Context, projectID int64, archived bool, limit int) (*entities.Project, error)
	SetProjectGroup(ctx context.Context, projectID int64, groupID *int64) (*entities.Project, error)
	DeleteProject(ctx context.Context, projectID int64) error
	CloneProject(ctx context.Context, srcID int64, ownerID, title string, mode entities.CloneMode, limit int) (*entities.Grid, error)

	AddHeader(ctx context.Context, projectID int64, kind entities.HeaderKind, title string) (*entities.Header, error)
	GetHeader(ctx context.Context, headerID int64) (*entities.Header, error)
	RenameHeader(ctx context.Context, headerID int64, title string) (*entities.Header, error)
	MoveHeader(ctx context.Context, headerID int64, index int) ([]entities.Header, error)
	DeleteHeader(ctx context.Context, headerID int64) error

	AddTask(ctx context.Context, t entities.Task) (*entities.Task, error)
	GetTask(ctx context.Context, taskID int64) (*entities.Task, error)
	UpdateTask(ctx context.Context, taskID int64, text *string, done *bool) (*entities.Task, error)
	MoveTask(ctx context.Context, taskID, rowID, columnID int64, index int) (*entities.Task, error)
	DeleteTask(ctx context.Context, taskID int64) error
	ClearCompleted(ctx context.Context, projectID int64) (int, error)
}

// TemplateInterface exposes personal template operations.
type TemplateInterface interface {
	CreateTemplate(ctx context.Context, t entities.PersonalTemplate, limit int) (*entities.PersonalTemplate, error)
	GetTemplate(ctx context.Context, templateID int64) (*entities.PersonalTemplate, error)
	ListTemplates(ctx context.Context, ownerID string) ([]entities.PersonalTemplate, error)
	DeleteTemplate(ctx context.Context, templateID int64) error
}

// CRMInterface exposes company, lead and outreach template operations.
type CRMInterface interface {
	CreateCompany(ctx context.Context, c entities.Company) (*entities.Company, error)
	ListCompanies(ctx context.Context) ([]entities.Company, error)
	CreateLead(ctx context.Context, l entities.Lead) (*entities.Lead, error)
	GetLead(ctx context.Context, leadID int64) (*entities.Lead, error)
	ListLeads(ctx context.Context, filter entities.LeadFilter) ([]entities.Lead, error)
	UpdateLeadStatus(ctx context.Context, leadID int64, status entities.LeadStatus, note string) (*entities.Lead, error)
	Unsubscribe(ctx context.Context, token string) (*entities.Lead, error)
	CampaignAudience(ctx context.Context, filter entities.LeadFilter, contactedBefore time.Time) ([]entities.Lead, error)
	MarkContacted(ctx context.Context, leadID int64, at time.Time) error
	CreateEmailTemplate(ctx context.Context, t entities.EmailTemplate) (*entities.EmailTemplate, error)
	GetEmailTemplate(ctx context.Context, templateID int64) (*entities.EmailTemplate, error)
	ListEmailTemplates(ctx context.Context) ([]entities.EmailTemplate, error)
}
