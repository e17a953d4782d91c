package domain

import (
	"context"
	"time"

	"github.com/RoyKeane94/toad/internal/billing"
	"github.com/RoyKeane94/toad/internal/entities"
	"github.com/RoyKeane94/toad/internal/mailer"
	"github.com/RoyKeane94/toad/internal/repository"

	"github.com/stretchr/testify/mock"
)

type repoMock struct{ mock.Mock }

var _ repository.Repository = (*repoMock)(nil)

func (m *repoMock) OnStart(_ context.Context) error { return nil }
func (m *repoMock) OnStop(_ context.Context) error  { return nil }

func (m *repoMock) user(args mock.Arguments) (*entities.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *repoMock) CreateUser(ctx context.Context, u entities.User) (*entities.User, error) {
	return m.user(m.Called(ctx, u))
}

func (m *repoMock) GetUser(ctx context.Context, userID string) (*entities.User, error) {
	return m.user(m.Called(ctx, userID))
}

func (m *repoMock) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	return m.user(m.Called(ctx, email))
}

func (m *repoMock) GetUserByCustomer(ctx context.Context, customerID string) (*entities.User, error) {
	return m.user(m.Called(ctx, customerID))
}

func (m *repoMock) VerifyEmail(ctx context.Context, token string) (*entities.User, error) {
	return m.user(m.Called(ctx, token))
}

func (m *repoMock) StartTrial(ctx context.Context, userID string, tier entities.Tier, now, endsAt time.Time) (*entities.User, error) {
	return m.user(m.Called(ctx, userID, tier, now, endsAt))
}

func (m *repoMock) SetStripeCustomer(ctx context.Context, userID, customerID string) error {
	return m.Called(ctx, userID, customerID).Error(0)
}

func (m *repoMock) ChangeTier(ctx context.Context, userID string, tier entities.Tier, source entities.TierSource) (*entities.User, entities.DowngradeReport, error) {
	args := m.Called(ctx, userID, tier, source)
	var u *entities.User
	if args.Get(0) != nil {
		u = args.Get(0).(*entities.User)
	}
	return u, args.Get(1).(entities.DowngradeReport), args.Error(2)
}

func (m *repoMock) ListExpiredTrials(ctx context.Context, now time.Time) ([]entities.User, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.User), args.Error(1)
}

func (m *repoMock) details(args mock.Arguments) (*entities.GroupDetails, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.GroupDetails), args.Error(1)
}

func (m *repoMock) group(args mock.Arguments) (*entities.SubscriptionGroup, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SubscriptionGroup), args.Error(1)
}

func (m *repoMock) report(args mock.Arguments) (entities.DowngradeReport, error) {
	if args.Get(0) == nil {
		return entities.DowngradeReport{}, args.Error(1)
	}
	return args.Get(0).(entities.DowngradeReport), args.Error(1)
}

func (m *repoMock) CreateGroup(ctx context.Context, g entities.SubscriptionGroup) (*entities.GroupDetails, error) {
	return m.details(m.Called(ctx, g))
}

func (m *repoMock) GetGroup(ctx context.Context, groupID int64) (*entities.GroupDetails, error) {
	return m.details(m.Called(ctx, groupID))
}

func (m *repoMock) GetGroupBySubscription(ctx context.Context, subscriptionID string) (*entities.SubscriptionGroup, error) {
	return m.group(m.Called(ctx, subscriptionID))
}

func (m *repoMock) GroupForUser(ctx context.Context, userID string) (*entities.SubscriptionGroup, error) {
	return m.group(m.Called(ctx, userID))
}

func (m *repoMock) CreateInvitation(ctx context.Context, inv entities.TeamInvitation, now time.Time) (*entities.TeamInvitation, error) {
	args := m.Called(ctx, inv, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.TeamInvitation), args.Error(1)
}

func (m *repoMock) AcceptInvitation(ctx context.Context, token, userID string, now time.Time) (*entities.GroupDetails, error) {
	return m.details(m.Called(ctx, token, userID, now))
}

func (m *repoMock) DeclineInvitation(ctx context.Context, token, userID string) error {
	return m.Called(ctx, token, userID).Error(0)
}

func (m *repoMock) RevokeInvitation(ctx context.Context, groupID, invitationID int64) error {
	return m.Called(ctx, groupID, invitationID).Error(0)
}

func (m *repoMock) RemoveMember(ctx context.Context, groupID int64, userID string) (entities.DowngradeReport, error) {
	return m.report(m.Called(ctx, groupID, userID))
}

func (m *repoMock) SetSeats(ctx context.Context, groupID int64, seats int, now time.Time) (entities.DowngradeReport, error) {
	return m.report(m.Called(ctx, groupID, seats, now))
}

func (m *repoMock) DeactivateGroup(ctx context.Context, groupID int64) (entities.DowngradeReport, error) {
	return m.report(m.Called(ctx, groupID))
}

func (m *repoMock) grid(args mock.Arguments) (*entities.Grid, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Grid), args.Error(1)
}

func (m *repoMock) project(args mock.Arguments) (*entities.Project, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Project), args.Error(1)
}

func (m *repoMock) header(args mock.Arguments) (*entities.Header, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Header), args.Error(1)
}

func (m *repoMock) task(args mock.Arguments) (*entities.Task, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Task), args.Error(1)
}

func (m *repoMock) CreateProject(ctx context.Context, p entities.Project, rows, columns []string, limit int) (*entities.Grid, error) {
	return m.grid(m.Called(ctx, p, rows, columns, limit))
}

func (m *repoMock) GetProject(ctx context.Context, projectID int64) (*entities.Project, error) {
	return m.project(m.Called(ctx, projectID))
}

func (m *repoMock) GetGrid(ctx context.Context, projectID int64) (*entities.Grid, error) {
	return m.grid(m.Called(ctx, projectID))
}

func (m *repoMock) ListProjects(ctx context.Context, userID string, groupID *int64, includeArchived bool) ([]entities.Project, error) {
	args := m.Called(ctx, userID, groupID, includeArchived)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Project), args.Error(1)
}

func (m *repoMock) RenameProject(ctx context.Context, projectID int64, title string) (*entities.Project, error) {
	return m.project(m.Called(ctx, projectID, title))
}

func (m *repoMock) SetArchived(ctx context.Context, projectID int64, archived bool, limit int) (*entities.Project, error) {
	return m.project(m.Called(ctx, projectID, archived, limit))
}

func (m *repoMock) SetProjectGroup(ctx context.Context, projectID int64, groupID *int64) (*entities.Project, error) {
	return m.project(m.Called(ctx, projectID, groupID))
}

func (m *repoMock) DeleteProject(ctx context.Context, projectID int64) error {
	return m.Called(ctx, projectID).Error(0)
}

func (m *repoMock) CloneProject(ctx context.Context, srcID int64, ownerID, title string, mode entities.CloneMode, limit int) (*entities.Grid, error) {
	return m.grid(m.Called(ctx, srcID, ownerID, title, mode, limit))
}

func (m *repoMock) AddHeader(ctx context.Context, projectID int64, kind entities.HeaderKind, title string) (*entities.Header, error) {
	return m.header(m.Called(ctx, projectID, kind, title))
}

func (m *repoMock) GetHeader(ctx context.Context, headerID int64) (*entities.Header, error) {
	return m.header(m.Called(ctx, headerID))
}

func (m *repoMock) RenameHeader(ctx context.Context, headerID int64, title string) (*entities.Header, error) {
	return m.header(m.Called(ctx, headerID, title))
}

func (m *repoMock) MoveHeader(ctx context.Context, headerID int64, index int) ([]entities.Header, error) {
	args := m.Called(ctx, headerID, index)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Header), args.Error(1)
}

func (m *repoMock) DeleteHeader(ctx context.Context, headerID int64) error {
	return m.Called(ctx, headerID).Error(0)
}

func (m *repoMock) AddTask(ctx context.Context, t entities.Task) (*entities.Task, error) {
	return m.task(m.Called(ctx, t))
}

func (m *repoMock) GetTask(ctx context.Context, taskID int64) (*entities.Task, error) {
	return m.task(m.Called(ctx, taskID))
}

func (m *repoMock) UpdateTask(ctx context.Context, taskID int64, text *string, done *bool) (*entities.Task, error) {
	return m.task(m.Called(ctx, taskID, text, done))
}

func (m *repoMock) MoveTask(ctx context.Context, taskID, rowID, columnID int64, index int) (*entities.Task, error) {
	return m.task(m.Called(ctx, taskID, rowID, columnID, index))
}

func (m *repoMock) DeleteTask(ctx context.Context, taskID int64) error {
	return m.Called(ctx, taskID).Error(0)
}

func (m *repoMock) ClearCompleted(ctx context.Context, projectID int64) (int, error) {
	args := m.Called(ctx, projectID)
	return args.Int(0), args.Error(1)
}

func (m *repoMock) template(args mock.Arguments) (*entities.PersonalTemplate, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PersonalTemplate), args.Error(1)
}

func (m *repoMock) CreateTemplate(ctx context.Context, t entities.PersonalTemplate, limit int) (*entities.PersonalTemplate, error) {
	return m.template(m.Called(ctx, t, limit))
}

func (m *repoMock) GetTemplate(ctx context.Context, templateID int64) (*entities.PersonalTemplate, error) {
	return m.template(m.Called(ctx, templateID))
}

func (m *repoMock) ListTemplates(ctx context.Context, ownerID string) ([]entities.PersonalTemplate, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.PersonalTemplate), args.Error(1)
}

func (m *repoMock) DeleteTemplate(ctx context.Context, templateID int64) error {
	return m.Called(ctx, templateID).Error(0)
}

func (m *repoMock) lead(args mock.Arguments) (*entities.Lead, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Lead), args.Error(1)
}

func (m *repoMock) leads(args mock.Arguments) ([]entities.Lead, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Lead), args.Error(1)
}

func (m *repoMock) CreateCompany(ctx context.Context, c entities.Company) (*entities.Company, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Company), args.Error(1)
}

func (m *repoMock) ListCompanies(ctx context.Context) ([]entities.Company, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Company), args.Error(1)
}

func (m *repoMock) CreateLead(ctx context.Context, l entities.Lead) (*entities.Lead, error) {
	return m.lead(m.Called(ctx, l))
}

func (m *repoMock) GetLead(ctx context.Context, leadID int64) (*entities.Lead, error) {
	return m.lead(m.Called(ctx, leadID))
}

func (m *repoMock) ListLeads(ctx context.Context, filter entities.LeadFilter) ([]entities.Lead, error) {
	return m.leads(m.Called(ctx, filter))
}

func (m *repoMock) UpdateLeadStatus(ctx context.Context, leadID int64, status entities.LeadStatus, note string) (*entities.Lead, error) {
	return m.lead(m.Called(ctx, leadID, status, note))
}

func (m *repoMock) Unsubscribe(ctx context.Context, token string) (*entities.Lead, error) {
	return m.lead(m.Called(ctx, token))
}

func (m *repoMock) CampaignAudience(ctx context.Context, filter entities.LeadFilter, contactedBefore time.Time) ([]entities.Lead, error) {
	return m.leads(m.Called(ctx, filter, contactedBefore))
}

func (m *repoMock) MarkContacted(ctx context.Context, leadID int64, at time.Time) error {
	return m.Called(ctx, leadID, at).Error(0)
}

func (m *repoMock) CreateEmailTemplate(ctx context.Context, t entities.EmailTemplate) (*entities.EmailTemplate, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.EmailTemplate), args.Error(1)
}

func (m *repoMock) GetEmailTemplate(ctx context.Context, templateID int64) (*entities.EmailTemplate, error) {
	args := m.Called(ctx, templateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.EmailTemplate), args.Error(1)
}

func (m *repoMock) ListEmailTemplates(ctx context.Context) ([]entities.EmailTemplate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.EmailTemplate), args.Error(1)
}

type mailMock struct{ mock.Mock }

func (m *mailMock) Enqueue(msg mailer.Message) error {
	return m.Called(msg).Error(0)
}

type senderMock struct{ mock.Mock }

func (m *senderMock) Send(ctx context.Context, msg mailer.Message) error {
	return m.Called(ctx, msg).Error(0)
}

type verifierMock struct{ mock.Mock }

func (m *verifierMock) Verify(payload []byte, signature string) (billing.Event, error) {
	args := m.Called(payload, signature)
	return args.Get(0).(billing.Event), args.Error(1)
}

type eventsMock struct{ mock.Mock }

func (m *eventsMock) ClaimEvent(ctx context.Context, eventID string) (bool, error) {
	args := m.Called(ctx, eventID)
	return args.Bool(0), args.Error(1)
}

func (m *eventsMock) ReleaseEvent(ctx context.Context, eventID string) error {
	return m.Called(ctx, eventID).Error(0)
}
