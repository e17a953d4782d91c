package handlers_fiber

import (
	"context"
	"io"

	"github.com/RoyKeane94/toad/internal/entities"
	"github.com/RoyKeane94/toad/internal/usecase"

	"github.com/stretchr/testify/mock"
)

type ucMock struct{ mock.Mock }

var _ usecase.InterfaceUsecase = (*ucMock)(nil)

func get[T any](args mock.Arguments, i int) T {
	var zero T
	if v := args.Get(i); v != nil {
		return v.(T)
	}
	return zero
}

func (m *ucMock) Me(ctx context.Context, userID string) (*entities.User, error) {
	args := m.Called(ctx, userID)
	return get[*entities.User](args, 0), args.Error(1)
}

func (m *ucMock) UserByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	return get[*entities.User](args, 0), args.Error(1)
}

func (m *ucMock) CreateUser(ctx context.Context, email, username string, staff bool) (*entities.User, error) {
	args := m.Called(ctx, email, username, staff)
	return get[*entities.User](args, 0), args.Error(1)
}

func (m *ucMock) VerifyEmail(ctx context.Context, token string) (*entities.User, error) {
	args := m.Called(ctx, token)
	return get[*entities.User](args, 0), args.Error(1)
}

func (m *ucMock) StartTrial(ctx context.Context, userID string, tier entities.Tier) (*entities.User, error) {
	args := m.Called(ctx, userID, tier)
	return get[*entities.User](args, 0), args.Error(1)
}

func (m *ucMock) ChangeTier(ctx context.Context, userID string, tier entities.Tier, source entities.TierSource) (*entities.User, entities.DowngradeReport, error) {
	args := m.Called(ctx, userID, tier, source)
	return get[*entities.User](args, 0), get[entities.DowngradeReport](args, 1), args.Error(2)
}

func (m *ucMock) ExpireTrials(ctx context.Context) (int, entities.DowngradeReport, error) {
	args := m.Called(ctx)
	return args.Int(0), get[entities.DowngradeReport](args, 1), args.Error(2)
}

func (m *ucMock) CreateGroup(ctx context.Context, ownerID, name string, seats int, subscriptionID string) (*entities.GroupDetails, error) {
	args := m.Called(ctx, ownerID, name, seats, subscriptionID)
	return get[*entities.GroupDetails](args, 0), args.Error(1)
}

func (m *ucMock) Group(ctx context.Context, actorID string, groupID int64) (*entities.GroupDetails, error) {
	args := m.Called(ctx, actorID, groupID)
	return get[*entities.GroupDetails](args, 0), args.Error(1)
}

func (m *ucMock) Invite(ctx context.Context, groupID int64, actorID, email string) (*entities.TeamInvitation, error) {
	args := m.Called(ctx, groupID, actorID, email)
	return get[*entities.TeamInvitation](args, 0), args.Error(1)
}

func (m *ucMock) AcceptInvitation(ctx context.Context, token, userID string) (*entities.GroupDetails, error) {
	args := m.Called(ctx, token, userID)
	return get[*entities.GroupDetails](args, 0), args.Error(1)
}

func (m *ucMock) DeclineInvitation(ctx context.Context, token, userID string) error {
	return m.Called(ctx, token, userID).Error(0)
}

func (m *ucMock) RevokeInvitation(ctx context.Context, groupID int64, actorID string, invitationID int64) error {
	return m.Called(ctx, groupID, actorID, invitationID).Error(0)
}

func (m *ucMock) RemoveMember(ctx context.Context, groupID int64, actorID, userID string) (entities.DowngradeReport, error) {
	args := m.Called(ctx, groupID, actorID, userID)
	return get[entities.DowngradeReport](args, 0), args.Error(1)
}

func (m *ucMock) SetSeats(ctx context.Context, groupID int64, seats int) (entities.DowngradeReport, error) {
	args := m.Called(ctx, groupID, seats)
	return get[entities.DowngradeReport](args, 0), args.Error(1)
}

func (m *ucMock) CreateProject(ctx context.Context, userID, title string, rows, columns []string) (*entities.Grid, error) {
	args := m.Called(ctx, userID, title, rows, columns)
	return get[*entities.Grid](args, 0), args.Error(1)
}

func (m *ucMock) ListProjects(ctx context.Context, userID string, includeArchived bool) ([]entities.Project, error) {
	args := m.Called(ctx, userID, includeArchived)
	return get[[]entities.Project](args, 0), args.Error(1)
}

func (m *ucMock) Grid(ctx context.Context, userID string, projectID int64) (*entities.Grid, error) {
	args := m.Called(ctx, userID, projectID)
	return get[*entities.Grid](args, 0), args.Error(1)
}

func (m *ucMock) RenameProject(ctx context.Context, userID string, projectID int64, title string) (*entities.Project, error) {
	args := m.Called(ctx, userID, projectID, title)
	return get[*entities.Project](args, 0), args.Error(1)
}

func (m *ucMock) ArchiveProject(ctx context.Context, userID string, projectID int64, archived bool) (*entities.Project, error) {
	args := m.Called(ctx, userID, projectID, archived)
	return get[*entities.Project](args, 0), args.Error(1)
}

func (m *ucMock) DeleteProject(ctx context.Context, userID string, projectID int64) error {
	return m.Called(ctx, userID, projectID).Error(0)
}

func (m *ucMock) ShareProject(ctx context.Context, userID string, projectID int64) (*entities.Project, error) {
	args := m.Called(ctx, userID, projectID)
	return get[*entities.Project](args, 0), args.Error(1)
}

func (m *ucMock) UnshareProject(ctx context.Context, userID string, projectID int64) (*entities.Project, error) {
	args := m.Called(ctx, userID, projectID)
	return get[*entities.Project](args, 0), args.Error(1)
}

func (m *ucMock) AddHeader(ctx context.Context, userID string, projectID int64, kind entities.HeaderKind, title string) (*entities.Header, error) {
	args := m.Called(ctx, userID, projectID, kind, title)
	return get[*entities.Header](args, 0), args.Error(1)
}

func (m *ucMock) RenameHeader(ctx context.Context, userID string, headerID int64, title string) (*entities.Header, error) {
	args := m.Called(ctx, userID, headerID, title)
	return get[*entities.Header](args, 0), args.Error(1)
}

func (m *ucMock) MoveHeader(ctx context.Context, userID string, headerID int64, index int) ([]entities.Header, error) {
	args := m.Called(ctx, userID, headerID, index)
	return get[[]entities.Header](args, 0), args.Error(1)
}

func (m *ucMock) DeleteHeader(ctx context.Context, userID string, headerID int64) error {
	return m.Called(ctx, userID, headerID).Error(0)
}

func (m *ucMock) AddTask(ctx context.Context, userID string, task entities.Task) (*entities.Task, error) {
	args := m.Called(ctx, userID, task)
	return get[*entities.Task](args, 0), args.Error(1)
}

func (m *ucMock) UpdateTask(ctx context.Context, userID string, taskID int64, text *string, done *bool) (*entities.Task, error) {
	args := m.Called(ctx, userID, taskID, text, done)
	return get[*entities.Task](args, 0), args.Error(1)
}

func (m *ucMock) MoveTask(ctx context.Context, userID string, taskID, rowID, columnID int64, index int) (*entities.Task, error) {
	args := m.Called(ctx, userID, taskID, rowID, columnID, index)
	return get[*entities.Task](args, 0), args.Error(1)
}

func (m *ucMock) DeleteTask(ctx context.Context, userID string, taskID int64) error {
	return m.Called(ctx, userID, taskID).Error(0)
}

func (m *ucMock) ClearCompleted(ctx context.Context, userID string, projectID int64) (int, error) {
	args := m.Called(ctx, userID, projectID)
	return args.Int(0), args.Error(1)
}

func (m *ucMock) SaveTemplate(ctx context.Context, userID string, projectID int64, name string) (*entities.PersonalTemplate, error) {
	args := m.Called(ctx, userID, projectID, name)
	return get[*entities.PersonalTemplate](args, 0), args.Error(1)
}

func (m *ucMock) ListTemplates(ctx context.Context, userID string) ([]entities.PersonalTemplate, error) {
	args := m.Called(ctx, userID)
	return get[[]entities.PersonalTemplate](args, 0), args.Error(1)
}

func (m *ucMock) DeleteTemplate(ctx context.Context, userID string, templateID int64) error {
	return m.Called(ctx, userID, templateID).Error(0)
}

func (m *ucMock) InstantiateTemplate(ctx context.Context, userID string, templateID int64, title string) (*entities.Grid, error) {
	args := m.Called(ctx, userID, templateID, title)
	return get[*entities.Grid](args, 0), args.Error(1)
}

func (m *ucMock) CloneProject(ctx context.Context, userID string, projectID int64, mode entities.CloneMode, title string) (*entities.Grid, error) {
	args := m.Called(ctx, userID, projectID, mode, title)
	return get[*entities.Grid](args, 0), args.Error(1)
}

func (m *ucMock) ProcessWebhook(ctx context.Context, payload []byte, signature string) error {
	return m.Called(ctx, payload, signature).Error(0)
}

func (m *ucMock) CreateCompany(ctx context.Context, c entities.Company) (*entities.Company, error) {
	args := m.Called(ctx, c)
	return get[*entities.Company](args, 0), args.Error(1)
}

func (m *ucMock) ListCompanies(ctx context.Context) ([]entities.Company, error) {
	args := m.Called(ctx)
	return get[[]entities.Company](args, 0), args.Error(1)
}

func (m *ucMock) CreateLead(ctx context.Context, l entities.Lead) (*entities.Lead, error) {
	args := m.Called(ctx, l)
	return get[*entities.Lead](args, 0), args.Error(1)
}

func (m *ucMock) ListLeads(ctx context.Context, filter entities.LeadFilter) ([]entities.Lead, error) {
	args := m.Called(ctx, filter)
	return get[[]entities.Lead](args, 0), args.Error(1)
}

func (m *ucMock) UpdateLeadStatus(ctx context.Context, leadID int64, status entities.LeadStatus, note string) (*entities.Lead, error) {
	args := m.Called(ctx, leadID, status, note)
	return get[*entities.Lead](args, 0), args.Error(1)
}

func (m *ucMock) Unsubscribe(ctx context.Context, token string) (*entities.Lead, error) {
	args := m.Called(ctx, token)
	return get[*entities.Lead](args, 0), args.Error(1)
}

func (m *ucMock) CreateEmailTemplate(ctx context.Context, t entities.EmailTemplate) (*entities.EmailTemplate, error) {
	args := m.Called(ctx, t)
	return get[*entities.EmailTemplate](args, 0), args.Error(1)
}

func (m *ucMock) ListEmailTemplates(ctx context.Context) ([]entities.EmailTemplate, error) {
	args := m.Called(ctx)
	return get[[]entities.EmailTemplate](args, 0), args.Error(1)
}

func (m *ucMock) ExportLeads(ctx context.Context, filter entities.LeadFilter, w io.Writer) (int, error) {
	args := m.Called(ctx, filter, w)
	if err := args.Error(1); err != nil {
		return 0, err
	}
	_, _ = w.Write([]byte("xlsx"))
	return args.Int(0), nil
}

func (m *ucMock) SendCampaign(ctx context.Context, opts entities.CampaignOptions) (entities.CampaignResult, error) {
	args := m.Called(ctx, opts)
	return get[entities.CampaignResult](args, 0), args.Error(1)
}
