package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/RoyKeane94/toad/internal/entities"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type accountsMock struct{ mock.Mock }

func (m *accountsMock) Me(ctx context.Context, userID string) (*entities.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *accountsMock) UserByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *accountsMock) CreateUser(ctx context.Context, email, username string, staff bool) (*entities.User, error) {
	args := m.Called(ctx, email, username, staff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *accountsMock) VerifyEmail(ctx context.Context, token string) (*entities.User, error) {
	panic("not used")
}

func (m *accountsMock) StartTrial(ctx context.Context, userID string, tier entities.Tier) (*entities.User, error) {
	panic("not used")
}

func (m *accountsMock) ChangeTier(ctx context.Context, userID string, tier entities.Tier, source entities.TierSource) (*entities.User, entities.DowngradeReport, error) {
	panic("not used")
}

func (m *accountsMock) ExpireTrials(ctx context.Context) (int, entities.DowngradeReport, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Get(1).(entities.DowngradeReport), args.Error(2)
}

type crmMock struct{ mock.Mock }

func (m *crmMock) CreateCompany(context.Context, entities.Company) (*entities.Company, error) {
	panic("not used")
}
func (m *crmMock) ListCompanies(context.Context) ([]entities.Company, error) { panic("not used") }
func (m *crmMock) CreateLead(context.Context, entities.Lead) (*entities.Lead, error) {
	panic("not used")
}
func (m *crmMock) ListLeads(context.Context, entities.LeadFilter) ([]entities.Lead, error) {
	panic("not used")
}
func (m *crmMock) UpdateLeadStatus(context.Context, int64, entities.LeadStatus, string) (*entities.Lead, error) {
	panic("not used")
}
func (m *crmMock) Unsubscribe(context.Context, string) (*entities.Lead, error) { panic("not used") }
func (m *crmMock) CreateEmailTemplate(context.Context, entities.EmailTemplate) (*entities.EmailTemplate, error) {
	panic("not used")
}
func (m *crmMock) ListEmailTemplates(context.Context) ([]entities.EmailTemplate, error) {
	panic("not used")
}

func (m *crmMock) ExportLeads(ctx context.Context, filter entities.LeadFilter, w io.Writer) (int, error) {
	args := m.Called(ctx, filter, w)
	_, _ = w.Write([]byte("PK"))
	return args.Int(0), args.Error(1)
}

type campaignsMock struct{ mock.Mock }

func (m *campaignsMock) SendCampaign(ctx context.Context, opts entities.CampaignOptions) (entities.CampaignResult, error) {
	args := m.Called(ctx, opts)
	return args.Get(0).(entities.CampaignResult), args.Error(1)
}

type issuerMock struct{ mock.Mock }

func (m *issuerMock) Issue(userID string, staff bool) (string, error) {
	args := m.Called(userID, staff)
	return args.String(0), args.Error(1)
}

func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestUsersCreate(t *testing.T) {
	accounts := &accountsMock{}
	accounts.On("CreateUser", mock.Anything, "ann@example.com", "ann", true).
		Return(&entities.User{ID: "u1", Email: "ann@example.com"}, nil)

	out, err := executeCmd(t, &App{Accounts: accounts}, "users", "create", "--email", "ann@example.com", "--username", "ann", "--staff")
	require.NoError(t, err)
	require.Contains(t, out, "created user u1")
}

func TestUsersCreateRequiresFlags(t *testing.T) {
	_, err := executeCmd(t, &App{Accounts: &accountsMock{}}, "users", "create", "--email", "ann@example.com")
	require.Error(t, err)
}

func TestUsersShow(t *testing.T) {
	accounts := &accountsMock{}
	accounts.On("UserByEmail", mock.Anything, "ann@example.com").
		Return(&entities.User{ID: "u1", Email: "ann@example.com", Tier: entities.TierPro, TierSource: entities.SourceGroup}, nil)

	out, err := executeCmd(t, &App{Accounts: accounts}, "users", "show", "--email", "ann@example.com")
	require.NoError(t, err)
	require.Contains(t, out, "tier:     pro (group)")
}

func TestToken(t *testing.T) {
	accounts := &accountsMock{}
	accounts.On("Me", mock.Anything, "u1").Return(&entities.User{ID: "u1", IsStaff: true}, nil)
	issuer := &issuerMock{}
	issuer.On("Issue", "u1", true).Return("jwt-token", nil)

	out, err := executeCmd(t, &App{Accounts: accounts, Tokens: issuer}, "token", "--user", "u1")
	require.NoError(t, err)
	require.Equal(t, "jwt-token\n", out)
}

func TestTrialsExpire(t *testing.T) {
	accounts := &accountsMock{}
	accounts.On("ExpireTrials", mock.Anything).Return(2, entities.DowngradeReport{ProjectsArchived: 5}, nil)

	out, err := executeCmd(t, &App{Accounts: accounts}, "trials", "expire")
	require.NoError(t, err)
	require.Contains(t, out, "expired 2 trials: 5 projects archived")
}

func TestCampaignSendDryRun(t *testing.T) {
	campaigns := &campaignsMock{}
	campaigns.On("SendCampaign", mock.Anything, mock.MatchedBy(func(o entities.CampaignOptions) bool {
		return o.TemplateID == 3 && o.DryRun && o.Filter.Kind != nil && *o.Filter.Kind == entities.KindB2B && o.Filter.Limit == 20
	})).Return(entities.CampaignResult{Selected: 20, Skipped: 20}, nil)

	out, err := executeCmd(t, &App{Campaigns: campaigns}, "campaign", "send", "--template", "3", "--kind", "b2b", "--limit", "20", "--dry-run")
	require.NoError(t, err)
	require.Contains(t, out, "dry run: selected=20 sent=0 failed=0 skipped=20")
}

func TestLeadsExport(t *testing.T) {
	crm := &crmMock{}
	crm.On("ExportLeads", mock.Anything, entities.LeadFilter{}, mock.Anything).Return(4, nil)
	path := filepath.Join(t.TempDir(), "out.xlsx")

	out, err := executeCmd(t, &App{CRM: crm}, "leads", "export", "--out", path)
	require.NoError(t, err)
	require.Contains(t, out, "exported 4 leads")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "PK", string(data))
}
