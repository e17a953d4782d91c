// Package dto holds JSON request and response bodies of the HTTP API.
package dto

import "time"

// ErrorCode is a machine readable error kind.
type ErrorCode string

const (
	CodeInvalidArgument   ErrorCode = "INVALID_ARGUMENT"
	CodeUnauthorized      ErrorCode = "UNAUTHORIZED"
	CodeForbidden         ErrorCode = "FORBIDDEN"
	CodeNotFound          ErrorCode = "NOT_FOUND"
	CodeConflict          ErrorCode = "CONFLICT"
	CodeTierLimit         ErrorCode = "TIER_LIMIT"
	CodeNoSeats           ErrorCode = "NO_SEATS"
	CodeGroupInactive     ErrorCode = "GROUP_INACTIVE"
	CodeInvitationClosed  ErrorCode = "INVITATION_CLOSED"
	CodeInvalidTransition ErrorCode = "INVALID_TRANSITION"
	CodeTrialUnavailable  ErrorCode = "TRIAL_UNAVAILABLE"
	CodeRateLimited       ErrorCode = "RATE_LIMITED"
	CodeInternal          ErrorCode = "INTERNAL"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody describes the failure.
type ErrorBody struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// Error builds an ErrorResponse.
func Error(code ErrorCode, msg string) ErrorResponse {
	return ErrorResponse{Error: ErrorBody{Code: code, Message: msg}}
}

type User struct {
	UserID        string     `json:"user_id"`
	Email         string     `json:"email"`
	Username      string     `json:"username"`
	Tier          string     `json:"tier"`
	TierSource    string     `json:"tier_source"`
	TrialUsed     bool       `json:"trial_used"`
	TrialEndsAt   *time.Time `json:"trial_ends_at,omitempty"`
	EmailVerified bool       `json:"email_verified"`
	IsStaff       bool       `json:"is_staff"`
	CreatedAt     time.Time  `json:"created_at"`
}

type Project struct {
	ID        int64     `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Title     string    `json:"title"`
	GroupID   *int64    `json:"group_id,omitempty"`
	Archived  bool      `json:"archived"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Header struct {
	ID    int64  `json:"id"`
	Kind  string `json:"kind"`
	Title string `json:"title"`
	Order int    `json:"order"`
}

type Task struct {
	ID        int64     `json:"id"`
	ProjectID int64     `json:"project_id"`
	RowID     int64     `json:"row_id"`
	ColumnID  int64     `json:"column_id"`
	Text      string    `json:"text"`
	Done      bool      `json:"done"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"created_at"`
}

type Grid struct {
	Project Project  `json:"project"`
	Rows    []Header `json:"rows"`
	Columns []Header `json:"columns"`
	Tasks   []Task   `json:"tasks"`
}

type Template struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Rows      []string  `json:"rows"`
	Columns   []string  `json:"columns"`
	CreatedAt time.Time `json:"created_at"`
}

type Member struct {
	UserID   string    `json:"user_id"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
	JoinedAt time.Time `json:"joined_at"`
}

type Invitation struct {
	ID        int64     `json:"id"`
	GroupID   int64     `json:"group_id"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

type SeatUsage struct {
	Seats     int `json:"seats"`
	Members   int `json:"members"`
	Pending   int `json:"pending"`
	Available int `json:"available"`
}

type Group struct {
	ID          int64        `json:"id"`
	OwnerID     string       `json:"owner_id"`
	Name        string       `json:"name"`
	Active      bool         `json:"active"`
	Usage       SeatUsage    `json:"usage"`
	Members     []Member     `json:"members"`
	Invitations []Invitation `json:"invitations"`
}

type Downgrade struct {
	UsersDowngraded    int `json:"users_downgraded"`
	ProjectsUnshared   int `json:"projects_unshared"`
	ProjectsArchived   int `json:"projects_archived"`
	GroupsDeactivated  int `json:"groups_deactivated"`
	InvitationsRevoked int `json:"invitations_revoked"`
	MembersRemoved     int `json:"members_removed"`
}

type Company struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	Website   string    `json:"website,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Lead struct {
	ID              int64      `json:"id"`
	CompanyID       *int64     `json:"company_id,omitempty"`
	CompanyName     string     `json:"company_name,omitempty"`
	Kind            string     `json:"kind"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Status          string     `json:"status"`
	Notes           string     `json:"notes,omitempty"`
	FollowUps       int        `json:"follow_ups"`
	LastContactedAt *time.Time `json:"last_contacted_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

type EmailTemplate struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

type CampaignResult struct {
	Selected int `json:"selected"`
	Sent     int `json:"sent"`
	Failed   int `json:"failed"`
	Skipped  int `json:"skipped"`
}
