package dto

type VerifyRequest struct {
	Token string `json:"token"`
}

type TrialRequest struct {
	Tier string `json:"tier"`
}

type CreateProjectRequest struct {
	Title   string   `json:"title"`
	Rows    []string `json:"rows"`
	Columns []string `json:"columns"`
}

type TitleRequest struct {
	Title string `json:"title"`
}

type ArchiveRequest struct {
	Archived *bool `json:"archived"`
}

type CloneRequest struct {
	Mode  string `json:"mode"`
	Title string `json:"title"`
}

type SaveTemplateRequest struct {
	Name string `json:"name"`
}

type HeaderRequest struct {
	Kind  string `json:"kind"`
	Title string `json:"title"`
}

type MoveHeaderRequest struct {
	Index int `json:"index"`
}

type TaskRequest struct {
	RowID    int64  `json:"row_id"`
	ColumnID int64  `json:"column_id"`
	Text     string `json:"text"`
}

type UpdateTaskRequest struct {
	Text *string `json:"text"`
	Done *bool   `json:"done"`
}

type MoveTaskRequest struct {
	RowID    int64 `json:"row_id"`
	ColumnID int64 `json:"column_id"`
	Index    int   `json:"index"`
}

type CreateGroupRequest struct {
	OwnerID        string `json:"owner_id"`
	Name           string `json:"name"`
	Seats          int    `json:"seats"`
	SubscriptionID string `json:"subscription_id"`
}

type SeatsRequest struct {
	Seats int `json:"seats"`
}

type InviteRequest struct {
	Email string `json:"email"`
}

type CompanyRequest struct {
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Website string `json:"website"`
}

type LeadRequest struct {
	CompanyID *int64 `json:"company_id"`
	Kind      string `json:"kind"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Notes     string `json:"notes"`
}

type LeadStatusRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

type EmailTemplateRequest struct {
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type CampaignRequest struct {
	TemplateID int64  `json:"template_id"`
	Kind       string `json:"kind"`
	Status     string `json:"status"`
	CompanyID  *int64 `json:"company_id"`
	Limit      int    `json:"limit"`
	DryRun     bool   `json:"dry_run"`
}
