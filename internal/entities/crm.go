// Package entities contains core business entities.
package entities

import (
	"strings"
	"time"
)

// LeadKind separates society outreach from B2B outreach.
type LeadKind string

const (
	KindSociety LeadKind = "society"
	KindB2B     LeadKind = "b2b"
)

// Valid reports whether k is a known lead kind.
func (k LeadKind) Valid() bool {
	return k == KindSociety || k == KindB2B
}

// LeadStatus is the position of a lead in the outreach pipeline.
type LeadStatus string

const (
	LeadNew          LeadStatus = "new"
	LeadContacted    LeadStatus = "contacted"
	LeadReplied      LeadStatus = "replied"
	LeadMeeting      LeadStatus = "meeting"
	LeadWon          LeadStatus = "won"
	LeadLost         LeadStatus = "lost"
	LeadUnsubscribed LeadStatus = "unsubscribed"
)

var leadTransitions = map[LeadStatus][]LeadStatus{
	LeadNew:       {LeadContacted},
	LeadContacted: {LeadContacted, LeadReplied, LeadLost},
	LeadReplied:   {LeadMeeting, LeadWon, LeadLost},
	LeadMeeting:   {LeadWon, LeadLost},
	LeadLost:      {LeadContacted},
}

// Valid reports whether s is a known status.
func (s LeadStatus) Valid() bool {
	switch s {
	case LeadNew, LeadContacted, LeadReplied, LeadMeeting, LeadWon, LeadLost, LeadUnsubscribed:
		return true
	}
	return false
}

// Terminal reports whether no campaign may touch a lead in status s.
func (s LeadStatus) Terminal() bool {
	return s == LeadWon || s == LeadLost || s == LeadUnsubscribed
}

// CanTransition reports whether the pipeline allows moving from one status to another.
func CanTransition(from, to LeadStatus) bool {
	if to == LeadUnsubscribed {
		return from != LeadUnsubscribed
	}
	for _, s := range leadTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Company is an organisation leads belong to.
type Company struct {
	ID        int64
	Name      string
	Kind      LeadKind
	Website   string
	CreatedAt time.Time
}

// Lead is a prospective customer.
type Lead struct {
	ID               int64
	CompanyID        *int64
	CompanyName      string
	Kind             LeadKind
	Name             string
	Email            string
	Status           LeadStatus
	Notes            string
	FollowUps        int
	LastContactedAt  *time.Time
	UnsubscribeToken string
	CreatedAt        time.Time
}

// LeadFilter narrows lead listings and campaign audiences.
type LeadFilter struct {
	Kind      *LeadKind
	Status    *LeadStatus
	CompanyID *int64
	Limit     int
}

// EmailTemplate is an outreach message with placeholders.
type EmailTemplate struct {
	ID        int64
	Name      string
	Kind      LeadKind
	Subject   string
	Body      string
	CreatedAt time.Time
}

// Render substitutes {{name}}, {{company}} and {{unsubscribe_url}} for a lead.
func (t EmailTemplate) Render(lead Lead, unsubscribeURL string) (subject, body string) {
	r := strings.NewReplacer(
		"{{name}}", lead.Name,
		"{{company}}", lead.CompanyName,
		"{{unsubscribe_url}}", unsubscribeURL,
	)
	return r.Replace(t.Subject), r.Replace(t.Body)
}

// CampaignOptions tunes a campaign run.
type CampaignOptions struct {
	TemplateID int64
	Filter     LeadFilter
	DryRun     bool
}

// CampaignResult summarizes a campaign run.
type CampaignResult struct {
	Selected int `json:"selected"`
	Sent     int `json:"sent"`
	Failed   int `json:"failed"`
	Skipped  int `json:"skipped"`
}
