// Package entities contains core business entities.
package entities

import "time"

// Tier is a subscription plan gating feature access.
type Tier string

const (
	// TierFree is the default plan.
	TierFree Tier = "free"
	// TierPersonal is the paid single-user plan.
	TierPersonal Tier = "personal"
	// TierPro is the paid plan with team sharing.
	TierPro Tier = "pro"
	// TierBeta is granted to beta testers and mirrors pro.
	TierBeta Tier = "beta"
	// TierPersonalTrial is a time-boxed personal plan.
	TierPersonalTrial Tier = "personal_trial"
	// TierProTrial is a time-boxed pro plan.
	TierProTrial Tier = "pro_trial"
)

// Unlimited marks a limit without an upper bound.
const Unlimited = -1

// TierSource tells where a user's tier comes from.
type TierSource string

const (
	// SourceOwn means the user pays for (or was granted) the tier directly.
	SourceOwn TierSource = "own"
	// SourceGroup means the tier is a seat in someone's subscription group.
	SourceGroup TierSource = "group"
)

// Limits describes what a tier allows.
type Limits struct {
	MaxProjects  int
	MaxTemplates int
	TeamSharing  bool
}

// Valid reports whether t is a known tier.
func (t Tier) Valid() bool {
	switch t {
	case TierFree, TierPersonal, TierPro, TierBeta, TierPersonalTrial, TierProTrial:
		return true
	}
	return false
}

// IsTrial reports whether t is a time-boxed trial tier.
func (t Tier) IsTrial() bool {
	return t == TierPersonalTrial || t == TierProTrial
}

// Limits returns capabilities of the tier. Unknown tiers get free limits.
func (t Tier) Limits() Limits {
	switch t {
	case TierPersonal, TierPersonalTrial:
		return Limits{MaxProjects: 20, MaxTemplates: 10}
	case TierPro, TierProTrial, TierBeta:
		return Limits{MaxProjects: Unlimited, MaxTemplates: Unlimited, TeamSharing: true}
	default:
		return Limits{MaxProjects: 3, MaxTemplates: 0}
	}
}

// TrialTier returns the trial variant for a paid tier.
func TrialTier(t Tier) (Tier, bool) {
	switch t {
	case TierPersonal:
		return TierPersonalTrial, true
	case TierPro:
		return TierProTrial, true
	}
	return "", false
}

// IsDowngrade reports whether moving from one tier to another loses any capability.
func IsDowngrade(from, to Tier) bool {
	a, b := from.Limits(), to.Limits()
	if a.TeamSharing && !b.TeamSharing {
		return true
	}
	return lowerLimit(a.MaxProjects, b.MaxProjects) || lowerLimit(a.MaxTemplates, b.MaxTemplates)
}

// Ranks orders tiers by capability so a group seat never lowers a better own tier.
func Ranks(t Tier) int {
	l := t.Limits()
	switch {
	case l.TeamSharing:
		return 2
	case l.MaxProjects > TierFree.Limits().MaxProjects:
		return 1
	default:
		return 0
	}
}

func lowerLimit(from, to int) bool {
	if to == Unlimited {
		return false
	}
	return from == Unlimited || to < from
}

// Allows reports whether count items fit under limit.
func Allows(limit, count int) bool {
	return limit == Unlimited || count < limit
}

// User is an account holder.
type User struct {
	ID                string
	Email             string
	Username          string
	Tier              Tier
	TierSource        TierSource
	TrialUsed         bool
	TrialStartedAt    *time.Time
	TrialEndsAt       *time.Time
	EmailVerified     bool
	VerificationToken string
	StripeCustomerID  string
	IsStaff           bool
	IsActive          bool
	CreatedAt         time.Time
}

// DowngradeReport summarizes the cascade applied on a tier change.
type DowngradeReport struct {
	UsersDowngraded    int `json:"users_downgraded"`
	ProjectsUnshared   int `json:"projects_unshared"`
	ProjectsArchived   int `json:"projects_archived"`
	GroupsDeactivated  int `json:"groups_deactivated"`
	InvitationsRevoked int `json:"invitations_revoked"`
	MembersRemoved     int `json:"members_removed"`
}

// Add accumulates another report into r.
func (r *DowngradeReport) Add(o DowngradeReport) {
	r.UsersDowngraded += o.UsersDowngraded
	r.ProjectsUnshared += o.ProjectsUnshared
	r.ProjectsArchived += o.ProjectsArchived
	r.GroupsDeactivated += o.GroupsDeactivated
	r.InvitationsRevoked += o.InvitationsRevoked
	r.MembersRemoved += o.MembersRemoved
}
