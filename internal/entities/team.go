// Package entities contains core business entities.
package entities

import (
	"sort"
	"time"
)

// SubscriptionGroup is a team subscription with a fixed number of seats.
type SubscriptionGroup struct {
	ID                   int64
	OwnerID              string
	Name                 string
	Seats                int
	StripeSubscriptionID string
	Active               bool
	CreatedAt            time.Time
}

// GroupMember is a user occupying a seat.
type GroupMember struct {
	GroupID  int64
	UserID   string
	Email    string
	Username string
	JoinedAt time.Time
}

// InvitationStatus enumerates invitation lifecycle states.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationDeclined InvitationStatus = "declined"
	InvitationRevoked  InvitationStatus = "revoked"
	InvitationExpired  InvitationStatus = "expired"
)

// TeamInvitation offers a seat to an email address.
type TeamInvitation struct {
	ID        int64
	GroupID   int64
	Email     string
	Token     string
	Status    InvitationStatus
	InvitedBy string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Holds reports whether the invitation still reserves a seat at now.
func (i TeamInvitation) Holds(now time.Time) bool {
	return i.Status == InvitationPending && now.Before(i.ExpiresAt)
}

// SeatUsage is the seat accounting snapshot of a group.
type SeatUsage struct {
	Seats     int `json:"seats"`
	Members   int `json:"members"`
	Pending   int `json:"pending"`
	Available int `json:"available"`
}

// GroupDetails is a group with its members and invitations.
type GroupDetails struct {
	Group       SubscriptionGroup
	Members     []GroupMember
	Invitations []TeamInvitation
}

// Usage counts members and live pending invitations against purchased seats.
func (d GroupDetails) Usage(now time.Time) SeatUsage {
	u := SeatUsage{Seats: d.Group.Seats, Members: len(d.Members)}
	for _, inv := range d.Invitations {
		if inv.Holds(now) {
			u.Pending++
		}
	}
	u.Available = u.Seats - u.Members - u.Pending
	if u.Available < 0 {
		u.Available = 0
	}
	return u
}

// HasMember reports whether userID occupies a seat.
func (d GroupDetails) HasMember(userID string) bool {
	for _, m := range d.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

// SeatTrim lists what must go when a group shrinks below its usage.
type SeatTrim struct {
	RevokeInvitations []int64
	RemoveMembers     []string
}

// TrimToSeats picks pending invitations (newest first) and then non-owner
// members (most recently joined first) to drop until usage fits seats.
func TrimToSeats(d GroupDetails, seats int, now time.Time) SeatTrim {
	var trim SeatTrim
	usage := d.Usage(now)
	over := usage.Members + usage.Pending - seats
	if over <= 0 {
		return trim
	}

	pending := make([]TeamInvitation, 0, usage.Pending)
	for _, inv := range d.Invitations {
		if inv.Holds(now) {
			pending = append(pending, inv)
		}
	}
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].CreatedAt.After(pending[j].CreatedAt)
	})
	for _, inv := range pending {
		if over == 0 {
			return trim
		}
		trim.RevokeInvitations = append(trim.RevokeInvitations, inv.ID)
		over--
	}

	members := make([]GroupMember, 0, len(d.Members))
	for _, m := range d.Members {
		if m.UserID != d.Group.OwnerID {
			members = append(members, m)
		}
	}
	sort.SliceStable(members, func(i, j int) bool {
		return members[i].JoinedAt.After(members[j].JoinedAt)
	})
	for _, m := range members {
		if over == 0 {
			break
		}
		trim.RemoveMembers = append(trim.RemoveMembers, m.UserID)
		over--
	}
	return trim
}
