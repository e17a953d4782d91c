package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/RoyKeane94/toad/internal/entities"
	"github.com/RoyKeane94/toad/internal/mailer"

	"github.com/google/uuid"
)

// CreateGroup opens a subscription group owned by ownerID.
func (u *Usecase) CreateGroup(ctx context.Context, ownerID, name string, seats int, subscriptionID string) (*entities.GroupDetails, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	name = strings.TrimSpace(name)
	switch {
	case ownerID == "":
		return nil, fmt.Errorf("%w: ownerID is required", entities.ErrInvalidArgument)
	case name == "":
		return nil, fmt.Errorf("%w: group name is required", entities.ErrInvalidArgument)
	case seats < 1:
		return nil, fmt.Errorf("%w: seats must be positive", entities.ErrInvalidArgument)
	}

	return u.repo.CreateGroup(ctx, entities.SubscriptionGroup{
		OwnerID:              ownerID,
		Name:                 name,
		Seats:                seats,
		StripeSubscriptionID: subscriptionID,
	})
}

// Group returns a group to one of its members.
func (u *Usecase) Group(ctx context.Context, actorID string, groupID int64) (*entities.GroupDetails, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	details, err := u.repo.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !details.HasMember(actorID) {
		return nil, entities.ErrForbidden
	}
	return details, nil
}

// Invite reserves a seat for email and mails the invitation link.
func (u *Usecase) Invite(ctx context.Context, groupID int64, actorID, email string) (*entities.TeamInvitation, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	details, err := u.ownedGroup(ctx, groupID, actorID)
	if err != nil {
		return nil, err
	}

	now := u.now()
	inv, err := u.repo.CreateInvitation(ctx, entities.TeamInvitation{
		GroupID:   groupID,
		Email:     email,
		Token:     uuid.NewString(),
		InvitedBy: actorID,
		ExpiresAt: now.Add(u.settings.InvitationTTL),
	}, now)
	if err != nil {
		return nil, err
	}

	u.enqueueMail(mailer.Message{
		To:      inv.Email,
		Subject: fmt.Sprintf("You're invited to join %s on Toad", details.Group.Name),
		Body: fmt.Sprintf("You have been invited to join %s.\n\nAccept: %s\n\nThis invitation expires on %s.\n",
			details.Group.Name, u.link("/invitations/"+inv.Token), inv.ExpiresAt.Format("2 Jan 2006")),
	})
	return inv, nil
}

// AcceptInvitation seats userID in the inviting group.
func (u *Usecase) AcceptInvitation(ctx context.Context, token, userID string) (*entities.GroupDetails, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if token == "" || userID == "" {
		return nil, fmt.Errorf("%w: token and userID are required", entities.ErrInvalidArgument)
	}
	return u.repo.AcceptInvitation(ctx, token, userID, u.now())
}

// DeclineInvitation closes an invitation addressed to userID.
func (u *Usecase) DeclineInvitation(ctx context.Context, token, userID string) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if token == "" || userID == "" {
		return fmt.Errorf("%w: token and userID are required", entities.ErrInvalidArgument)
	}
	return u.repo.DeclineInvitation(ctx, token, userID)
}

// RevokeInvitation lets the owner cancel a pending invitation.
func (u *Usecase) RevokeInvitation(ctx context.Context, groupID int64, actorID string, invitationID int64) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if _, err := u.ownedGroup(ctx, groupID, actorID); err != nil {
		return err
	}
	return u.repo.RevokeInvitation(ctx, groupID, invitationID)
}

// RemoveMember lets the owner free a seat.
func (u *Usecase) RemoveMember(ctx context.Context, groupID int64, actorID, userID string) (entities.DowngradeReport, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if userID == "" {
		return entities.DowngradeReport{}, fmt.Errorf("%w: userID is required", entities.ErrInvalidArgument)
	}
	details, err := u.ownedGroup(ctx, groupID, actorID)
	if err != nil {
		return entities.DowngradeReport{}, err
	}
	if userID == details.Group.OwnerID {
		return entities.DowngradeReport{}, fmt.Errorf("%w: the owner cannot be removed", entities.ErrInvalidArgument)
	}
	return u.repo.RemoveMember(ctx, groupID, userID)
}

// SetSeats changes the purchased seat count, trimming usage to fit.
func (u *Usecase) SetSeats(ctx context.Context, groupID int64, seats int) (entities.DowngradeReport, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if seats < 1 {
		return entities.DowngradeReport{}, fmt.Errorf("%w: seats must be positive", entities.ErrInvalidArgument)
	}
	return u.repo.SetSeats(ctx, groupID, seats, u.now())
}

func (u *Usecase) ownedGroup(ctx context.Context, groupID int64, actorID string) (*entities.GroupDetails, error) {
	details, err := u.repo.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if details.Group.OwnerID != actorID {
		return nil, fmt.Errorf("%w: only the group owner may manage the group", entities.ErrForbidden)
	}
	if !details.Group.Active {
		return nil, entities.ErrGroupInactive
	}
	return details, nil
}
