// Package entities contains core business entities and errors.
package entities

import "errors"

var (
	// ErrInvalidArgument signals failed input validation.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrForbidden signals that the actor may not touch the resource.
	ErrForbidden = errors.New("forbidden")
	// ErrUserNotFound is returned when a user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists signals email conflict on user creation.
	ErrUserExists = errors.New("user exists")
	// ErrTierLimit signals that the user's tier does not allow the action.
	ErrTierLimit = errors.New("tier limit reached")
	// ErrTrialUnavailable signals that a trial was already used or cannot start from the current tier.
	ErrTrialUnavailable = errors.New("trial unavailable")

	// ErrGroupNotFound signals missing subscription group.
	ErrGroupNotFound = errors.New("group not found")
	// ErrGroupInactive signals modification attempt on a deactivated group.
	ErrGroupInactive = errors.New("group inactive")
	// ErrNoSeats signals that every purchased seat is taken.
	ErrNoSeats = errors.New("no seats available")
	// ErrAlreadyMember signals that the user already belongs to a group.
	ErrAlreadyMember = errors.New("already a member")
	// ErrInvitationExists signals a pending invitation for the same email.
	ErrInvitationExists = errors.New("invitation exists")
	// ErrInvitationNotFound signals missing invitation.
	ErrInvitationNotFound = errors.New("invitation not found")
	// ErrInvitationClosed signals an invitation that is no longer pending.
	ErrInvitationClosed = errors.New("invitation closed")

	// ErrProjectNotFound signals missing project.
	ErrProjectNotFound = errors.New("project not found")
	// ErrHeaderNotFound signals missing row or column header.
	ErrHeaderNotFound = errors.New("header not found")
	// ErrTaskNotFound signals missing task.
	ErrTaskNotFound = errors.New("task not found")
	// ErrTemplateNotFound signals missing personal template.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrCompanyNotFound signals missing CRM company.
	ErrCompanyNotFound = errors.New("company not found")
	// ErrLeadNotFound signals missing CRM lead.
	ErrLeadNotFound = errors.New("lead not found")
	// ErrLeadExists signals duplicate lead email.
	ErrLeadExists = errors.New("lead exists")
	// ErrInvalidTransition signals a pipeline move that is not allowed.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrEmailTemplateNotFound signals missing CRM email template.
	ErrEmailTemplateNotFound = errors.New("email template not found")
)
