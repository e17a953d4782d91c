package domain

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/RoyKeane94/toad/internal/entities"
	"github.com/RoyKeane94/toad/internal/mailer"

	"github.com/google/uuid"
)

// Me returns the caller's account.
func (u *Usecase) Me(ctx context.Context, userID string) (*entities.User, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if userID == "" {
		return nil, fmt.Errorf("%w: userID is required", entities.ErrInvalidArgument)
	}
	return u.repo.GetUser(ctx, userID)
}

// UserByEmail looks an account up by email.
func (u *Usecase) UserByEmail(ctx context.Context, email string) (*entities.User, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	return u.repo.GetUserByEmail(ctx, email)
}

// CreateUser provisions a free account and mails its verification link.
func (u *Usecase) CreateUser(ctx context.Context, email, username string, staff bool) (*entities.User, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", entities.ErrInvalidArgument)
	}

	created, err := u.repo.CreateUser(ctx, entities.User{
		ID:                uuid.NewString(),
		Email:             email,
		Username:          username,
		Tier:              entities.TierFree,
		TierSource:        entities.SourceOwn,
		VerificationToken: uuid.NewString(),
		IsStaff:           staff,
	})
	if err != nil {
		return nil, err
	}

	u.enqueueMail(mailer.Message{
		To:      created.Email,
		Subject: "Verify your Toad account",
		Body:    fmt.Sprintf("Hi %s,\n\nConfirm your email: %s\n", created.Username, u.link("/verify?token="+created.VerificationToken)),
	})
	return created, nil
}

// VerifyEmail consumes a verification token.
func (u *Usecase) VerifyEmail(ctx context.Context, token string) (*entities.User, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if token == "" {
		return nil, fmt.Errorf("%w: token is required", entities.ErrInvalidArgument)
	}
	return u.repo.VerifyEmail(ctx, token)
}

// StartTrial starts the one-off trial of a paid tier.
func (u *Usecase) StartTrial(ctx context.Context, userID string, tier entities.Tier) (*entities.User, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if userID == "" {
		return nil, fmt.Errorf("%w: userID is required", entities.ErrInvalidArgument)
	}
	trial, ok := entities.TrialTier(tier)
	if !ok {
		return nil, fmt.Errorf("%w: no trial for tier %q", entities.ErrInvalidArgument, tier)
	}

	now := u.now()
	return u.repo.StartTrial(ctx, userID, trial, now, now.AddDate(0, 0, u.settings.TrialDays))
}

// ChangeTier moves a user to another tier, applying the downgrade cascade.
func (u *Usecase) ChangeTier(ctx context.Context, userID string, tier entities.Tier, source entities.TierSource) (*entities.User, entities.DowngradeReport, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if userID == "" {
		return nil, entities.DowngradeReport{}, fmt.Errorf("%w: userID is required", entities.ErrInvalidArgument)
	}
	if !tier.Valid() {
		return nil, entities.DowngradeReport{}, fmt.Errorf("%w: unknown tier %q", entities.ErrInvalidArgument, tier)
	}
	if source != entities.SourceOwn && source != entities.SourceGroup {
		return nil, entities.DowngradeReport{}, fmt.Errorf("%w: unknown tier source %q", entities.ErrInvalidArgument, source)
	}
	return u.repo.ChangeTier(ctx, userID, tier, source)
}

// ExpireTrials downgrades every user whose trial has ended and returns how many were moved.
func (u *Usecase) ExpireTrials(ctx context.Context) (int, entities.DowngradeReport, error) {
	var total entities.DowngradeReport

	listCtx, cancel := withTimeout(ctx, u.timeout)
	users, err := u.repo.ListExpiredTrials(listCtx, u.now())
	cancel()
	if err != nil {
		return 0, total, err
	}

	expired := 0
	for _, user := range users {
		if err := ctx.Err(); err != nil {
			return expired, total, err
		}
		_, report, err := u.ChangeTier(ctx, user.ID, entities.TierFree, entities.SourceOwn)
		if err != nil {
			u.log.Errorw("failed to expire trial", "user_id", user.ID, "error", err)
			continue
		}
		expired++
		total.Add(report)
		u.log.Infow("trial expired", "user_id", user.ID, "tier", user.Tier, "archived", report.ProjectsArchived)
	}
	return expired, total, nil
}

func normalizeEmail(email string) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil || addr.Name != "" {
		return "", fmt.Errorf("%w: invalid email %q", entities.ErrInvalidArgument, email)
	}
	return strings.ToLower(addr.Address), nil
}
