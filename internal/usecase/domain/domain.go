// Package domain contains application usecases orchestrating domain logic.
package domain

import (
	"context"
	"time"

	"github.com/RoyKeane94/toad/internal/billing"
	"github.com/RoyKeane94/toad/internal/entities"
	"github.com/RoyKeane94/toad/internal/mailer"
	"github.com/RoyKeane94/toad/internal/repository"

	"go.uber.org/zap"
)

// MailQueue accepts transactional mail for asynchronous delivery.
type MailQueue interface {
	Enqueue(msg mailer.Message) error
}

// WebhookVerifier authenticates and decodes Stripe webhook payloads.
type WebhookVerifier interface {
	Verify(payload []byte, signature string) (billing.Event, error)
}

// EventStore remembers processed webhook events.
type EventStore interface {
	ClaimEvent(ctx context.Context, eventID string) (bool, error)
	ReleaseEvent(ctx context.Context, eventID string) error
}

// Settings are the product rules the usecases apply.
type Settings struct {
	BaseURL             string
	TrialDays           int
	InvitationTTL       time.Duration
	CampaignCooldown    time.Duration
	CampaignConcurrency int
	Prices              entities.PriceMap
}

// Deps are the collaborators besides the repository.
type Deps struct {
	Settings Settings
	Mail     MailQueue
	Outreach mailer.Sender
	Verifier WebhookVerifier
	Events   EventStore
}

// Usecase struct implements all usecase interfaces.
type Usecase struct {
	ctx      context.Context
	log      *zap.SugaredLogger
	repo     repository.Repository
	timeout  time.Duration
	settings Settings
	mail     MailQueue
	outreach mailer.Sender
	verifier WebhookVerifier
	events   EventStore
	now      func() time.Time
}

// New constructs a new usecase layer with its dependencies.
func New(
	log *zap.SugaredLogger,
	ctx context.Context,
	repo repository.Repository,
	timeout time.Duration,
	deps Deps,
) *Usecase {
	return &Usecase{
		ctx:      ctx,
		log:      log,
		repo:     repo,
		timeout:  timeout,
		settings: deps.Settings,
		mail:     deps.Mail,
		outreach: deps.Outreach,
		verifier: deps.Verifier,
		events:   deps.Events,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// enqueueMail hands msg to the dispatcher; failures are logged, never returned.
func (u *Usecase) enqueueMail(msg mailer.Message) {
	if u.mail == nil {
		u.log.Warnw("mail queue not configured, dropping mail", "to", msg.To, "subject", msg.Subject)
		return
	}
	if err := u.mail.Enqueue(msg); err != nil {
		u.log.Errorw("failed to enqueue mail", "to", msg.To, "subject", msg.Subject, "error", err)
	}
}

func (u *Usecase) link(path string) string {
	return u.settings.BaseURL + path
}
