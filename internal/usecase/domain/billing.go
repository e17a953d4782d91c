package domain

import (
	"context"
	"errors"
	"fmt"

	"github.com/RoyKeane94/toad/internal/billing"
	"github.com/RoyKeane94/toad/internal/entities"
)

// ProcessWebhook verifies a Stripe event and applies it once.
func (u *Usecase) ProcessWebhook(ctx context.Context, payload []byte, signature string) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if u.verifier == nil || u.events == nil {
		return errors.New("billing webhooks are not configured")
	}
	ev, err := u.verifier.Verify(payload, signature)
	if err != nil {
		return fmt.Errorf("%w: %v", entities.ErrInvalidArgument, err)
	}

	claimed, err := u.events.ClaimEvent(ctx, ev.ID)
	if err != nil {
		return err
	}
	if !claimed {
		u.log.Infow("duplicate stripe event ignored", "event_id", ev.ID, "type", ev.Type)
		return nil
	}

	if err := u.dispatchEvent(ctx, ev); err != nil {
		u.log.Errorw("failed to process stripe event", "event_id", ev.ID, "type", ev.Type, "error", err)
		if relErr := u.events.ReleaseEvent(context.WithoutCancel(ctx), ev.ID); relErr != nil {
			u.log.Errorw("failed to release stripe event", "event_id", ev.ID, "error", relErr)
		}
		return err
	}
	u.log.Infow("stripe event processed", "event_id", ev.ID, "type", ev.Type)
	return nil
}

func (u *Usecase) dispatchEvent(ctx context.Context, ev billing.Event) error {
	switch ev.Type {
	case billing.EventCheckoutCompleted:
		if ev.Checkout == nil {
			return nil
		}
		return u.checkoutCompleted(ctx, *ev.Checkout)
	case billing.EventSubscriptionCreated, billing.EventSubscriptionUpdated:
		if ev.Subscription == nil {
			return nil
		}
		sub := *ev.Subscription
		switch {
		case sub.Live():
			return u.subscriptionLive(ctx, sub)
		case sub.Ended():
			return u.subscriptionEnded(ctx, sub)
		default:
			u.log.Warnw("subscription not live", "subscription_id", sub.ID, "customer_id", sub.CustomerID, "status", sub.Status)
			return nil
		}
	case billing.EventSubscriptionDeleted:
		if ev.Subscription == nil {
			return nil
		}
		return u.subscriptionEnded(ctx, *ev.Subscription)
	case billing.EventInvoicePaymentFailed:
		if ev.Invoice != nil {
			u.log.Warnw("invoice payment failed", "invoice_id", ev.Invoice.ID, "customer_id", ev.Invoice.CustomerID)
		}
		return nil
	default:
		u.log.Debugw("stripe event ignored", "event_id", ev.ID, "type", ev.Type)
		return nil
	}
}

func (u *Usecase) checkoutCompleted(ctx context.Context, c billing.Checkout) error {
	if c.UserID == "" {
		u.log.Warnw("checkout without client reference", "customer_id", c.CustomerID)
		return nil
	}
	if c.CustomerID != "" {
		if err := u.repo.SetStripeCustomer(ctx, c.UserID, c.CustomerID); err != nil {
			if errors.Is(err, entities.ErrUserNotFound) {
				u.log.Warnw("checkout for unknown user", "user_id", c.UserID)
				return nil
			}
			return err
		}
	}

	switch c.Plan {
	case entities.PlanTeam:
		name := c.GroupName
		if name == "" {
			name = "Team"
		}
		_, err := u.repo.CreateGroup(ctx, entities.SubscriptionGroup{
			OwnerID:              c.UserID,
			Name:                 name,
			Seats:                c.Seats,
			StripeSubscriptionID: c.SubscriptionID,
		})
		if errors.Is(err, entities.ErrAlreadyMember) {
			u.log.Warnw("team checkout by user already in a group", "user_id", c.UserID)
			return nil
		}
		return err
	case entities.PlanPersonal, entities.PlanPro:
		return u.grantPlanTier(ctx, c.UserID, c.Plan.Tier())
	default:
		u.log.Warnw("checkout with unknown plan", "user_id", c.UserID, "plan", c.Plan)
		return nil
	}
}

func (u *Usecase) subscriptionLive(ctx context.Context, sub billing.Subscription) error {
	plan, ok := u.settings.Prices.Plan(sub.PriceID)
	if !ok {
		u.log.Warnw("subscription with unknown price", "subscription_id", sub.ID, "price_id", sub.PriceID)
		return nil
	}

	if plan == entities.PlanTeam {
		group, err := u.repo.GetGroupBySubscription(ctx, sub.ID)
		if errors.Is(err, entities.ErrGroupNotFound) {
			u.log.Infow("team subscription without group yet", "subscription_id", sub.ID)
			return nil
		}
		if err != nil {
			return err
		}
		if sub.Quantity < 1 || sub.Quantity == group.Seats {
			return nil
		}
		_, err = u.repo.SetSeats(ctx, group.ID, sub.Quantity, u.now())
		if errors.Is(err, entities.ErrGroupInactive) {
			u.log.Warnw("seat change for inactive group ignored", "group_id", group.ID, "subscription_id", sub.ID)
			return nil
		}
		return err
	}

	user, err := u.repo.GetUserByCustomer(ctx, sub.CustomerID)
	if errors.Is(err, entities.ErrUserNotFound) {
		u.log.Warnw("subscription for unknown customer", "customer_id", sub.CustomerID)
		return nil
	}
	if err != nil {
		return err
	}
	return u.grantPlanTier(ctx, user.ID, plan.Tier())
}

func (u *Usecase) subscriptionEnded(ctx context.Context, sub billing.Subscription) error {
	group, err := u.repo.GetGroupBySubscription(ctx, sub.ID)
	switch {
	case err == nil:
		_, err := u.repo.DeactivateGroup(ctx, group.ID)
		return err
	case !errors.Is(err, entities.ErrGroupNotFound):
		return err
	}

	user, err := u.repo.GetUserByCustomer(ctx, sub.CustomerID)
	if errors.Is(err, entities.ErrUserNotFound) {
		u.log.Warnw("cancellation for unknown customer", "customer_id", sub.CustomerID)
		return nil
	}
	if err != nil {
		return err
	}
	if user.TierSource == entities.SourceGroup {
		return nil
	}
	_, _, err = u.repo.ChangeTier(ctx, user.ID, entities.TierFree, entities.SourceOwn)
	return err
}

// grantPlanTier applies a paid tier unless a group seat already gives at least as much.
func (u *Usecase) grantPlanTier(ctx context.Context, userID string, tier entities.Tier) error {
	user, err := u.repo.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if user.TierSource == entities.SourceGroup && entities.Ranks(user.Tier) >= entities.Ranks(tier) {
		u.log.Infow("paid tier shadowed by group seat", "user_id", userID, "tier", tier)
		return nil
	}
	if user.Tier == tier && user.TierSource == entities.SourceOwn {
		return nil
	}
	_, _, err = u.repo.ChangeTier(ctx, userID, tier, entities.SourceOwn)
	return err
}
