package domain

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/RoyKeane94/toad/internal/entities"
	"github.com/RoyKeane94/toad/internal/mailer"

	"golang.org/x/sync/errgroup"
)

// SendCampaign mails a template to every eligible lead with bounded concurrency.
// Per-lead failures are counted, never fatal.
func (u *Usecase) SendCampaign(ctx context.Context, opts entities.CampaignOptions) (entities.CampaignResult, error) {
	var result entities.CampaignResult

	if u.outreach == nil {
		return result, errors.New("outreach sender is not configured")
	}
	if err := validateFilter(opts.Filter); err != nil {
		return result, err
	}

	loadCtx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	tpl, err := u.repo.GetEmailTemplate(loadCtx, opts.TemplateID)
	if err != nil {
		return result, err
	}
	filter := opts.Filter
	if filter.Kind == nil {
		kind := tpl.Kind
		filter.Kind = &kind
	}

	now := u.now()
	leads, err := u.repo.CampaignAudience(loadCtx, filter, now.Add(-u.settings.CampaignCooldown))
	if err != nil {
		return result, err
	}
	result.Selected = len(leads)

	if opts.DryRun {
		for _, lead := range leads {
			subject, _ := tpl.Render(lead, u.link("/unsubscribe/"+lead.UnsubscribeToken))
			u.log.Infow("campaign dry run", "lead_id", lead.ID, "to", lead.Email, "subject", subject)
		}
		result.Skipped = len(leads)
		return result, nil
	}

	var sent, failed, skipped atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	concurrency := u.settings.CampaignConcurrency
	if concurrency < 1 {
		concurrency = 1
	}
	g.SetLimit(concurrency)

	for _, lead := range leads {
		g.Go(func() error {
			if gctx.Err() != nil {
				skipped.Add(1)
				return nil
			}
			subject, body := tpl.Render(lead, u.link("/unsubscribe/"+lead.UnsubscribeToken))

			sendCtx, cancel := withTimeout(gctx, u.timeout)
			defer cancel()

			if err := u.outreach.Send(sendCtx, mailer.Message{To: lead.Email, Subject: subject, Body: body}); err != nil {
				failed.Add(1)
				u.log.Errorw("campaign send failed", "lead_id", lead.ID, "to", lead.Email, "error", err)
				return nil
			}
			sent.Add(1)
			if err := u.repo.MarkContacted(sendCtx, lead.ID, now); err != nil {
				u.log.Errorw("failed to record campaign contact", "lead_id", lead.ID, "error", err)
			}
			return nil
		})
	}
	_ = g.Wait()

	result.Sent = int(sent.Load())
	result.Failed = int(failed.Load())
	result.Skipped = int(skipped.Load())

	u.log.Infow("campaign finished", "template_id", tpl.ID, "selected", result.Selected,
		"sent", result.Sent, "failed", result.Failed, "skipped", result.Skipped)
	return result, ctx.Err()
}
