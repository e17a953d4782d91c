// Package main is the toadctl management binary.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RoyKeane94/toad/config"
	"github.com/RoyKeane94/toad/internal/auth"
	"github.com/RoyKeane94/toad/internal/cli"
	"github.com/RoyKeane94/toad/internal/mailer"
	"github.com/RoyKeane94/toad/internal/repository"
	"github.com/RoyKeane94/toad/internal/usecase"
	"github.com/RoyKeane94/toad/internal/usecase/domain"
	"github.com/RoyKeane94/toad/pkg/logger"
)

const commandTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Logging.Level, "console")
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	repo, err := repository.New(ctx, "postgres", log, cfg)
	if err != nil {
		return fmt.Errorf("repository initialization: %w", err)
	}
	if err := repo.OnStart(ctx); err != nil {
		return fmt.Errorf("repository start: %w", err)
	}
	defer func() { _ = repo.OnStop(context.Background()) }()

	sender, err := mailer.New(cfg.Mail, log)
	if err != nil {
		return fmt.Errorf("mailer initialization: %w", err)
	}
	dispatcher := mailer.NewDispatcher(log, sender, 1, cfg.Mail.QueueSize)
	defer func() {
		drainCtx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		if err := dispatcher.Stop(drainCtx); err != nil {
			log.Warnw("mail queue not drained", "error", err)
		}
	}()

	uc := usecase.New(log, ctx, repo, commandTimeout, domain.Deps{
		Settings: domain.Settings{
			BaseURL:             cfg.App.BaseURL,
			TrialDays:           cfg.App.TrialDays,
			InvitationTTL:       cfg.App.InvitationTTL,
			CampaignCooldown:    cfg.App.CampaignCooldown,
			CampaignConcurrency: cfg.App.CampaignConcurrency,
			Prices:              cfg.Stripe.Prices(),
		},
		Mail:     dispatcher,
		Outreach: sender,
	})

	root := cli.NewRootCmd(&cli.App{
		Accounts:  uc,
		CRM:       uc,
		Campaigns: uc,
		Tokens:    auth.NewIssuer(cfg.Auth),
	})
	return root.ExecuteContext(ctx)
}
