// Package main wires the HTTP server for the Toad service.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/RoyKeane94/toad/config"
	"github.com/RoyKeane94/toad/internal/auth"
	"github.com/RoyKeane94/toad/internal/billing"
	"github.com/RoyKeane94/toad/internal/cache"
	"github.com/RoyKeane94/toad/internal/mailer"
	"github.com/RoyKeane94/toad/internal/repository"
	"github.com/RoyKeane94/toad/internal/transport/http/middleware"
	"github.com/RoyKeane94/toad/internal/transport/http/server/handlers-fiber"
	"github.com/RoyKeane94/toad/internal/usecase"
	"github.com/RoyKeane94/toad/internal/usecase/domain"
	"github.com/RoyKeane94/toad/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	repo, err := repository.New(ctx, "postgres", log, cfg)
	if err != nil {
		log.Errorw("repository initialization error", "error", err)
		return
	}
	if err := repo.OnStart(ctx); err != nil {
		log.Errorw("repository start error", "error", err)
		return
	}
	defer func() {
		_ = repo.OnStop(context.Background())
	}()

	rdb, err := cache.New(ctx, log, cfg.Redis)
	if err != nil {
		log.Errorw("redis initialization error", "error", err)
		return
	}
	defer func() { _ = rdb.Close() }()

	sender, err := mailer.New(cfg.Mail, log)
	if err != nil {
		log.Errorw("mailer initialization error", "error", err)
		return
	}
	dispatcher := mailer.NewDispatcher(log, sender, cfg.Mail.Workers, cfg.Mail.QueueSize)

	uc := usecase.New(log, ctx, repo, cfg.HTTP.RequestTimeout, domain.Deps{
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
		Verifier: billing.NewVerifier(cfg.Stripe.WebhookSecret),
		Events:   rdb,
	})

	serv := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTP.RequestTimeout,
		WriteTimeout: cfg.HTTP.RequestTimeout,
		BodyLimit:    cfg.HTTP.BodyLimit,
	})
	serv.Use(recover.New())
	serv.Use(requestid.New())
	serv.Use(middleware.RequestLogger(log))

	h := handlers_fiber.NewHandler(log, uc)
	h.Register(serv, handlers_fiber.Guards{
		Auth:      middleware.Auth(auth.NewIssuer(cfg.Auth)),
		RateLimit: middleware.RateLimit(log, rdb, cfg.Redis.RateLimit, cfg.Redis.RateWindow),
		Staff:     middleware.RequireStaff(),
	})

	go func() {
		if err := serv.Listen(cfg.ServerAddr()); err != nil {
			log.Errorw("failed to start server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	done := make(chan struct{})
	go func() {
		_ = serv.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-shutdownCtx.Done():
		log.Warnw("server shutdown timeout", "timeout", cfg.Server.ShutdownTimeout)
	}

	if err := dispatcher.Stop(shutdownCtx); err != nil {
		log.Warnw("mail queue not drained", "error", err)
	}
}
