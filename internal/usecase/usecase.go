package usecase

import (
	"context"
	"time"

	"github.com/RoyKeane94/toad/internal/repository"
	"github.com/RoyKeane94/toad/internal/usecase/domain"

	"go.uber.org/zap"
)

// InterfaceUsecase aggregates all usecase interfaces.
type InterfaceUsecase interface {
	AccountUsecaseInterface
	GroupUsecaseInterface
	GridUsecaseInterface
	TemplateUsecaseInterface
	BillingUsecaseInterface
	CRMUsecaseInterface
	CampaignUsecaseInterface
}

var _ InterfaceUsecase = (*domain.Usecase)(nil)

// New constructs a new usecase layer with its dependencies.
func New(log *zap.SugaredLogger, ctx context.Context, repo repository.Repository, timeout time.Duration, deps domain.Deps) InterfaceUsecase {
	return domain.New(log, ctx, repo, timeout, deps)
}
