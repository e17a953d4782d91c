// Package handlers_fiber wires HTTP delivery components.
package handlers_fiber

import (
	"time"

	"github.com/RoyKeane94/toad/internal/usecase"

	"go.uber.org/zap"
)

// Handler serves the HTTP API using service layer interfaces.
type Handler struct {
	log *zap.SugaredLogger
	uc  usecase.InterfaceUsecase
	now func() time.Time
}

// NewHandler constructs an HTTP server with service dependencies.
func NewHandler(log *zap.SugaredLogger, usecase usecase.InterfaceUsecase) *Handler {
	return &Handler{
		log: log,
		uc:  usecase,
		now: func() time.Time { return time.Now().UTC() },
	}
}
