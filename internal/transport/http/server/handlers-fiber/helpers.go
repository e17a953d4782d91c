package handlers_fiber

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/RoyKeane94/toad/internal/entities"
	"github.com/RoyKeane94/toad/internal/transport/http/dto"
	"github.com/RoyKeane94/toad/internal/transport/http/middleware"

	"github.com/gofiber/fiber/v2"
)

func writeError(c *fiber.Ctx, err error) error {
	status := http.StatusInternalServerError
	code := dto.CodeInternal
	msg := "internal error"

	switch {
	case errors.Is(err, entities.ErrInvalidArgument):
		status = http.StatusBadRequest
		code = dto.CodeInvalidArgument
		msg = err.Error()
	case errors.Is(err, entities.ErrForbidden):
		status = http.StatusForbidden
		code = dto.CodeForbidden
		msg = "forbidden"
	case errors.Is(err, entities.ErrUserNotFound), errors.Is(err, entities.ErrGroupNotFound),
		errors.Is(err, entities.ErrInvitationNotFound), errors.Is(err, entities.ErrProjectNotFound),
		errors.Is(err, entities.ErrHeaderNotFound), errors.Is(err, entities.ErrTaskNotFound),
		errors.Is(err, entities.ErrTemplateNotFound), errors.Is(err, entities.ErrCompanyNotFound),
		errors.Is(err, entities.ErrLeadNotFound), errors.Is(err, entities.ErrEmailTemplateNotFound):
		status = http.StatusNotFound
		code = dto.CodeNotFound
		msg = err.Error()
	case errors.Is(err, entities.ErrUserExists), errors.Is(err, entities.ErrLeadExists),
		errors.Is(err, entities.ErrInvitationExists), errors.Is(err, entities.ErrAlreadyMember):
		status = http.StatusConflict
		code = dto.CodeConflict
		msg = err.Error()
	case errors.Is(err, entities.ErrTierLimit):
		status = http.StatusPaymentRequired
		code = dto.CodeTierLimit
		msg = err.Error()
	case errors.Is(err, entities.ErrNoSeats):
		status = http.StatusConflict
		code = dto.CodeNoSeats
		msg = "no seats available"
	case errors.Is(err, entities.ErrGroupInactive):
		status = http.StatusConflict
		code = dto.CodeGroupInactive
		msg = "group is inactive"
	case errors.Is(err, entities.ErrInvitationClosed):
		status = http.StatusGone
		code = dto.CodeInvitationClosed
		msg = "invitation is no longer pending"
	case errors.Is(err, entities.ErrInvalidTransition):
		status = http.StatusConflict
		code = dto.CodeInvalidTransition
		msg = err.Error()
	case errors.Is(err, entities.ErrTrialUnavailable):
		status = http.StatusConflict
		code = dto.CodeTrialUnavailable
		msg = "trial unavailable"
	}

	return c.Status(status).JSON(dto.Error(code, msg))
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(http.StatusBadRequest).JSON(dto.Error(dto.CodeInvalidArgument, msg))
}

// fail logs unexpected errors before writing the response.
func (h *Handler) fail(c *fiber.Ctx, op string, err error) error {
	if writeErr := writeError(c, err); writeErr != nil {
		return writeErr
	}
	if c.Response().StatusCode() >= http.StatusInternalServerError {
		h.log.Errorw("request failed", "op", op, "error", err)
	}
	return nil
}

func paramID(c *fiber.Ctx, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	return id, err == nil && id > 0
}

func callerID(c *fiber.Ctx) string {
	id, _ := middleware.UserID(c)
	return id
}
