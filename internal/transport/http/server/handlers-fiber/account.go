package handlers_fiber

import (
	"net/http"

	"github.com/RoyKeane94/toad/internal/entities"
	"github.com/RoyKeane94/toad/internal/mapper"
	"github.com/RoyKeane94/toad/internal/transport/http/dto"

	"github.com/gofiber/fiber/v2"
)

// GetMe returns the caller's account.
func (h *Handler) GetMe(c *fiber.Ctx) error {
	user, err := h.uc.Me(c.Context(), callerID(c))
	if err != nil {
		return h.fail(c, "me", err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToUser(*user))
}

// PostTrial starts the caller's trial of a paid tier.
func (h *Handler) PostTrial(c *fiber.Ctx) error {
	var body dto.TrialRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}

	user, err := h.uc.StartTrial(c.Context(), callerID(c), entities.Tier(body.Tier))
	if err != nil {
		return h.fail(c, "start trial", err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToUser(*user))
}

// PostVerify consumes an email verification token.
func (h *Handler) PostVerify(c *fiber.Ctx) error {
	var body dto.VerifyRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}

	user, err := h.uc.VerifyEmail(c.Context(), body.Token)
	if err != nil {
		return h.fail(c, "verify email", err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToUser(*user))
}
