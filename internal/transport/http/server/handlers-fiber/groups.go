package handlers_fiber

import (
	"net/http"

	"github.com/RoyKeane94/toad/internal/mapper"
	"github.com/RoyKeane94/toad/internal/transport/http/dto"

	"github.com/gofiber/fiber/v2"
)

// PostGroup provisions a subscription group. Staff only; checkout creates groups otherwise.
func (h *Handler) PostGroup(c *fiber.Ctx) error {
	var body dto.CreateGroupRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}
	owner := body.OwnerID
	if owner == "" {
		owner = callerID(c)
	}

	details, err := h.uc.CreateGroup(c.Context(), owner, body.Name, body.Seats, body.SubscriptionID)
	if err != nil {
		return h.fail(c, "create group", err)
	}
	return c.Status(http.StatusCreated).JSON(mapper.ToGroup(*details, h.now()))
}

// GetGroup returns a group with seat usage to one of its members.
func (h *Handler) GetGroup(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid group id")
	}
	details, err := h.uc.Group(c.Context(), callerID(c), id)
	if err != nil {
		return h.fail(c, "get group", err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToGroup(*details, h.now()))
}

// PutSeats changes the purchased seat count. Staff only.
func (h *Handler) PutSeats(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid group id")
	}
	var body dto.SeatsRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}

	report, err := h.uc.SetSeats(c.Context(), id, body.Seats)
	if err != nil {
		return h.fail(c, "set seats", err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToDowngrade(report))
}

// PostInvitation invites an email to the group.
func (h *Handler) PostInvitation(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid group id")
	}
	var body dto.InviteRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}

	inv, err := h.uc.Invite(c.Context(), id, callerID(c), body.Email)
	if err != nil {
		return h.fail(c, "invite", err)
	}
	return c.Status(http.StatusCreated).JSON(mapper.ToInvitation(*inv))
}

// DeleteInvitation revokes a pending invitation.
func (h *Handler) DeleteInvitation(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid group id")
	}
	invID, ok := paramID(c, "inv")
	if !ok {
		return badRequest(c, "invalid invitation id")
	}
	if err := h.uc.RevokeInvitation(c.Context(), id, callerID(c), invID); err != nil {
		return h.fail(c, "revoke invitation", err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// DeleteMember frees a seat.
func (h *Handler) DeleteMember(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid group id")
	}
	report, err := h.uc.RemoveMember(c.Context(), id, callerID(c), c.Params("user"))
	if err != nil {
		return h.fail(c, "remove member", err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToDowngrade(report))
}

// PostAcceptInvitation seats the caller.
func (h *Handler) PostAcceptInvitation(c *fiber.Ctx) error {
	details, err := h.uc.AcceptInvitation(c.Context(), c.Params("token"), callerID(c))
	if err != nil {
		return h.fail(c, "accept invitation", err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToGroup(*details, h.now()))
}

// PostDeclineInvitation declines an invitation addressed to the caller.
func (h *Handler) PostDeclineInvitation(c *fiber.Ctx) error {
	if err := h.uc.DeclineInvitation(c.Context(), c.Params("token"), callerID(c)); err != nil {
		return h.fail(c, "decline invitation", err)
	}
	return c.SendStatus(http.StatusNoContent)
}
