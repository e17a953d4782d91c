package handlers_fiber

import (
	"net/http"

	"github.com/RoyKeane94/toad/internal/mapper"
	"github.com/RoyKeane94/toad/internal/transport/http/dto"

	"github.com/gofiber/fiber/v2"
)

// GetTemplates lists the caller's templates.
func (h *Handler) GetTemplates(c *fiber.Ctx) error {
	list, err := h.uc.ListTemplates(c.Context(), callerID(c))
	if err != nil {
		return h.fail(c, "list templates", err)
	}
	return c.Status(http.StatusOK).JSON(struct {
		Templates []dto.Template `json:"templates"`
	}{Templates: mapper.ToTemplates(list)})
}

// PostInstantiate creates a project from a template.
func (h *Handler) PostInstantiate(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid template id")
	}
	var body dto.TitleRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return badRequest(c, "invalid body")
		}
	}

	grid, err := h.uc.InstantiateTemplate(c.Context(), callerID(c), id, body.Title)
	if err != nil {
		return h.fail(c, "instantiate template", err)
	}
	return c.Status(http.StatusCreated).JSON(mapper.ToGrid(*grid))
}

// DeleteTemplate removes one of the caller's templates.
func (h *Handler) DeleteTemplate(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid template id")
	}
	if err := h.uc.DeleteTemplate(c.Context(), callerID(c), id); err != nil {
		return h.fail(c, "delete template", err)
	}
	return c.SendStatus(http.StatusNoContent)
}
