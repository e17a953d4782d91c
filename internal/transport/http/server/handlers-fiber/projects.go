package handlers_fiber

import (
	"net/http"

	"github.com/RoyKeane94/toad/internal/entities"
	"github.com/RoyKeane94/toad/internal/mapper"
	"github.com/RoyKeane94/toad/internal/transport/http/dto"

	"github.com/gofiber/fiber/v2"
)

// PostProject creates a project grid.
func (h *Handler) PostProject(c *fiber.Ctx) error {
	var body dto.CreateProjectRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}

	grid, err := h.uc.CreateProject(c.Context(), callerID(c), body.Title, body.Rows, body.Columns)
	if err != nil {
		return h.fail(c, "create project", err)
	}
	return c.Status(http.StatusCreated).JSON(mapper.ToGrid(*grid))
}

// GetProjects lists the caller's own and shared projects.
func (h *Handler) GetProjects(c *fiber.Ctx) error {
	projects, err := h.uc.ListProjects(c.Context(), callerID(c), c.QueryBool("archived", false))
	if err != nil {
		return h.fail(c, "list projects", err)
	}
	return c.Status(http.StatusOK).JSON(struct {
		Projects []dto.Project `json:"projects"`
	}{Projects: mapper.ToProjects(projects)})
}

// GetProject returns the full grid.
func (h *Handler) GetProject(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid project id")
	}
	grid, err := h.uc.Grid(c.Context(), callerID(c), id)
	if err != nil {
		return h.fail(c, "get grid", err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToGrid(*grid))
}

// PatchProject renames a project.
func (h *Handler) PatchProject(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid project id")
	}
	var body dto.TitleRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}

	project, err := h.uc.RenameProject(c.Context(), callerID(c), id, body.Title)
	if err != nil {
		return h.fail(c, "rename project", err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToProject(*project))
}

// DeleteProject removes a project.
func (h *Handler) DeleteProject(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid project id")
	}
	if err := h.uc.DeleteProject(c.Context(), callerID(c), id); err != nil {
		return h.fail(c, "delete project", err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// PostArchive archives or restores a project; the body defaults to archiving.
func (h *Handler) PostArchive(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid project id")
	}
	archived := true
	if len(c.Body()) > 0 {
		var body dto.ArchiveRequest
		if err := c.BodyParser(&body); err != nil {
			return badRequest(c, "invalid body")
		}
		if body.Archived != nil {
			archived = *body.Archived
		}
	}

	project, err := h.uc.ArchiveProject(c.Context(), callerID(c), id, archived)
	if err != nil {
		return h.fail(c, "archive project", err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToProject(*project))
}

// PostShare shares a project with the caller's group.
func (h *Handler) PostShare(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid project id")
	}
	project, err := h.uc.ShareProject(c.Context(), callerID(c), id)
	if err != nil {
		return h.fail(c, "share project", err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToProject(*project))
}

// PostUnshare makes a project private.
func (h *Handler) PostUnshare(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid project id")
	}
	project, err := h.uc.UnshareProject(c.Context(), callerID(c), id)
	if err != nil {
		return h.fail(c, "unshare project", err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToProject(*project))
}

// PostClone copies a project.
func (h *Handler) PostClone(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid project id")
	}
	var body dto.CloneRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return badRequest(c, "invalid body")
		}
	}

	grid, err := h.uc.CloneProject(c.Context(), callerID(c), id, entities.CloneMode(body.Mode), body.Title)
	if err != nil {
		return h.fail(c, "clone project", err)
	}
	return c.Status(http.StatusCreated).JSON(mapper.ToGrid(*grid))
}

// PostSaveTemplate saves a project layout as a personal template.
func (h *Handler) PostSaveTemplate(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid project id")
	}
	var body dto.SaveTemplateRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return badRequest(c, "invalid body")
		}
	}

	tpl, err := h.uc.SaveTemplate(c.Context(), callerID(c), id, body.Name)
	if err != nil {
		return h.fail(c, "save template", err)
	}
	return c.Status(http.StatusCreated).JSON(mapper.ToTemplate(*tpl))
}

// PostClearCompleted removes done tasks.
func (h *Handler) PostClearCompleted(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid project id")
	}
	n, err := h.uc.ClearCompleted(c.Context(), callerID(c), id)
	if err != nil {
		return h.fail(c, "clear completed", err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"removed": n})
}
