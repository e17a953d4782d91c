package handlers_fiber

import (
	"net/http"

	"github.com/RoyKeane94/toad/internal/entities"
	"github.com/RoyKeane94/toad/internal/mapper"
	"github.com/RoyKeane94/toad/internal/transport/http/dto"

	"github.com/gofiber/fiber/v2"
)

// PostHeader appends a row or column.
func (h *Handler) PostHeader(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid project id")
	}
	var body dto.HeaderRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}

	header, err := h.uc.AddHeader(c.Context(), callerID(c), id, entities.HeaderKind(body.Kind), body.Title)
	if err != nil {
		return h.fail(c, "add header", err)
	}
	return c.Status(http.StatusCreated).JSON(mapper.ToHeader(*header))
}

// PatchHeader renames a header.
func (h *Handler) PatchHeader(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid header id")
	}
	var body dto.TitleRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}

	header, err := h.uc.RenameHeader(c.Context(), callerID(c), id, body.Title)
	if err != nil {
		return h.fail(c, "rename header", err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToHeader(*header))
}

// DeleteHeader removes a header with its tasks.
func (h *Handler) DeleteHeader(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid header id")
	}
	if err := h.uc.DeleteHeader(c.Context(), callerID(c), id); err != nil {
		return h.fail(c, "delete header", err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// PostMoveHeader reorders a header and returns the headers of its kind.
func (h *Handler) PostMoveHeader(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid header id")
	}
	var body dto.MoveHeaderRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}

	headers, err := h.uc.MoveHeader(c.Context(), callerID(c), id, body.Index)
	if err != nil {
		return h.fail(c, "move header", err)
	}
	return c.Status(http.StatusOK).JSON(struct {
		Headers []dto.Header `json:"headers"`
	}{Headers: mapper.ToHeaders(headers)})
}

// PostTask adds a task to a cell.
func (h *Handler) PostTask(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid project id")
	}
	var body dto.TaskRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}

	task, err := h.uc.AddTask(c.Context(), callerID(c), entities.Task{
		ProjectID: id,
		RowID:     body.RowID,
		ColumnID:  body.ColumnID,
		Text:      body.Text,
	})
	if err != nil {
		return h.fail(c, "add task", err)
	}
	return c.Status(http.StatusCreated).JSON(mapper.ToTask(*task))
}

// PatchTask edits text and/or done flag.
func (h *Handler) PatchTask(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid task id")
	}
	var body dto.UpdateTaskRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}

	task, err := h.uc.UpdateTask(c.Context(), callerID(c), id, body.Text, body.Done)
	if err != nil {
		return h.fail(c, "update task", err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToTask(*task))
}

// DeleteTask removes a task.
func (h *Handler) DeleteTask(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid task id")
	}
	if err := h.uc.DeleteTask(c.Context(), callerID(c), id); err != nil {
		return h.fail(c, "delete task", err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// PostMoveTask moves a task to another cell or position.
func (h *Handler) PostMoveTask(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid task id")
	}
	var body dto.MoveTaskRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}

	task, err := h.uc.MoveTask(c.Context(), callerID(c), id, body.RowID, body.ColumnID, body.Index)
	if err != nil {
		return h.fail(c, "move task", err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToTask(*task))
}
