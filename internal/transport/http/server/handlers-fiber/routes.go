package handlers_fiber

import (
	"github.com/gofiber/fiber/v2"
)

// Guards are the middlewares protecting API routes. Nil guards are skipped.
type Guards struct {
	Auth      fiber.Handler
	RateLimit fiber.Handler
	Staff     fiber.Handler
}

// Register mounts every route on app.
func (h *Handler) Register(app fiber.Router, g Guards) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/unsubscribe/:token", h.GetUnsubscribe)
	app.Post("/webhooks/stripe", h.PostStripeWebhook)
	app.Post("/api/verify", h.PostVerify)

	api := app.Group("/api", skipNil(g.Auth, g.RateLimit)...)

	api.Get("/me", h.GetMe)
	api.Post("/me/trial", h.PostTrial)

	api.Post("/projects", h.PostProject)
	api.Get("/projects", h.GetProjects)
	api.Get("/projects/:id", h.GetProject)
	api.Patch("/projects/:id", h.PatchProject)
	api.Delete("/projects/:id", h.DeleteProject)
	api.Post("/projects/:id/archive", h.PostArchive)
	api.Post("/projects/:id/share", h.PostShare)
	api.Post("/projects/:id/unshare", h.PostUnshare)
	api.Post("/projects/:id/clone", h.PostClone)
	api.Post("/projects/:id/template", h.PostSaveTemplate)
	api.Post("/projects/:id/clear", h.PostClearCompleted)
	api.Post("/projects/:id/headers", h.PostHeader)
	api.Post("/projects/:id/tasks", h.PostTask)

	api.Patch("/headers/:id", h.PatchHeader)
	api.Delete("/headers/:id", h.DeleteHeader)
	api.Post("/headers/:id/move", h.PostMoveHeader)

	api.Patch("/tasks/:id", h.PatchTask)
	api.Delete("/tasks/:id", h.DeleteTask)
	api.Post("/tasks/:id/move", h.PostMoveTask)

	api.Get("/templates", h.GetTemplates)
	api.Post("/templates/:id/instantiate", h.PostInstantiate)
	api.Delete("/templates/:id", h.DeleteTemplate)

	api.Post("/groups", append(skipNil(g.Staff), h.PostGroup)...)
	api.Get("/groups/:id", h.GetGroup)
	api.Put("/groups/:id/seats", append(skipNil(g.Staff), h.PutSeats)...)
	api.Post("/groups/:id/invitations", h.PostInvitation)
	api.Delete("/groups/:id/invitations/:inv", h.DeleteInvitation)
	api.Delete("/groups/:id/members/:user", h.DeleteMember)
	api.Post("/invitations/:token/accept", h.PostAcceptInvitation)
	api.Post("/invitations/:token/decline", h.PostDeclineInvitation)

	crm := api.Group("/crm", skipNil(g.Staff)...)
	crm.Post("/companies", h.PostCompany)
	crm.Get("/companies", h.GetCompanies)
	crm.Post("/leads", h.PostLead)
	crm.Get("/leads", h.GetLeads)
	crm.Get("/leads/export", h.GetLeadsExport)
	crm.Post("/leads/:id/status", h.PostLeadStatus)
	crm.Post("/templates", h.PostEmailTemplate)
	crm.Get("/templates", h.GetEmailTemplates)
	crm.Post("/campaigns", h.PostCampaign)
}

func skipNil(handlers ...fiber.Handler) []fiber.Handler {
	res := make([]fiber.Handler, 0, len(handlers))
	for _, h := range handlers {
		if h != nil {
			res = append(res, h)
		}
	}
	return res
}
