package handlers_fiber

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/RoyKeane94/toad/internal/entities"
	"github.com/RoyKeane94/toad/internal/mapper"
	"github.com/RoyKeane94/toad/internal/transport/http/dto"

	"github.com/gofiber/fiber/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// PostCompany adds a CRM company.
func (h *Handler) PostCompany(c *fiber.Ctx) error {
	var body dto.CompanyRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}
	company, err := h.uc.CreateCompany(c.Context(), mapper.FromCompanyRequest(body))
	if err != nil {
		return h.fail(c, "create company", err)
	}
	return c.Status(http.StatusCreated).JSON(mapper.ToCompany(*company))
}

// GetCompanies lists CRM companies.
func (h *Handler) GetCompanies(c *fiber.Ctx) error {
	list, err := h.uc.ListCompanies(c.Context())
	if err != nil {
		return h.fail(c, "list companies", err)
	}
	return c.Status(http.StatusOK).JSON(struct {
		Companies []dto.Company `json:"companies"`
	}{Companies: mapper.ToCompanies(list)})
}

// PostLead adds a lead.
func (h *Handler) PostLead(c *fiber.Ctx) error {
	var body dto.LeadRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}
	lead, err := h.uc.CreateLead(c.Context(), mapper.FromLeadRequest(body))
	if err != nil {
		return h.fail(c, "create lead", err)
	}
	return c.Status(http.StatusCreated).JSON(mapper.ToLead(*lead))
}

// GetLeads lists leads filtered by kind, status and company_id.
func (h *Handler) GetLeads(c *fiber.Ctx) error {
	filter, err := leadFilter(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	list, err := h.uc.ListLeads(c.Context(), filter)
	if err != nil {
		return h.fail(c, "list leads", err)
	}
	return c.Status(http.StatusOK).JSON(struct {
		Leads []dto.Lead `json:"leads"`
	}{Leads: mapper.ToLeads(list)})
}

// GetLeadsExport downloads leads as an XLSX workbook.
func (h *Handler) GetLeadsExport(c *fiber.Ctx) error {
	filter, err := leadFilter(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	var buf bytes.Buffer
	n, err := h.uc.ExportLeads(c.Context(), filter, &buf)
	if err != nil {
		return h.fail(c, "export leads", err)
	}
	h.log.Infow("leads exported", "count", n, "user_id", callerID(c))

	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="leads.xlsx"`)
	return c.Status(http.StatusOK).Send(buf.Bytes())
}

// PostLeadStatus moves a lead through the pipeline.
func (h *Handler) PostLeadStatus(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid lead id")
	}
	var body dto.LeadStatusRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}

	lead, err := h.uc.UpdateLeadStatus(c.Context(), id, entities.LeadStatus(body.Status), body.Note)
	if err != nil {
		return h.fail(c, "update lead status", err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToLead(*lead))
}

// PostEmailTemplate adds an outreach template.
func (h *Handler) PostEmailTemplate(c *fiber.Ctx) error {
	var body dto.EmailTemplateRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}
	tpl, err := h.uc.CreateEmailTemplate(c.Context(), mapper.FromEmailTemplateRequest(body))
	if err != nil {
		return h.fail(c, "create email template", err)
	}
	return c.Status(http.StatusCreated).JSON(mapper.ToEmailTemplate(*tpl))
}

// GetEmailTemplates lists outreach templates.
func (h *Handler) GetEmailTemplates(c *fiber.Ctx) error {
	list, err := h.uc.ListEmailTemplates(c.Context())
	if err != nil {
		return h.fail(c, "list email templates", err)
	}
	return c.Status(http.StatusOK).JSON(struct {
		Templates []dto.EmailTemplate `json:"templates"`
	}{Templates: mapper.ToEmailTemplates(list)})
}

// PostCampaign runs an outreach campaign synchronously.
func (h *Handler) PostCampaign(c *fiber.Ctx) error {
	var body dto.CampaignRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}
	res, err := h.uc.SendCampaign(c.Context(), mapper.FromCampaignRequest(body))
	if err != nil {
		return h.fail(c, "send campaign", err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToCampaignResult(res))
}

// GetUnsubscribe opts a lead out of outreach. Public.
func (h *Handler) GetUnsubscribe(c *fiber.Ctx) error {
	lead, err := h.uc.Unsubscribe(c.Context(), c.Params("token"))
	if err != nil {
		return h.fail(c, "unsubscribe", err)
	}
	h.log.Infow("lead unsubscribed", "lead_id", lead.ID)
	return c.Status(http.StatusOK).SendString("You have been unsubscribed from Toad emails.")
}

func leadFilter(c *fiber.Ctx) (entities.LeadFilter, error) {
	var companyID *int64
	if raw := c.Query("company_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return entities.LeadFilter{}, fmt.Errorf("invalid company_id %q", raw)
		}
		companyID = &id
	}
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return entities.LeadFilter{}, fmt.Errorf("invalid limit %q", raw)
		}
		limit = n
	}
	return mapper.LeadFilter(c.Query("kind"), c.Query("status"), companyID, limit), nil
}
