package handlers_fiber

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// PostStripeWebhook verifies and applies a Stripe event. Non-2xx makes Stripe retry.
func (h *Handler) PostStripeWebhook(c *fiber.Ctx) error {
	payload := append([]byte(nil), c.Body()...)
	if err := h.uc.ProcessWebhook(c.Context(), payload, c.Get("Stripe-Signature")); err != nil {
		return h.fail(c, "stripe webhook", err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"received": true})
}
