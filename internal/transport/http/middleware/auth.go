package middleware

import (
	"strings"

	"github.com/RoyKeane94/toad/internal/auth"
	"github.com/RoyKeane94/toad/internal/transport/http/dto"

	"github.com/gofiber/fiber/v2"
)

const (
	localUserID = "user_id"
	localStaff  = "staff"
)

// TokenParser turns a bearer token into the caller identity.
type TokenParser interface {
	Parse(token string) (auth.Identity, error)
}

// Auth requires a valid bearer token and stores the caller in locals.
func Auth(parser TokenParser) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Error(dto.CodeUnauthorized, "missing bearer token"))
		}
		id, err := parser.Parse(strings.TrimSpace(token))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Error(dto.CodeUnauthorized, "invalid token"))
		}
		c.Locals(localUserID, id.UserID)
		c.Locals(localStaff, id.Staff)
		return c.Next()
	}
}

// RequireStaff lets only staff callers through.
func RequireStaff() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if staff, _ := c.Locals(localStaff).(bool); !staff {
			return c.Status(fiber.StatusForbidden).JSON(dto.Error(dto.CodeForbidden, "staff only"))
		}
		return c.Next()
	}
}

// UserID returns the authenticated caller id.
func UserID(c *fiber.Ctx) (string, bool) {
	id, ok := c.Locals(localUserID).(string)
	return id, ok && id != ""
}
