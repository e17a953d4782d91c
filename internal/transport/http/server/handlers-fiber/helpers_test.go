package handlers_fiber

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/RoyKeane94/toad/internal/entities"
	"github.com/RoyKeane94/toad/internal/transport/http/dto"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestWriteErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   dto.ErrorCode
	}{
		{"invalid", fmt.Errorf("%w: title is required", entities.ErrInvalidArgument), http.StatusBadRequest, dto.CodeInvalidArgument},
		{"forbidden", entities.ErrForbidden, http.StatusForbidden, dto.CodeForbidden},
		{"project", entities.ErrProjectNotFound, http.StatusNotFound, dto.CodeNotFound},
		{"lead", entities.ErrLeadNotFound, http.StatusNotFound, dto.CodeNotFound},
		{"lead_exists", entities.ErrLeadExists, http.StatusConflict, dto.CodeConflict},
		{"tier", entities.ErrTierLimit, http.StatusPaymentRequired, dto.CodeTierLimit},
		{"seats", entities.ErrNoSeats, http.StatusConflict, dto.CodeNoSeats},
		{"inactive", entities.ErrGroupInactive, http.StatusConflict, dto.CodeGroupInactive},
		{"closed", entities.ErrInvitationClosed, http.StatusGone, dto.CodeInvitationClosed},
		{"transition", entities.ErrInvalidTransition, http.StatusConflict, dto.CodeInvalidTransition},
		{"internal", fmt.Errorf("pgx: connection reset"), http.StatusInternalServerError, dto.CodeInternal},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return writeError(c, tt.err)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			require.Equal(t, tt.status, resp.StatusCode)

			var body dto.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			require.Equal(t, tt.code, body.Error.Code)
		})
	}
}

func TestWriteErrorHidesInternalDetails(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return writeError(c, fmt.Errorf("dial tcp 10.0.0.3:5432: refused"))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "internal error", body.Error.Message)
}
