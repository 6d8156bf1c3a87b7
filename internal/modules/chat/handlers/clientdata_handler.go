package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/skip2/go-qrcode"

	"github.com/evorisgroup/chatbot-backend/internal/core/tenant"
	"github.com/evorisgroup/chatbot-backend/internal/modules/chat/models"
)

const qrSize = 256

// TenantLookup is satisfied by services.ChatService.
type TenantLookup interface {
	Tenant(ctx context.Context, clientID string) (*tenant.Record, error)
}

type ClientDataHandler struct {
	tenants TenantLookup
}

func NewClientDataHandler(tenants TenantLookup) *ClientDataHandler {
	return &ClientDataHandler{tenants: tenants}
}

// GetClientData godoc
// @Summary Get widget branding
// @Description Returns the branding fields the widget needs for a client
// @Tags Clients
// @Produce json
// @Param client_id query string true "Client ID"
// @Success 200 {object} models.ClientData
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /clientdata [get]
func (h *ClientDataHandler) GetClientData(c *fiber.Ctx) error {
	rec, ferr := h.lookup(c)
	if ferr != nil {
		return errorJSON(c, ferr)
	}
	return c.JSON(models.NewClientData(rec))
}

// GetPhoneQR godoc
// @Summary Get call QR code
// @Description Returns a PNG QR code that dials the client's phone number
// @Tags Clients
// @Produce png
// @Param client_id query string true "Client ID"
// @Success 200 {file} binary
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /clientdata/qr [get]
func (h *ClientDataHandler) GetPhoneQR(c *fiber.Ctx) error {
	rec, ferr := h.lookup(c)
	if ferr != nil {
		return errorJSON(c, ferr)
	}
	dial := telLink(rec.PhoneNumber)
	if dial == "" {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{Error: "client has no phone number"})
	}

	png, err := qrcode.Encode(dial, qrcode.Medium, qrSize)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to render QR code")
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}

func (h *ClientDataHandler) lookup(c *fiber.Ctx) (*tenant.Record, *fiber.Error) {
	clientID := strings.TrimSpace(c.Query("client_id"))
	if clientID == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "client_id is required")
	}

	rec, err := h.tenants.Tenant(c.UserContext(), clientID)
	switch {
	case errors.Is(err, tenant.ErrNotFound):
		return nil, fiber.NewError(fiber.StatusNotFound, "client not found")
	case err != nil:
		log.Error().Err(err).Str("client_id", clientID).Msg("❌ Failed to load client data")
		return nil, fiber.NewError(fiber.StatusInternalServerError, "internal server error")
	}
	return rec, nil
}

func errorJSON(c *fiber.Ctx, e *fiber.Error) error {
	return c.Status(e.Code).JSON(models.ErrorResponse{Error: e.Message})
}

// telLink keeps the leading plus and the digits of phone.
func telLink(phone string) string {
	var b strings.Builder
	for i, r := range strings.TrimSpace(phone) {
		if (r >= '0' && r <= '9') || (r == '+' && i == 0) {
			b.WriteRune(r)
		}
	}
	digits := strings.TrimPrefix(b.String(), "+")
	if digits == "" {
		return ""
	}
	return "tel:" + b.String()
}
