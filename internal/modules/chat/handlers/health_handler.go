package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// ProviderNamer reports the configured language model provider.
type ProviderNamer interface {
	GetProviderName() string
}

type HealthHandler struct {
	provider ProviderNamer
	strategy string
}

// NewHealthHandler accepts a nil provider when no language model is
// configured.
func NewHealthHandler(provider ProviderNamer, strategy string) *HealthHandler {
	return &HealthHandler{provider: provider, strategy: strategy}
}

// GetHealth godoc
// @Summary Service health check
// @Description Check if API is alive
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) GetHealth(c *fiber.Ctx) error {
	provider := "none"
	if h.provider != nil {
		provider = h.provider.GetProviderName()
	}
	return c.JSON(fiber.Map{
		"status":     "ok",
		"service":    "chat-api",
		"provider":   provider,
		"classifier": h.strategy,
	})
}
