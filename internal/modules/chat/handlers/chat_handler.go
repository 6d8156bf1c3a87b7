package handlers

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/evorisgroup/chatbot-backend/internal/core/composer"
	"github.com/evorisgroup/chatbot-backend/internal/modules/chat/models"
	"github.com/evorisgroup/chatbot-backend/internal/modules/chat/services"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type ChatHandler struct {
	chatService *services.ChatService
}

func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// PostChat godoc
// @Summary Answer a chat message
// @Description Returns the reply for one widget message. The reply is never empty.
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body models.ChatRequest true "Message and client id"
// @Success 200 {object} models.ChatResponse
// @Failure 400 {object} models.ChatResponse
// @Router /chat [post]
func (h *ChatHandler) PostChat(c *fiber.Ctx) error {
	var req models.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warn().Err(err).Msg("⚠️ Unreadable chat request")
		return invalidRequest(c)
	}
	req.Message = strings.TrimSpace(req.Message)
	req.ClientID = strings.TrimSpace(req.ClientID)
	if err := validate.Struct(req); err != nil {
		return invalidRequest(c)
	}

	ctx := services.WithRequestID(c.UserContext(), c.GetRespHeader(fiber.HeaderXRequestID))
	reply := h.chatService.Reply(ctx, req.ClientID, req.Message)
	return c.JSON(models.ChatResponse{Reply: reply.Text})
}

func invalidRequest(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(models.ChatResponse{Reply: composer.InvalidRequestReply})
}

// ErrorHandler is the last-resort fiber error handler. Chat routes still
// get a well-formed reply body.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	log.Error().Err(err).Str("path", c.Path()).Int("status", code).Msg("❌ Request failed")

	if code == fiber.StatusNotFound || code == fiber.StatusMethodNotAllowed {
		return c.Status(code).JSON(models.ErrorResponse{Error: err.Error()})
	}
	return c.Status(code).JSON(models.ChatResponse{Reply: composer.UnavailableReply})
}
