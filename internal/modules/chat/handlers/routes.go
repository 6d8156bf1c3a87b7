package handlers

import "github.com/gofiber/fiber/v2"

// Register mounts the chat routes at the root and again under /api, the two
// paths the widget is deployed against.
func Register(app fiber.Router, chat *ChatHandler, clientData *ClientDataHandler, health *HealthHandler) {
	app.Get("/health", health.GetHealth)

	for _, r := range []fiber.Router{app, app.Group("/api")} {
		r.Post("/chat", chat.PostChat)
		r.Get("/clientdata", clientData.GetClientData)
		r.Get("/clientdata/qr", clientData.GetPhoneQR)
	}
}
