package models

import "github.com/evorisgroup/chatbot-backend/internal/core/tenant"

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Message  string `json:"message" validate:"required"`
	ClientID string `json:"client_id" validate:"required"`
}

// ChatResponse always carries a non-empty reply.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// ClientData is the branding projection served to the widget.
type ClientData struct {
	ClientID     string `json:"client_id"`
	CompanyName  string `json:"company_name"`
	LogoURL      string `json:"logo_url"`
	PrimaryColor string `json:"primary_color"`
	PhoneNumber  string `json:"phone_number"`
}

// ErrorResponse is returned by non-chat endpoints on failure.
type ErrorResponse struct {
	Error string `json:"error"`
}

func NewClientData(rec *tenant.Record) ClientData {
	return ClientData{
		ClientID:     rec.ClientID,
		CompanyName:  rec.CompanyName,
		LogoURL:      rec.LogoURL,
		PrimaryColor: rec.PrimaryColor,
		PhoneNumber:  rec.PhoneNumber,
	}
}
