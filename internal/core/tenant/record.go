package tenant

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/evorisgroup/chatbot-backend/internal/core/schedule"
)

// ErrNotFound is returned by a Store when no tenant has the client id.
var ErrNotFound = errors.New("tenant not found")

type Product struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Record is the read-only tenant profile used to answer chat messages.
// Every field is optional except ClientID.
type Record struct {
	ClientID     string `json:"client_id"`
	CompanyName  string `json:"company_name"`
	LogoURL      string `json:"logo_url"`
	PrimaryColor string `json:"primary_color"`
	CompanyInfo  string `json:"company_info"`

	Products  []Product `json:"products"`
	Currency  string    `json:"currency"`
	Locations []string  `json:"locations"`
	FAQs      []FAQ     `json:"faqs"`
	Services  []string  `json:"services"`

	PhoneNumber  string `json:"phone_number"`
	ContactEmail string `json:"contact_email"`

	WeeklyHours schedule.Week        `json:"weekly_hours"`
	Holidays    schedule.HolidayRule `json:"holiday_rules"`

	PricingPolicy  string `json:"pricing_policy"`
	RefundsPolicy  string `json:"refunds_policy"`
	PaymentMethods string `json:"payment_methods"`

	Timezone string `json:"timezone"`
}

// Location resolves the tenant's timezone, falling back to fallback and
// then UTC when the name is empty or unknown.
func (r *Record) Location(fallback *time.Location) *time.Location {
	if name := strings.TrimSpace(r.Timezone); name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	if fallback != nil {
		return fallback
	}
	return time.UTC
}

// Store loads tenant records by client id.
type Store interface {
	FetchTenant(ctx context.Context, clientID string) (*Record, error)
}
