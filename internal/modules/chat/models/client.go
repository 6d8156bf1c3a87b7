package models

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"

	"github.com/evorisgroup/chatbot-backend/internal/core/schedule"
	"github.com/evorisgroup/chatbot-backend/internal/core/tenant"
)

// Client is one tenant row. Rows are written by onboarding; the chat path
// only reads them.
type Client struct {
	ClientID     string `json:"client_id" gorm:"type:varchar(128);primaryKey"`
	CompanyName  string `json:"company_name" gorm:"type:varchar(255)"`
	LogoURL      string `json:"logo_url" gorm:"type:text"`
	PrimaryColor string `json:"primary_color" gorm:"type:varchar(32)"`
	CompanyInfo  string `json:"company_info" gorm:"type:text"`

	Products  datatypes.JSON `json:"products" gorm:"type:jsonb;default:'[]'"`
	Currency  string         `json:"currency" gorm:"type:varchar(3)"`
	Locations pq.StringArray `json:"locations" gorm:"type:text[]"`
	FAQs      datatypes.JSON `json:"faqs" gorm:"column:faqs;type:jsonb;default:'[]'"`
	Services  pq.StringArray `json:"services" gorm:"type:text[]"`

	PhoneNumber  string `json:"phone_number" gorm:"type:varchar(64)"`
	ContactEmail string `json:"contact_email" gorm:"type:varchar(255)"`

	WeeklyHours  datatypes.JSON `json:"weekly_hours" gorm:"type:jsonb"`
	HolidayRules datatypes.JSON `json:"holiday_rules" gorm:"type:jsonb"`

	PricingPolicy  string `json:"pricing_policy" gorm:"type:text"`
	RefundsPolicy  string `json:"refunds_policy" gorm:"type:text"`
	PaymentMethods string `json:"payment_methods" gorm:"type:text"`
	Timezone       string `json:"timezone" gorm:"type:varchar(64)"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for Client
func (Client) TableName() string {
	return "clients"
}

// ToRecord converts the row into the domain record. Malformed JSON columns
// become empty values.
func (c *Client) ToRecord() *tenant.Record {
	rec := &tenant.Record{
		ClientID:       c.ClientID,
		CompanyName:    c.CompanyName,
		LogoURL:        c.LogoURL,
		PrimaryColor:   c.PrimaryColor,
		CompanyInfo:    c.CompanyInfo,
		Currency:       c.Currency,
		Locations:      []string(c.Locations),
		Services:       []string(c.Services),
		PhoneNumber:    c.PhoneNumber,
		ContactEmail:   c.ContactEmail,
		PricingPolicy:  c.PricingPolicy,
		RefundsPolicy:  c.RefundsPolicy,
		PaymentMethods: c.PaymentMethods,
		Timezone:       c.Timezone,
	}

	rec.Products = decodeProducts(c.Products)
	decodeList(c.FAQs, &rec.FAQs)
	rec.WeeklyHours = schedule.NormalizeWeek([]byte(c.WeeklyHours))
	rec.Holidays = schedule.ParseHolidayRule([]byte(c.HolidayRules))

	return rec
}

func decodeList[T any](raw datatypes.JSON, dst *[]T) {
	if len(raw) == 0 {
		return
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return
	}
	*dst = out
}

// decodeProducts keeps every entry with a name. Prices may be numbers or
// numeric strings such as "$25.00"; anything else is treated as unpriced.
func decodeProducts(raw datatypes.JSON) []tenant.Product {
	var items []map[string]any
	decodeList(raw, &items)

	var out []tenant.Product
	for _, item := range items {
		name, _ := item["name"].(string)
		if strings.TrimSpace(name) == "" {
			continue
		}
		out = append(out, tenant.Product{Name: name, Price: priceOf(item["price"])})
	}
	return out
}

func priceOf(v any) float64 {
	switch p := v.(type) {
	case float64:
		return p
	case string:
		f, err := strconv.ParseFloat(strings.TrimLeft(strings.TrimSpace(p), "$€£"), 64)
		if err == nil {
			return f
		}
	}
	return 0
}
