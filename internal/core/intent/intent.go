package intent

// Intent is one tag of the closed classification set.
type Intent string

const (
	GeneralHours     Intent = "GENERAL_HOURS"
	TodayHours       Intent = "TODAY_HOURS"
	OpenNow          Intent = "OPEN_NOW"
	NextOpenTime     Intent = "NEXT_OPEN_TIME"
	DaySpecificHours Intent = "DAY_SPECIFIC_HOURS"
	HolidayHours     Intent = "HOLIDAY_HOURS"

	ContactPhone   Intent = "CONTACT_PHONE"
	ContactEmail   Intent = "CONTACT_EMAIL"
	ContactMethods Intent = "CONTACT_METHODS"

	AppointmentHow    Intent = "APPOINTMENT_HOW"
	AppointmentWhen   Intent = "APPOINTMENT_WHEN"
	AppointmentOnline Intent = "APPOINTMENT_ONLINE"

	PricingGeneral  Intent = "PRICING_GENERAL"
	PricingEstimate Intent = "PRICING_ESTIMATE"
	PaymentMethods  Intent = "PAYMENT_METHODS"
	RefundsPolicies Intent = "REFUNDS_POLICIES"

	ServicesList     Intent = "SERVICES_LIST"
	ServiceSpecific  Intent = "SERVICE_SPECIFIC"
	EmergencyService Intent = "EMERGENCY_SERVICE"

	LocationsList    Intent = "LOCATIONS_LIST"
	ServiceAreaCheck Intent = "SERVICE_AREA_CHECK"
	RemoteService    Intent = "REMOTE_SERVICE"

	CompanyOverview Intent = "COMPANY_OVERVIEW"
	CompanyHistory  Intent = "COMPANY_HISTORY"
	LicensesCerts   Intent = "LICENSES_CERTS"
	Insurance       Intent = "INSURANCE"

	FAQMatch Intent = "FAQ_MATCH"
	Unknown  Intent = "UNKNOWN_INTENT"
)

var all = []Intent{
	GeneralHours, TodayHours, OpenNow, NextOpenTime, DaySpecificHours, HolidayHours,
	ContactPhone, ContactEmail, ContactMethods,
	AppointmentHow, AppointmentWhen, AppointmentOnline,
	PricingGeneral, PricingEstimate, PaymentMethods, RefundsPolicies,
	ServicesList, ServiceSpecific, EmergencyService,
	LocationsList, ServiceAreaCheck, RemoteService,
	CompanyOverview, CompanyHistory, LicensesCerts, Insurance,
	FAQMatch, Unknown,
}

// All returns every intent in declaration order.
func All() []Intent {
	out := make([]Intent, len(all))
	copy(out, all)
	return out
}

// Parse maps a tag name onto an Intent.
func Parse(name string) (Intent, bool) {
	for _, in := range all {
		if string(in) == name {
			return in, true
		}
	}
	return Unknown, false
}

// Family groups related intents.
type Family string

const (
	FamilyUnset        Family = ""
	FamilyHours        Family = "hours"
	FamilyContact      Family = "contact"
	FamilyAppointments Family = "appointments"
	FamilyPricing      Family = "pricing"
	FamilyServices     Family = "services"
	FamilyLocations    Family = "locations"
	FamilyCompany      Family = "company"
	FamilyOther        Family = "other"
)

// Family returns the group an intent belongs to.
func (i Intent) Family() Family {
	switch i {
	case GeneralHours, TodayHours, OpenNow, NextOpenTime, DaySpecificHours, HolidayHours:
		return FamilyHours
	case ContactPhone, ContactEmail, ContactMethods:
		return FamilyContact
	case AppointmentHow, AppointmentWhen, AppointmentOnline:
		return FamilyAppointments
	case PricingGeneral, PricingEstimate, PaymentMethods, RefundsPolicies:
		return FamilyPricing
	case ServicesList, ServiceSpecific, EmergencyService:
		return FamilyServices
	case LocationsList, ServiceAreaCheck, RemoteService:
		return FamilyLocations
	case CompanyOverview, CompanyHistory, LicensesCerts, Insurance:
		return FamilyCompany
	case FAQMatch, Unknown:
		return FamilyOther
	}
	return FamilyUnset
}

// Route says how the composer answers an intent.
type Route int

const (
	RouteUnset Route = iota
	// RouteDeterministic intents are always answered from a template.
	RouteDeterministic
	// RouteWhenKnown intents use a template only when the tenant record
	// holds the requested fact, otherwise they are delegated.
	RouteWhenKnown
	// RouteDelegated intents always go to the language model.
	RouteDelegated
)

func (r Route) String() string {
	switch r {
	case RouteDeterministic:
		return "deterministic"
	case RouteWhenKnown:
		return "when_known"
	case RouteDelegated:
		return "delegated"
	}
	return "unset"
}

// Route returns the answering strategy for the intent. Adding an intent
// without a case here fails TestEveryIntentHasRoute.
func (i Intent) Route() Route {
	switch i {
	case GeneralHours, TodayHours, OpenNow, NextOpenTime, DaySpecificHours,
		ContactPhone, ContactEmail, ContactMethods,
		PricingGeneral, ServicesList, LocationsList, CompanyOverview, FAQMatch:
		return RouteDeterministic
	case HolidayHours, PaymentMethods, RefundsPolicies, ServiceSpecific:
		return RouteWhenKnown
	case AppointmentHow, AppointmentWhen, AppointmentOnline,
		PricingEstimate, EmergencyService, ServiceAreaCheck, RemoteService,
		CompanyHistory, LicensesCerts, Insurance, Unknown:
		return RouteDelegated
	}
	return RouteUnset
}

// CallRelevant reports whether suggesting a phone call can help with the
// intent.
func (i Intent) CallRelevant() bool {
	return i == PricingGeneral || i == AppointmentHow
}

// Params are the values extracted from a message.
type Params struct {
	Day      string `json:"day,omitempty"`
	Service  string `json:"service,omitempty"`
	Location string `json:"location,omitempty"`
}

// Constraints are the user's stated limits on what may be suggested.
type Constraints struct {
	AvoidPhone bool `json:"avoid_phone"`
	AvoidSales bool `json:"avoid_sales"`
}

// Merge ORs two constraint sets so a flag set by either source survives.
func (c Constraints) Merge(other Constraints) Constraints {
	return Constraints{
		AvoidPhone: c.AvoidPhone || other.AvoidPhone,
		AvoidSales: c.AvoidSales || other.AvoidSales,
	}
}

// Classification is the router's verdict for one message.
type Classification struct {
	Primary     Intent      `json:"primary_intent"`
	Secondary   Intent      `json:"secondary_intent,omitempty"`
	Params      Params      `json:"parameters"`
	Constraints Constraints `json:"constraints"`
}

// UnknownClassification is the fail-safe result.
func UnknownClassification() Classification {
	return Classification{Primary: Unknown}
}
