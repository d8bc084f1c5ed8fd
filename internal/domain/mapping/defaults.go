package mapping

// Provider identifiers for the default mapping catalog.
const (
	// ProviderSalesforce is the Salesforce CRM
	ProviderSalesforce = "salesforce"
	// ProviderHubspot is the HubSpot CRM
	ProviderHubspot = "hubspot"
	// ProviderStripe is the Stripe payment platform
	ProviderStripe = "stripe"
	// ProviderQuickbooks is the QuickBooks accounting system
	ProviderQuickbooks = "quickbooks"
	// ProviderGoogleCalendar is the Google Calendar service
	ProviderGoogleCalendar = "google-calendar"
)

// DefaultMappingRules returns the seed rules loaded at process start.
// The list is data, not logic: ids are stable so re-seeding with
// add-if-absent semantics never duplicates a rule, and transforms are
// referenced by name and resolved against the transform registry when the
// catalog is loaded.
func DefaultMappingRules() []*MappingRule {
	rules := []*MappingRule{
		{
			ID:           "salesforce-account-to-customer",
			Name:         "Salesforce Account to Customer",
			Description:  "Maps Salesforce CRM accounts to internal customers",
			Provider:     ProviderSalesforce,
			SourceEntity: "Account",
			TargetEntity: "Customer",
			Enabled:      true,
			FieldMappings: []FieldMapping{
				{Source: "Id", Target: "externalId", Required: true},
				{Source: "Name", Target: "companyName", Required: true},
				{Source: "Phone", Target: "phone"},
				{Source: "Website", Target: "website"},
				{Source: "Industry", Target: "industry"},
				{Source: "AnnualRevenue", Target: "annualRevenue", TransformName: TransformParseFloat},
				{Source: "NumberOfEmployees", Target: "employeeCount", TransformName: TransformParseInt},
				{Source: "BillingStreet", Target: "address.street"},
				{Source: "BillingCity", Target: "address.city"},
				{Source: "BillingState", Target: "address.state"},
				{Source: "BillingPostalCode", Target: "address.postalCode"},
				{Source: "BillingCountry", Target: "address.country", Default: "US"},
			},
		},
		{
			ID:           "salesforce-contact-to-contact",
			Name:         "Salesforce Contact to Company Contact",
			Description:  "Maps Salesforce CRM contacts to internal company contacts",
			Provider:     ProviderSalesforce,
			SourceEntity: "Contact",
			TargetEntity: "Contact",
			Enabled:      true,
			FieldMappings: []FieldMapping{
				{Source: "Id", Target: "externalId", Required: true},
				{Source: "LastName", Target: "lastName", Required: true},
				{Source: "FirstName", Target: "firstName"},
				{Source: "Email", Target: "email", TransformName: TransformLowercase},
				{Source: "Phone", Target: "phone"},
				{Source: "Title", Target: "jobTitle"},
				{Source: "AccountId", Target: "customerExternalId"},
			},
		},
		{
			ID:           "hubspot-company-to-customer",
			Name:         "HubSpot Company to Customer",
			Description:  "Maps HubSpot companies in the customer lifecycle stage to internal customers",
			Provider:     ProviderHubspot,
			SourceEntity: "Company",
			TargetEntity: "Customer",
			Enabled:      true,
			FieldMappings: []FieldMapping{
				{Source: "id", Target: "externalId", Required: true},
				{Source: "properties.name", Target: "companyName", Required: true},
				{Source: "properties.domain", Target: "website"},
				{Source: "properties.phone", Target: "phone"},
				{Source: "properties.city", Target: "address.city"},
				{Source: "properties.state", Target: "address.state"},
				{Source: "properties.annualrevenue", Target: "annualRevenue", TransformName: TransformParseFloat},
			},
			Conditions: []Condition{
				{Field: "properties.lifecyclestage", Operator: OperatorEquals, Value: "customer"},
			},
		},
		{
			ID:           "stripe-customer-to-customer",
			Name:         "Stripe Customer to Customer",
			Description:  "Maps Stripe customers to internal customers",
			Provider:     ProviderStripe,
			SourceEntity: "Customer",
			TargetEntity: "Customer",
			Enabled:      true,
			FieldMappings: []FieldMapping{
				{Source: "id", Target: "externalId", Required: true},
				{Source: "name", Target: "companyName"},
				{Source: "email", Target: "email", TransformName: TransformLowercase},
				{Source: "phone", Target: "phone"},
				{Source: "currency", Target: "currency", Default: "usd"},
				{Source: "balance", Target: "accountBalance", TransformName: TransformParseDecimal},
				{Source: "created", Target: "externalCreatedAt", TransformName: TransformUnixTimestamp},
				{Source: "address.city", Target: "address.city"},
				{Source: "address.country", Target: "address.country"},
			},
		},
		{
			ID:           "stripe-invoice-to-invoice",
			Name:         "Stripe Invoice to Invoice",
			Description:  "Maps Stripe invoices to internal invoices",
			Provider:     ProviderStripe,
			SourceEntity: "Invoice",
			TargetEntity: "Invoice",
			Enabled:      true,
			FieldMappings: []FieldMapping{
				{Source: "id", Target: "externalId", Required: true},
				{Source: "customer", Target: "customerExternalId", Required: true},
				{Source: "status", Target: "status"},
				{Source: "currency", Target: "currency", Default: "usd"},
				{Source: "amount_due", Target: "amountDue", TransformName: TransformParseDecimal},
				{Source: "amount_paid", Target: "amountPaid", TransformName: TransformParseDecimal},
				{Source: "created", Target: "issuedAt", TransformName: TransformUnixTimestamp},
				{Source: "due_date", Target: "dueAt", TransformName: TransformUnixTimestamp},
			},
		},
		{
			ID:           "quickbooks-customer-to-customer",
			Name:         "QuickBooks Customer to Customer",
			Description:  "Maps QuickBooks customers to internal customers",
			Provider:     ProviderQuickbooks,
			SourceEntity: "Customer",
			TargetEntity: "Customer",
			Enabled:      true,
			FieldMappings: []FieldMapping{
				{Source: "Id", Target: "externalId", Required: true},
				{Source: "DisplayName", Target: "companyName", Required: true},
				{Source: "PrimaryEmailAddr.Address", Target: "email", TransformName: TransformLowercase},
				{Source: "PrimaryPhone.FreeFormNumber", Target: "phone"},
				{Source: "Balance", Target: "outstandingBalance", TransformName: TransformParseDecimal},
				{Source: "BillAddr.Line1", Target: "address.street"},
				{Source: "BillAddr.City", Target: "address.city"},
				{Source: "BillAddr.CountrySubDivisionCode", Target: "address.state"},
				{Source: "BillAddr.PostalCode", Target: "address.postalCode"},
			},
		},
		{
			ID:           "google-calendar-event-to-appointment",
			Name:         "Google Calendar Event to Appointment",
			Description:  "Maps non-cancelled Google Calendar events to internal appointments",
			Provider:     ProviderGoogleCalendar,
			SourceEntity: "Event",
			TargetEntity: "Appointment",
			Enabled:      true,
			FieldMappings: []FieldMapping{
				{Source: "id", Target: "externalId", Required: true},
				{Source: "summary", Target: "title", Required: true},
				{Source: "description", Target: "notes"},
				{Source: "location", Target: "location"},
				{Source: "start.dateTime", Target: "startsAt"},
				{Source: "end.dateTime", Target: "endsAt"},
				{Source: "organizer.email", Target: "organizerEmail", TransformName: TransformLowercase},
			},
			Conditions: []Condition{
				{Field: "status", Operator: OperatorNotEquals, Value: "cancelled"},
			},
		},
	}
	return rules
}
