package reporting

import (
	"github.com/Julianb233/daily-event-insurance-sub010/internal/datasource"
	"github.com/Julianb233/daily-event-insurance-sub010/internal/export"
)

var partnerColumns = []export.Column[datasource.Partner]{
	{Header: "ID", Value: func(p datasource.Partner) any { return p.ID }},
	{Header: "Business Name", Value: func(p datasource.Partner) any { return p.BusinessName }},
	{Header: "Contact Name", Value: func(p datasource.Partner) any { return p.ContactName }},
	{Header: "Email", Value: func(p datasource.Partner) any { return p.ContactEmail }},
	{Header: "Phone", Value: func(p datasource.Partner) any { return p.ContactPhone }},
	{Header: "Status", Value: func(p datasource.Partner) any { return p.Status }},
	{Header: "Business Type", Value: func(p datasource.Partner) any { return p.BusinessType }},
	{Header: "Integration Type", Value: func(p datasource.Partner) any { return p.IntegrationType }},
	{Header: "Commission Tier", Value: func(p datasource.Partner) any { return p.CommissionTier }},
	{Header: "Created", Value: func(p datasource.Partner) any { return p.CreatedAt }, Format: export.DateTimeCell},
}

var policyColumns = []export.Column[datasource.Policy]{
	{Header: "Policy Number", Value: func(p datasource.Policy) any { return p.PolicyNumber }},
	{Header: "Customer Name", Value: func(p datasource.Policy) any { return p.CustomerName }},
	{Header: "Customer Email", Value: func(p datasource.Policy) any { return p.CustomerEmail }},
	{Header: "Event Type", Value: func(p datasource.Policy) any { return p.EventType }},
	{Header: "Event Date", Value: func(p datasource.Policy) any { return p.EventDate }, Format: export.DateCell},
	{Header: "Participants", Value: func(p datasource.Policy) any { return p.Participants }},
	{Header: "Coverage Type", Value: func(p datasource.Policy) any { return p.CoverageType }},
	{Header: "Premium", Value: func(p datasource.Policy) any { return p.Premium }, Format: export.CurrencyCell},
	{Header: "Commission", Value: func(p datasource.Policy) any { return p.Commission }, Format: export.CurrencyCell},
	{Header: "Status", Value: func(p datasource.Policy) any { return p.Status }},
	{Header: "Created", Value: func(p datasource.Policy) any { return p.CreatedAt }, Format: export.DateTimeCell},
}

var payoutColumns = []export.Column[datasource.Payout]{
	{Header: "ID", Value: func(p datasource.Payout) any { return p.ID }},
	{Header: "Partner ID", Value: func(p datasource.Payout) any { return p.PartnerID }},
	{Header: "Year/Month", Value: func(p datasource.Payout) any { return p.YearMonth }},
	{Header: "Tier", Value: func(p datasource.Payout) any { return p.Tier }},
	{Header: "Commission Rate", Value: func(p datasource.Payout) any { return p.CommissionRate }, Format: export.PercentageCell},
	{Header: "Total Policies", Value: func(p datasource.Payout) any { return p.TotalPolicies }},
	{Header: "Total Participants", Value: func(p datasource.Payout) any { return p.TotalParticipants }},
	{Header: "Gross Revenue", Value: func(p datasource.Payout) any { return p.GrossRevenue }, Format: export.CurrencyCell},
	{Header: "Commission Amount", Value: func(p datasource.Payout) any { return p.CommissionAmount }, Format: export.CurrencyCell},
	{Header: "Bonus Amount", Value: func(p datasource.Payout) any { return p.BonusAmount }, Format: export.CurrencyCell},
	{Header: "Status", Value: func(p datasource.Payout) any { return p.Status }},
	{Header: "Created", Value: func(p datasource.Payout) any { return p.CreatedAt }, Format: export.DateTimeCell},
	{Header: "Paid At", Value: func(p datasource.Payout) any { return p.PaidAt }, Format: export.DateTimeCell},
}

var quoteColumns = []export.Column[datasource.Quote]{
	{Header: "Quote Number", Value: func(q datasource.Quote) any { return q.QuoteNumber }},
	{Header: "Customer Name", Value: func(q datasource.Quote) any { return q.CustomerName }},
	{Header: "Customer Email", Value: func(q datasource.Quote) any { return q.CustomerEmail }},
	{Header: "Event Type", Value: func(q datasource.Quote) any { return q.EventType }},
	{Header: "Event Date", Value: func(q datasource.Quote) any { return q.EventDate }, Format: export.DateCell},
	{Header: "Participants", Value: func(q datasource.Quote) any { return q.Participants }},
	{Header: "Premium", Value: func(q datasource.Quote) any { return q.Premium }, Format: export.CurrencyCell},
	{Header: "Status", Value: func(q datasource.Quote) any { return q.Status }},
	{Header: "Created", Value: func(q datasource.Quote) any { return q.CreatedAt }, Format: export.DateTimeCell},
	{Header: "Expires", Value: func(q datasource.Quote) any { return q.ExpiresAt }, Format: export.DateTimeCell},
}

var summaryColumns = []export.Column[MetricRow]{
	{Header: "Metric", Value: func(r MetricRow) any { return r.Metric }},
	{Header: "Value", Value: func(r MetricRow) any { return r.Value }},
	{Header: "Period", Value: func(r MetricRow) any { return r.Period }},
}
