package reporting

import "time"

// ExportType selects an admin export dataset.
type ExportType string

const (
	ExportPartners ExportType = "partners"
	ExportPolicies ExportType = "policies"
	ExportPayouts  ExportType = "payouts"
	ExportSales    ExportType = "sales"
	ExportSummary  ExportType = "summary"
)

// ExportRequest describes one CSV export.
// Period is a lookback key (7d, 30d, 90d, 1y, all); Status filters records that carry one.
type ExportRequest struct {
	Type   ExportType `json:"type"`
	Period string     `json:"period"`
	Status string     `json:"status,omitempty"`
}

type Export struct {
	Type     ExportType `json:"type"`
	Filename string     `json:"filename"`
	CSV      string     `json:"-"`
	Rows     int        `json:"rows"`
}

// Summary aggregates headline figures. Partner counts are all-time; the rest cover the period.
type Summary struct {
	TotalPartners    int        `json:"total_partners"`
	ActivePartners   int        `json:"active_partners"`
	PoliciesSold     int        `json:"policies_sold"`
	TotalPremium     float64    `json:"total_premium"`
	TotalCommissions float64    `json:"total_commissions"`
	QuotesIssued     int        `json:"quotes_issued"`
	ConversionRate   float64    `json:"conversion_rate"`
	AveragePremium   float64    `json:"average_premium"`
	Since            *time.Time `json:"since,omitempty"`
}

// MetricRow is one line of the summary export.
type MetricRow struct {
	Metric string
	Value  string
	Period string
}
