package settlement

import "time"

// StatementData is a self-contained snapshot of one partner settlement statement.
// Summary figures are supplied by the caller and rendered as given; see Reconcile.
type StatementData struct {
	StatementNumber string          `json:"statement_number" yaml:"statement_number"`
	StatementDate   time.Time       `json:"statement_date" yaml:"statement_date"`
	PeriodStart     time.Time       `json:"period_start" yaml:"period_start"`
	PeriodEnd       time.Time       `json:"period_end" yaml:"period_end"`
	Partner         PartnerSnapshot `json:"partner" yaml:"partner"`
	Summary         Summary         `json:"summary" yaml:"summary"`
	LineItems       []LineItem      `json:"line_items" yaml:"line_items"`
	PaymentInfo     *PaymentInfo    `json:"payment_info,omitempty" yaml:"payment_info,omitempty"`
}

type PartnerSnapshot struct {
	ID             string  `json:"id" yaml:"id"`
	BusinessName   string  `json:"business_name" yaml:"business_name"`
	ContactName    string  `json:"contact_name" yaml:"contact_name"`
	ContactEmail   string  `json:"contact_email" yaml:"contact_email"`
	CommissionTier string  `json:"commission_tier" yaml:"commission_tier"`
	CommissionRate float64 `json:"commission_rate" yaml:"commission_rate"`
}

type Summary struct {
	TotalPolicies    int     `json:"total_policies" yaml:"total_policies"`
	TotalPremium     float64 `json:"total_premium" yaml:"total_premium"`
	TotalCommission  float64 `json:"total_commission" yaml:"total_commission"`
	PreviousBalance  float64 `json:"previous_balance" yaml:"previous_balance"`
	PaymentsReceived float64 `json:"payments_received" yaml:"payments_received"`
	CurrentBalance   float64 `json:"current_balance" yaml:"current_balance"`
}

// LineItem is one commissionable policy. Date is an ISO date string.
type LineItem struct {
	Date             string  `json:"date" yaml:"date"`
	Description      string  `json:"description" yaml:"description"`
	PolicyNumber     string  `json:"policy_number,omitempty" yaml:"policy_number,omitempty"`
	Premium          float64 `json:"premium" yaml:"premium"`
	CommissionRate   float64 `json:"commission_rate" yaml:"commission_rate"`
	CommissionAmount float64 `json:"commission_amount" yaml:"commission_amount"`
}

type PaymentInfo struct {
	Method        string     `json:"method" yaml:"method"`
	LastFour      string     `json:"last_four,omitempty" yaml:"last_four,omitempty"`
	ScheduledDate *time.Time `json:"scheduled_date,omitempty" yaml:"scheduled_date,omitempty"`
}

// Period renders the statement period using long dates.
func (d StatementData) Period() string {
	return formatLong(d.PeriodStart) + " - " + formatLong(d.PeriodEnd)
}

func (d StatementData) lineTotals() (premium, commission float64) {
	for _, it := range d.LineItems {
		premium += it.Premium
		commission += it.CommissionAmount
	}
	return premium, commission
}
