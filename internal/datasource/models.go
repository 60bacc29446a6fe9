package datasource

import "time"

const (
	PartnerActive    = "active"
	PartnerPending   = "pending"
	PartnerSuspended = "suspended"

	PolicyActive    = "active"
	PolicyCancelled = "cancelled"

	PayoutPending = "pending"
	PayoutPaid    = "paid"
)

type Partner struct {
	ID              string    `json:"id" yaml:"id"`
	BusinessName    string    `json:"business_name" yaml:"business_name"`
	ContactName     string    `json:"contact_name" yaml:"contact_name"`
	ContactEmail    string    `json:"contact_email" yaml:"contact_email"`
	ContactPhone    string    `json:"contact_phone" yaml:"contact_phone"`
	Status          string    `json:"status" yaml:"status"`
	BusinessType    string    `json:"business_type" yaml:"business_type"`
	IntegrationType string    `json:"integration_type" yaml:"integration_type"`
	CommissionTier  string    `json:"commission_tier" yaml:"commission_tier"`
	CommissionRate  float64   `json:"commission_rate" yaml:"commission_rate"`
	PayoutMethod    string    `json:"payout_method,omitempty" yaml:"payout_method"`
	PayoutLastFour  string    `json:"payout_last_four,omitempty" yaml:"payout_last_four"`
	CreatedAt       time.Time `json:"created_at" yaml:"created_at"`
}

type Policy struct {
	ID            string    `json:"id" yaml:"id"`
	PolicyNumber  string    `json:"policy_number" yaml:"policy_number"`
	PartnerID     string    `json:"partner_id" yaml:"partner_id"`
	CustomerName  string    `json:"customer_name" yaml:"customer_name"`
	CustomerEmail string    `json:"customer_email" yaml:"customer_email"`
	EventType     string    `json:"event_type" yaml:"event_type"`
	EventDate     time.Time `json:"event_date" yaml:"event_date"`
	Participants  int       `json:"participants" yaml:"participants"`
	CoverageType  string    `json:"coverage_type" yaml:"coverage_type"`
	Premium       float64   `json:"premium" yaml:"premium"`
	Commission    float64   `json:"commission" yaml:"commission"`
	Status        string    `json:"status" yaml:"status"`
	CreatedAt     time.Time `json:"created_at" yaml:"created_at"`
}

// Payout is a monthly commission record for a partner.
type Payout struct {
	ID                string     `json:"id" yaml:"id"`
	PartnerID         string     `json:"partner_id" yaml:"partner_id"`
	YearMonth         string     `json:"year_month" yaml:"year_month"`
	Tier              string     `json:"tier" yaml:"tier"`
	CommissionRate    float64    `json:"commission_rate" yaml:"commission_rate"`
	TotalPolicies     int        `json:"total_policies" yaml:"total_policies"`
	TotalParticipants int        `json:"total_participants" yaml:"total_participants"`
	GrossRevenue      float64    `json:"gross_revenue" yaml:"gross_revenue"`
	CommissionAmount  float64    `json:"commission_amount" yaml:"commission_amount"`
	BonusAmount       float64    `json:"bonus_amount" yaml:"bonus_amount"`
	Status            string     `json:"status" yaml:"status"`
	CreatedAt         time.Time  `json:"created_at" yaml:"created_at"`
	PaidAt            *time.Time `json:"paid_at,omitempty" yaml:"paid_at"`
}

// Amount is the total owed for the payout.
func (p Payout) Amount() float64 { return p.CommissionAmount + p.BonusAmount }

type Quote struct {
	QuoteNumber   string    `json:"quote_number" yaml:"quote_number"`
	PartnerID     string    `json:"partner_id" yaml:"partner_id"`
	CustomerName  string    `json:"customer_name" yaml:"customer_name"`
	CustomerEmail string    `json:"customer_email" yaml:"customer_email"`
	EventType     string    `json:"event_type" yaml:"event_type"`
	EventDate     time.Time `json:"event_date" yaml:"event_date"`
	Participants  int       `json:"participants" yaml:"participants"`
	Premium       float64   `json:"premium" yaml:"premium"`
	Status        string    `json:"status" yaml:"status"`
	CreatedAt     time.Time `json:"created_at" yaml:"created_at"`
	ExpiresAt     time.Time `json:"expires_at" yaml:"expires_at"`
}
