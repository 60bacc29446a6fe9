package settlement

import (
	"fmt"
	"math"
)

const reconcileTolerance = 0.005

// Discrepancy is a mismatch between a supplied summary figure and the value derived from line items.
type Discrepancy struct {
	Field    string  `json:"field"`
	Supplied float64 `json:"supplied"`
	Derived  float64 `json:"derived"`
}

func (d Discrepancy) String() string {
	return fmt.Sprintf("%s: supplied %.2f, derived %.2f", d.Field, d.Supplied, d.Derived)
}

// Reconcile compares summary figures against line items and the balance identity
// previous + commission - payments = current. It reports and never corrects.
func Reconcile(data StatementData) []Discrepancy {
	var out []Discrepancy
	check := func(field string, supplied, derived float64) {
		if math.Abs(supplied-derived) > reconcileTolerance {
			out = append(out, Discrepancy{Field: field, Supplied: supplied, Derived: derived})
		}
	}

	premium, commission := data.lineTotals()
	s := data.Summary
	check("total_policies", float64(s.TotalPolicies), float64(len(data.LineItems)))
	check("total_premium", s.TotalPremium, premium)
	check("total_commission", s.TotalCommission, commission)
	check("current_balance", s.CurrentBalance, s.PreviousBalance+s.TotalCommission-s.PaymentsReceived)
	return out
}
