package settlement

import (
	"strconv"
	"strings"

	"github.com/Julianb233/daily-event-insurance-sub010/internal/export"
)

var lineItemColumns = []export.Column[LineItem]{
	{Header: "Date", Value: func(it LineItem) any { return it.Date }, Format: export.DateCell},
	{Header: "Description", Value: func(it LineItem) any { return it.Description }},
	{Header: "Policy Number", Value: func(it LineItem) any { return it.PolicyNumber }},
	{Header: "Premium", Value: func(it LineItem) any { return it.Premium }, Format: export.AmountCell},
	{Header: "Commission Rate", Value: func(it LineItem) any { return it.CommissionRate }, Format: export.PercentageCell},
	{Header: "Commission", Value: func(it LineItem) any { return it.CommissionAmount }, Format: export.AmountCell},
}

// RenderCSV renders the statement as sectioned CSV lines joined by "\n".
func RenderCSV(data StatementData) string {
	var lines []string
	row := func(cells ...any) {
		out := make([]string, len(cells))
		for i, c := range cells {
			out[i] = export.EscapeCSV(c)
		}
		lines = append(lines, strings.Join(out, ","))
	}

	row("SETTLEMENT STATEMENT")
	row("Statement Number", data.StatementNumber)
	row("Statement Date", export.FormatLongDate(data.StatementDate))
	row("Period", data.Period())
	lines = append(lines, "")

	row("PARTNER INFORMATION")
	row("Business Name", data.Partner.BusinessName)
	row("Contact", data.Partner.ContactName)
	row("Email", data.Partner.ContactEmail)
	row("Commission Tier", data.Partner.CommissionTier)
	row("Commission Rate", export.FormatPercentage(data.Partner.CommissionRate))
	lines = append(lines, "")

	row("LINE ITEMS")
	lines = append(lines, export.GenerateCSV(data.LineItems, lineItemColumns))
	lines = append(lines, "")

	row("SUMMARY")
	row("Total Policies", strconv.Itoa(data.Summary.TotalPolicies))
	row("Total Premium", export.FormatAmount(data.Summary.TotalPremium))
	row("Total Commission", export.FormatAmount(data.Summary.TotalCommission))
	row("Previous Balance", export.FormatAmount(data.Summary.PreviousBalance))
	row("Payments Received", export.FormatAmount(data.Summary.PaymentsReceived))
	row("Current Balance Due", export.FormatAmount(data.Summary.CurrentBalance))

	return strings.Join(lines, "\n")
}
