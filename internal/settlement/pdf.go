package settlement

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"github.com/Julianb233/daily-event-insurance-sub010/internal/export"
)

// RenderPDF lays the statement out on A4 pages using the core Arial font.
func RenderPDF(data StatementData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Settlement Statement", true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.SetTextColor(20, 184, 166)
	pdf.Cell(0, 8, "Daily Event Insurance")
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(107, 114, 128)
	pdf.Cell(0, 5, "Partner Commission Statement")
	pdf.Ln(10)

	pdf.SetTextColor(17, 24, 39)
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 7, "Settlement Statement")
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, data.StatementNumber)
	pdf.Ln(10)

	line := func(label, value string) {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(45, 6, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 6, tr(value), "", 1, "L", false, 0, "")
	}
	line("Partner", data.Partner.BusinessName)
	line("Contact", data.Partner.ContactName)
	line("Email", data.Partner.ContactEmail)
	line("Partner ID", shortPartnerID(data.Partner.ID))
	line("Statement Date", export.FormatLongDate(data.StatementDate))
	line("Period", data.Period())
	line("Commission Tier", data.Partner.CommissionTier)
	line("Commission Rate", export.FormatPercentage(data.Partner.CommissionRate))
	pdf.Ln(4)

	widths := []float64{25, 60, 35, 25, 20, 25}
	headers := []string{"Date", "Description", "Policy #", "Premium", "Rate", "Commission"}
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(243, 244, 246)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, it := range data.LineItems {
		policy := it.PolicyNumber
		if policy == "" {
			policy = "-"
		}
		pdf.CellFormat(widths[0], 6, export.FormatShortDateString(it.Date), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, tr(truncate(it.Description, 38)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, tr(policy), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 6, export.FormatCurrency(it.Premium), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 6, export.FormatPercentage(it.CommissionRate), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[5], 6, export.FormatCurrency(it.CommissionAmount), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(widths[0]+widths[1]+widths[2], 6, "Period Totals", "1", 0, "L", true, 0, "")
	pdf.CellFormat(widths[3], 6, export.FormatCurrency(data.Summary.TotalPremium), "1", 0, "R", true, 0, "")
	pdf.CellFormat(widths[4], 6, "", "1", 0, "R", true, 0, "")
	pdf.CellFormat(widths[5], 6, export.FormatCurrency(data.Summary.TotalCommission), "1", 0, "R", true, 0, "")
	pdf.Ln(10)

	total := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Arial", style, 10)
		pdf.CellFormat(120, 6, "", "", 0, "L", false, 0, "")
		pdf.CellFormat(45, 6, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, value, "", 1, "R", false, 0, "")
	}
	total("Total Policies", strconv.Itoa(data.Summary.TotalPolicies), false)
	total("Total Premium", export.FormatCurrency(data.Summary.TotalPremium), false)
	total("Previous Balance", export.FormatCurrency(data.Summary.PreviousBalance), false)
	total("Commission This Period", export.FormatCurrency(data.Summary.TotalCommission), false)
	total("Payments Received", "("+export.FormatCurrency(data.Summary.PaymentsReceived)+")", false)
	total("Current Balance Due", export.FormatCurrency(data.Summary.CurrentBalance), true)

	if p := data.PaymentInfo; p != nil {
		pdf.Ln(4)
		method := p.Method
		if p.LastFour != "" {
			method += " (****" + p.LastFour + ")"
		}
		line("Payment Method", method)
		if p.ScheduledDate != nil {
			line("Scheduled Payment", export.FormatLongDate(*p.ScheduledDate))
		}
	}

	pdf.Ln(8)
	pdf.SetFont("Arial", "", 8)
	pdf.SetTextColor(156, 163, 175)
	footer := []string{
		"This statement is for informational purposes only.",
		tr(fmt.Sprintf("© %d Daily Event Insurance - A HiQOR Company", data.StatementDate.Year())),
		"Questions? Contact partner-support@dailyeventinsurance.com",
		"Statement ID: " + data.StatementNumber,
	}
	for _, f := range footer {
		pdf.CellFormat(0, 5, f, "", 1, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render statement pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
