package settlement

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/Julianb233/daily-event-insurance-sub010/internal/export"
)

func formatLong(t time.Time) string { return export.FormatLongDate(t) }

// shortPartnerID keeps the first 8 characters for display.
func shortPartnerID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8] + "..."
}

var statementFuncs = template.FuncMap{
	"currency":   export.FormatCurrency,
	"percentage": export.FormatPercentage,
	"longDate":   export.FormatLongDate,
	"shortDate":  export.FormatShortDateString,
	"shortID":    shortPartnerID,
}

var statementTemplate = template.Must(template.New("statement").Funcs(statementFuncs).Parse(statementHTML))

type htmlView struct {
	StatementData
	Period string
	Year   int
}

// RenderHTML renders a standalone, print-ready HTML document.
// All partner and line-item text is HTML-escaped.
// Table totals are taken from Summary as supplied.
func RenderHTML(data StatementData) (string, error) {
	view := htmlView{
		StatementData: data,
		Period:        data.Period(),
		Year:          data.StatementDate.Year(),
	}

	var buf bytes.Buffer
	if err := statementTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("render statement html: %w", err)
	}
	return buf.String(), nil
}

const statementHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Settlement Statement</title>
<style>
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; color: #1f2937; line-height: 1.5; padding: 40px; max-width: 900px; margin: 0 auto; }
  .header { display: flex; justify-content: space-between; align-items: flex-start; border-bottom: 3px solid #14B8A6; padding-bottom: 20px; margin-bottom: 30px; }
  .brand-name { font-size: 24px; font-weight: 700; color: #14B8A6; }
  .brand-tagline { font-size: 12px; color: #6b7280; }
  .statement-title { text-align: right; }
  .statement-title h1 { font-size: 28px; color: #111827; }
  .statement-number { font-size: 14px; color: #6b7280; }
  .info-grid { display: grid; grid-template-columns: 1fr 1fr; gap: 30px; margin-bottom: 30px; }
  .info-box { background: #f9fafb; border-radius: 8px; padding: 20px; }
  .info-box h3 { font-size: 12px; text-transform: uppercase; color: #6b7280; margin-bottom: 10px; letter-spacing: 0.05em; }
  .info-box p { font-size: 14px; margin-bottom: 4px; }
  .info-box .highlight { font-weight: 600; color: #111827; }
  .summary-cards { display: grid; grid-template-columns: repeat(3, 1fr); gap: 20px; margin-bottom: 30px; }
  .summary-card { border: 1px solid #e5e7eb; border-radius: 8px; padding: 20px; text-align: center; }
  .summary-card .label { font-size: 12px; color: #6b7280; text-transform: uppercase; }
  .summary-card .value { font-size: 24px; font-weight: 700; color: #111827; }
  .summary-card.primary { background: #14B8A6; border-color: #14B8A6; }
  .summary-card.primary .label, .summary-card.primary .value { color: #ffffff; }
  table { width: 100%; border-collapse: collapse; margin-bottom: 30px; font-size: 13px; }
  th { background: #f3f4f6; text-align: left; padding: 12px; font-weight: 600; color: #374151; border-bottom: 2px solid #e5e7eb; }
  td { padding: 12px; border-bottom: 1px solid #e5e7eb; }
  .text-right { text-align: right; }
  tfoot td { font-weight: 700; background: #f9fafb; }
  .totals { margin-left: auto; width: 350px; margin-bottom: 30px; }
  .totals-row { display: flex; justify-content: space-between; padding: 8px 0; font-size: 14px; }
  .totals-row.total { border-top: 2px solid #111827; font-weight: 700; font-size: 18px; padding-top: 12px; }
  .payment-info { background: #ecfdf5; border: 1px solid #a7f3d0; border-radius: 8px; padding: 20px; margin-bottom: 30px; }
  .footer { text-align: center; font-size: 12px; color: #9ca3af; border-top: 1px solid #e5e7eb; padding-top: 20px; }
  .footer p { margin-bottom: 4px; }
  @media print { body { padding: 20px; } .summary-card.primary { -webkit-print-color-adjust: exact; print-color-adjust: exact; } }
</style>
</head>
<body>
<div class="header">
  <div>
    <div class="brand-name">Daily Event Insurance</div>
    <div class="brand-tagline">Partner Commission Statement</div>
  </div>
  <div class="statement-title">
    <h1>Settlement Statement</h1>
    <div class="statement-number">{{.StatementNumber}}</div>
  </div>
</div>

<div class="info-grid">
  <div class="info-box">
    <h3>Partner Information</h3>
    <p class="highlight">{{.Partner.BusinessName}}</p>
    <p>{{.Partner.ContactName}}</p>
    <p>{{.Partner.ContactEmail}}</p>
    <p>Partner ID: {{shortID .Partner.ID}}</p>
  </div>
  <div class="info-box">
    <h3>Statement Details</h3>
    <p><span class="highlight">Statement Date:</span> {{longDate .StatementDate}}</p>
    <p><span class="highlight">Period:</span> {{.Period}}</p>
    <p><span class="highlight">Commission Tier:</span> {{.Partner.CommissionTier}}</p>
    <p><span class="highlight">Commission Rate:</span> {{percentage .Partner.CommissionRate}}</p>
  </div>
</div>

<div class="summary-cards">
  <div class="summary-card">
    <div class="label">Total Policies</div>
    <div class="value">{{.Summary.TotalPolicies}}</div>
  </div>
  <div class="summary-card">
    <div class="label">Total Premium</div>
    <div class="value">{{currency .Summary.TotalPremium}}</div>
  </div>
  <div class="summary-card primary">
    <div class="label">Commission Earned</div>
    <div class="value">{{currency .Summary.TotalCommission}}</div>
  </div>
</div>

<table>
  <thead>
    <tr>
      <th>Date</th>
      <th>Description</th>
      <th>Policy #</th>
      <th class="text-right">Premium</th>
      <th class="text-right">Rate</th>
      <th class="text-right">Commission</th>
    </tr>
  </thead>
  <tbody>
{{- range .LineItems}}
    <tr class="line-item">
      <td>{{shortDate .Date}}</td>
      <td>{{.Description}}</td>
      <td>{{if .PolicyNumber}}{{.PolicyNumber}}{{else}}-{{end}}</td>
      <td class="text-right">{{currency .Premium}}</td>
      <td class="text-right">{{percentage .CommissionRate}}</td>
      <td class="text-right">{{currency .CommissionAmount}}</td>
    </tr>
{{- end}}
  </tbody>
  <tfoot>
    <tr>
      <td colspan="3">Period Totals</td>
      <td class="text-right">{{currency .Summary.TotalPremium}}</td>
      <td></td>
      <td class="text-right">{{currency .Summary.TotalCommission}}</td>
    </tr>
  </tfoot>
</table>

<div class="totals">
  <div class="totals-row"><span>Previous Balance</span><span>{{currency .Summary.PreviousBalance}}</span></div>
  <div class="totals-row"><span>Commission This Period</span><span>{{currency .Summary.TotalCommission}}</span></div>
  <div class="totals-row"><span>Payments Received</span><span>({{currency .Summary.PaymentsReceived}})</span></div>
  <div class="totals-row total"><span>Current Balance Due</span><span>{{currency .Summary.CurrentBalance}}</span></div>
</div>
{{with .PaymentInfo}}
<div class="payment-info">
  <h3>Payment Information</h3>
  <p>Payment Method: {{.Method}}{{if .LastFour}} (****{{.LastFour}}){{end}}</p>
  {{- with .ScheduledDate}}
  <p>Scheduled Payment Date: {{longDate .}}</p>
  {{- end}}
</div>
{{end}}
<div class="footer">
  <p>This statement is for informational purposes only.</p>
  <p>&copy; {{.Year}} Daily Event Insurance - A HiQOR Company</p>
  <p>Questions? Contact partner-support@dailyeventinsurance.com</p>
  <p>Statement ID: {{.StatementNumber}}</p>
</div>
</body>
</html>
`
