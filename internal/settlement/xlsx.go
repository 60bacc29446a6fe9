package settlement

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Julianb233/daily-event-insurance-sub010/internal/export"
)

const (
	summarySheet = "Statement"
	itemsSheet   = "Line Items"
)

// RenderXLSX builds a two-sheet workbook: statement header and summary, then line items.
func RenderXLSX(data StatementData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(itemsSheet); err != nil {
		return nil, fmt.Errorf("create items sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"14B8A6"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	labelStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create label style: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return nil, fmt.Errorf("create money style: %w", err)
	}

	summary := [][]any{
		{"Statement Number", data.StatementNumber},
		{"Statement Date", export.FormatLongDate(data.StatementDate)},
		{"Period", data.Period()},
		{"Business Name", data.Partner.BusinessName},
		{"Contact", data.Partner.ContactName},
		{"Email", data.Partner.ContactEmail},
		{"Commission Tier", data.Partner.CommissionTier},
		{"Commission Rate", export.FormatPercentage(data.Partner.CommissionRate)},
		{"Total Policies", data.Summary.TotalPolicies},
		{"Total Premium", export.RoundCents(data.Summary.TotalPremium)},
		{"Total Commission", export.RoundCents(data.Summary.TotalCommission)},
		{"Previous Balance", export.RoundCents(data.Summary.PreviousBalance)},
		{"Payments Received", export.RoundCents(data.Summary.PaymentsReceived)},
		{"Current Balance Due", export.RoundCents(data.Summary.CurrentBalance)},
	}
	for i, r := range summary {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &r); err != nil {
			return nil, fmt.Errorf("write summary row: %w", err)
		}
		_ = f.SetCellStyle(summarySheet, cell, cell, labelStyle)
		if _, ok := r[1].(float64); ok {
			valueCell, _ := excelize.CoordinatesToCellName(2, i+1)
			_ = f.SetCellStyle(summarySheet, valueCell, valueCell, moneyStyle)
		}
	}
	_ = f.SetColWidth(summarySheet, "A", "A", 22)
	_ = f.SetColWidth(summarySheet, "B", "B", 40)

	headers := []any{"Date", "Description", "Policy Number", "Premium", "Commission Rate", "Commission"}
	if err := f.SetSheetRow(itemsSheet, "A1", &headers); err != nil {
		return nil, fmt.Errorf("write items header: %w", err)
	}
	_ = f.SetCellStyle(itemsSheet, "A1", "F1", headerStyle)

	for i, it := range data.LineItems {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []any{
			export.FormatShortDateString(it.Date),
			it.Description,
			it.PolicyNumber,
			export.RoundCents(it.Premium),
			export.FormatPercentage(it.CommissionRate),
			export.RoundCents(it.CommissionAmount),
		}
		if err := f.SetSheetRow(itemsSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write line item %d: %w", i, err)
		}
	}
	if n := len(data.LineItems); n > 0 {
		_ = f.SetCellStyle(itemsSheet, "D2", fmt.Sprintf("D%d", n+1), moneyStyle)
		_ = f.SetCellStyle(itemsSheet, "F2", fmt.Sprintf("F%d", n+1), moneyStyle)
	}
	_ = f.SetColWidth(itemsSheet, "A", "A", 14)
	_ = f.SetColWidth(itemsSheet, "B", "B", 40)
	_ = f.SetColWidth(itemsSheet, "C", "F", 18)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
