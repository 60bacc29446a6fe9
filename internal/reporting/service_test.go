package reporting

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Julianb233/daily-event-insurance-sub010/internal/datasource"
)

func newFixtureService(t *testing.T) *Service {
	t.Helper()
	src, err := datasource.NewFixtureSource()
	require.NoError(t, err)
	return NewService(src).WithClock(func() time.Time { return time.Date(2024, 7, 10, 12, 0, 0, 0, time.UTC) })
}

func TestSummary_AllTime(t *testing.T) {
	svc := newFixtureService(t)

	sum, err := svc.Summary(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, 3, sum.TotalPartners)
	assert.Equal(t, 2, sum.ActivePartners)
	assert.Equal(t, 4, sum.PoliciesSold, "cancelled policies are excluded")
	assert.InDelta(t, 116.91, sum.TotalPremium, 1e-9)
	assert.InDelta(t, 50.67, sum.TotalCommissions, 1e-9)
	assert.Equal(t, 4, sum.QuotesIssued)
	assert.InDelta(t, 1.0, sum.ConversionRate, 1e-9)
	assert.InDelta(t, 29.23, sum.AveragePremium, 1e-9)

	rows := sum.Rows()
	require.Len(t, rows, 7)
	assert.Equal(t, MetricRow{"Total Premium", "$116.91", "Selected Period"}, rows[3])
	assert.Equal(t, MetricRow{"Conversion Rate", "100.0%", "Selected Period"}, rows[5])
}

func TestSummary_EmptyPeriodHasZeroRates(t *testing.T) {
	svc := newFixtureService(t)
	since := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	sum, err := svc.Summary(context.Background(), &since)
	require.NoError(t, err)
	assert.Zero(t, sum.PoliciesSold)
	assert.Zero(t, sum.ConversionRate)
	assert.Zero(t, sum.AveragePremium)
}

func TestExport_Partners(t *testing.T) {
	svc := newFixtureService(t)

	out, err := svc.Export(context.Background(), ExportRequest{Type: ExportPartners, Period: "all"})
	require.NoError(t, err)

	assert.Equal(t, "partners-export-2024-07-10.csv", out.Filename)
	assert.Equal(t, 3, out.Rows)
	lines := strings.Split(out.CSV, "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "ID,Business Name,Contact Name,Email,Phone,Status,Business Type,Integration Type,Commission Tier,Created", lines[0])
	assert.Contains(t, out.CSV, `prt-001-adventure,Adventure Sports Inc,John Smith,john@adventuresports.com,555-0101,active,gym,widget,Gold,"Jan 15, 2024, 10:00 AM"`)
}

func TestExport_PoliciesHonourPeriodAndStatus(t *testing.T) {
	svc := newFixtureService(t)

	out, err := svc.Export(context.Background(), ExportRequest{Type: ExportPolicies, Period: "30d"})
	require.NoError(t, err)
	assert.Equal(t, 4, out.Rows)
	assert.NotContains(t, out.CSV, "POL-20240603-00001")

	out, err = svc.Export(context.Background(), ExportRequest{Type: ExportPolicies, Period: "30d", Status: datasource.PolicyActive})
	require.NoError(t, err)
	assert.Equal(t, 3, out.Rows)
	assert.Contains(t, out.CSV, `"Jun 15, 2024",4,comprehensive,$49.96,$22.48,active`)
}

func TestExport_PayoutsLeaveUnpaidBlank(t *testing.T) {
	svc := newFixtureService(t)

	out, err := svc.Export(context.Background(), ExportRequest{Type: ExportPayouts, Period: "all", Status: datasource.PayoutPending})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Rows)
	for _, line := range strings.Split(out.CSV, "\n")[1:] {
		assert.True(t, strings.HasSuffix(line, ","), "paid at column should be empty: %s", line)
	}
}

func TestExport_DefaultsToSummary(t *testing.T) {
	svc := newFixtureService(t)

	out, err := svc.Export(context.Background(), ExportRequest{})
	require.NoError(t, err)
	assert.Equal(t, ExportSummary, out.Type)
	assert.Equal(t, "summary-report-2024-07-10.csv", out.Filename)
	assert.True(t, strings.HasPrefix(out.CSV, "Metric,Value,Period\n"))
}

func TestExport_RejectsUnknownTypeAndPeriod(t *testing.T) {
	svc := newFixtureService(t)

	_, err := svc.Export(context.Background(), ExportRequest{Type: "claims"})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = svc.Export(context.Background(), ExportRequest{Type: ExportSales, Period: "2w"})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}
