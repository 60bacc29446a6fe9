package reporting

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Julianb233/daily-event-insurance-sub010/internal/datasource"
	"github.com/Julianb233/daily-event-insurance-sub010/internal/export"
)

var ErrInvalidRequest = errors.New("reporting: invalid request")

type Service struct {
	src   datasource.Source
	clock func() time.Time
}

func NewService(src datasource.Source) *Service { return &Service{src: src, clock: time.Now} }

// WithClock replaces the clock used for period bounds and filenames.
func (s *Service) WithClock(clock func() time.Time) *Service {
	s.clock = clock
	return s
}

var validPeriods = map[string]bool{"7d": true, "30d": true, "90d": true, "1y": true, "all": true}

func (r ExportRequest) normalize() (ExportRequest, error) {
	if r.Type == "" {
		r.Type = ExportSummary
	}
	if r.Period == "" {
		r.Period = "30d"
	}
	switch r.Type {
	case ExportPartners, ExportPolicies, ExportPayouts, ExportSales, ExportSummary:
	default:
		return r, fmt.Errorf("%w: unknown export type %q", ErrInvalidRequest, r.Type)
	}
	if !validPeriods[r.Period] {
		return r, fmt.Errorf("%w: unknown period %q", ErrInvalidRequest, r.Period)
	}
	return r, nil
}

// Summary computes headline figures for policies and quotes created since the bound.
// Cancelled policies are not counted as sold.
func (s *Service) Summary(ctx context.Context, since *time.Time) (Summary, error) {
	if s.src == nil {
		return Summary{}, errors.New("reporting: source not configured")
	}

	partners, err := s.src.ListPartners(ctx, datasource.Filter{})
	if err != nil {
		return Summary{}, err
	}
	policies, err := s.src.ListPolicies(ctx, datasource.Filter{Since: since})
	if err != nil {
		return Summary{}, err
	}
	quotes, err := s.src.ListQuotes(ctx, datasource.Filter{Since: since})
	if err != nil {
		return Summary{}, err
	}

	out := Summary{TotalPartners: len(partners), QuotesIssued: len(quotes), Since: since}
	for _, p := range partners {
		if p.Status == datasource.PartnerActive {
			out.ActivePartners++
		}
	}
	for _, p := range policies {
		if p.Status == datasource.PolicyCancelled {
			continue
		}
		out.PoliciesSold++
		out.TotalPremium += p.Premium
		out.TotalCommissions += p.Commission
	}
	out.TotalPremium = export.RoundCents(out.TotalPremium)
	out.TotalCommissions = export.RoundCents(out.TotalCommissions)
	if out.QuotesIssued > 0 {
		out.ConversionRate = float64(out.PoliciesSold) / float64(out.QuotesIssued)
	}
	if out.PoliciesSold > 0 {
		out.AveragePremium = export.RoundCents(out.TotalPremium / float64(out.PoliciesSold))
	}
	return out, nil
}

// Rows renders the summary as metric rows for export.
func (s Summary) Rows() []MetricRow {
	const selected = "Selected Period"
	return []MetricRow{
		{"Total Partners", strconv.Itoa(s.TotalPartners), "All Time"},
		{"Active Partners", strconv.Itoa(s.ActivePartners), "Current"},
		{"Total Policies Sold", strconv.Itoa(s.PoliciesSold), selected},
		{"Total Premium", export.FormatCurrency(s.TotalPremium), selected},
		{"Total Commissions", export.FormatCurrency(s.TotalCommissions), selected},
		{"Conversion Rate", export.FormatPercentage(s.ConversionRate), selected},
		{"Average Premium", export.FormatCurrency(s.AveragePremium), selected},
	}
}

// Export renders the requested dataset as CSV.
func (s *Service) Export(ctx context.Context, req ExportRequest) (Export, error) {
	req, err := req.normalize()
	if err != nil {
		return Export{}, err
	}
	if s.src == nil {
		return Export{}, errors.New("reporting: source not configured")
	}

	now := s.clock()
	stamp := now.UTC().Format(export.ISODateLayout)
	since := datasource.Period(req.Period, now)
	out := Export{Type: req.Type}

	switch req.Type {
	case ExportPartners:
		rows, err := s.src.ListPartners(ctx, datasource.Filter{Status: req.Status})
		if err != nil {
			return Export{}, err
		}
		out.CSV, out.Rows = export.GenerateCSV(rows, partnerColumns), len(rows)
		out.Filename = fmt.Sprintf("partners-export-%s.csv", stamp)
	case ExportPolicies:
		rows, err := s.src.ListPolicies(ctx, datasource.Filter{Status: req.Status, Since: since})
		if err != nil {
			return Export{}, err
		}
		out.CSV, out.Rows = export.GenerateCSV(rows, policyColumns), len(rows)
		out.Filename = fmt.Sprintf("policies-export-%s.csv", stamp)
	case ExportPayouts:
		rows, err := s.src.ListPayouts(ctx, datasource.Filter{Status: req.Status, Since: since})
		if err != nil {
			return Export{}, err
		}
		out.CSV, out.Rows = export.GenerateCSV(rows, payoutColumns), len(rows)
		out.Filename = fmt.Sprintf("payouts-export-%s.csv", stamp)
	case ExportSales:
		rows, err := s.src.ListQuotes(ctx, datasource.Filter{Status: req.Status, Since: since})
		if err != nil {
			return Export{}, err
		}
		out.CSV, out.Rows = export.GenerateCSV(rows, quoteColumns), len(rows)
		out.Filename = fmt.Sprintf("sales-quotes-export-%s.csv", stamp)
	case ExportSummary:
		sum, err := s.Summary(ctx, since)
		if err != nil {
			return Export{}, err
		}
		rows := sum.Rows()
		out.CSV, out.Rows = export.GenerateCSV(rows, summaryColumns), len(rows)
		out.Filename = fmt.Sprintf("summary-report-%s.csv", stamp)
	}
	return out, nil
}
