package settlement

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Julianb233/daily-event-insurance-sub010/internal/commission"
	"github.com/Julianb233/daily-event-insurance-sub010/internal/datasource"
	"github.com/Julianb233/daily-event-insurance-sub010/internal/export"
)

var ErrInvalidPeriod = errors.New("invalid statement period")

// Service assembles StatementData from partner, policy and payout records.
type Service struct {
	src     datasource.Source
	numbers *NumberGenerator
	clock   func() time.Time
	tiers   TierResolver
}

// TierResolver fills in the commission tier for partners that have none on record.
type TierResolver interface {
	Resolve(ctx context.Context, partnerID string, monthlyVolume int) (commission.ResolvedTier, error)
}

type Option func(*Service)

func WithClock(clock func() time.Time) Option {
	return func(s *Service) { s.clock = clock }
}

func WithNumberGenerator(g *NumberGenerator) Option {
	return func(s *Service) { s.numbers = g }
}

// WithTierResolver derives a missing partner tier from the period's participant volume.
func WithTierResolver(r TierResolver) Option {
	return func(s *Service) { s.tiers = r }
}

func NewService(src datasource.Source, opts ...Option) *Service {
	s := &Service{src: src, clock: time.Now}
	for _, o := range opts {
		o(s)
	}
	if s.numbers == nil {
		s.numbers = NewNumberGenerator(s.clock, nil)
	}
	return s
}

// Build assembles a statement for partnerID covering the calendar dates start..end inclusive.
//
// Line items are non-cancelled policies created in the period, oldest first.
// Previous balance is payouts created before start that were unpaid at start.
// Payments received is payouts paid within the period.
func (s *Service) Build(ctx context.Context, partnerID string, start, end time.Time) (StatementData, error) {
	partnerID = strings.TrimSpace(partnerID)
	if partnerID == "" {
		return StatementData{}, fmt.Errorf("%w: partner id required", datasource.ErrInvalidRequest)
	}
	start = startOfDay(start)
	end = startOfDay(end)
	if end.Before(start) {
		return StatementData{}, fmt.Errorf("%w: end %s before start %s", ErrInvalidPeriod,
			end.Format(export.ISODateLayout), start.Format(export.ISODateLayout))
	}
	until := end.AddDate(0, 0, 1)

	partner, err := s.src.GetPartner(ctx, partnerID)
	if err != nil {
		return StatementData{}, err
	}

	policies, err := s.src.ListPolicies(ctx, datasource.Filter{PartnerID: partnerID, Since: &start, Until: &until})
	if err != nil {
		return StatementData{}, err
	}
	sort.SliceStable(policies, func(i, j int) bool { return policies[i].CreatedAt.Before(policies[j].CreatedAt) })

	var (
		items   = make([]LineItem, 0, len(policies))
		premium float64
		earned  float64
		volume  int
	)
	for _, p := range policies {
		if p.Status == datasource.PolicyCancelled {
			continue
		}
		rate := partner.CommissionRate
		if p.Premium > 0 {
			rate = p.Commission / p.Premium
		}
		items = append(items, LineItem{
			Date:             p.CreatedAt.UTC().Format(export.ISODateLayout),
			Description:      describePolicy(p),
			PolicyNumber:     p.PolicyNumber,
			Premium:          p.Premium,
			CommissionRate:   rate,
			CommissionAmount: p.Commission,
		})
		premium += p.Premium
		earned += p.Commission
		volume += p.Participants
	}

	tierName, tierRate := partner.CommissionTier, partner.CommissionRate
	if tierName == "" && s.tiers != nil {
		t, err := s.tiers.Resolve(ctx, partner.ID, volume)
		if err != nil {
			return StatementData{}, fmt.Errorf("resolve commission tier: %w", err)
		}
		tierName, tierRate = t.Name, t.Rate
	}

	payouts, err := s.src.ListPayouts(ctx, datasource.Filter{PartnerID: partnerID})
	if err != nil {
		return StatementData{}, err
	}
	var previous, paid float64
	for _, po := range payouts {
		if po.CreatedAt.Before(start) && (po.PaidAt == nil || !po.PaidAt.Before(start)) {
			previous += po.Amount()
		}
		if po.PaidAt != nil && !po.PaidAt.Before(start) && po.PaidAt.Before(until) {
			paid += po.Amount()
		}
	}

	premium = export.RoundCents(premium)
	earned = export.RoundCents(earned)
	previous = export.RoundCents(previous)
	paid = export.RoundCents(paid)

	data := StatementData{
		StatementNumber: s.numbers.Next(),
		StatementDate:   s.clock(),
		PeriodStart:     start,
		PeriodEnd:       end,
		Partner: PartnerSnapshot{
			ID:             partner.ID,
			BusinessName:   partner.BusinessName,
			ContactName:    partner.ContactName,
			ContactEmail:   partner.ContactEmail,
			CommissionTier: tierName,
			CommissionRate: tierRate,
		},
		Summary: Summary{
			TotalPolicies:    len(items),
			TotalPremium:     premium,
			TotalCommission:  earned,
			PreviousBalance:  previous,
			PaymentsReceived: paid,
			CurrentBalance:   export.RoundCents(previous + earned - paid),
		},
		LineItems: items,
	}

	if partner.PayoutMethod != "" {
		scheduled := time.Date(end.Year(), end.Month()+1, 1, 0, 0, 0, 0, time.UTC)
		data.PaymentInfo = &PaymentInfo{
			Method:        partner.PayoutMethod,
			LastFour:      partner.PayoutLastFour,
			ScheduledDate: &scheduled,
		}
	}
	return data, nil
}

func describePolicy(p datasource.Policy) string {
	desc := p.EventType
	if p.CoverageType != "" {
		desc += " - " + p.CoverageType + " coverage"
	}
	if p.Participants > 1 {
		desc += fmt.Sprintf(" (%d participants)", p.Participants)
	}
	return desc
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
