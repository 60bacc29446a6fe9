package commission

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Service resolves commission tiers and computes commissions.
//
// Contract:
// - A live partner override wins over volume.
// - A volume below every band falls back to the first tier.
// - Pure calculation + repository lookups.
type Service struct {
	repo  TierRepository
	clock func() time.Time
}

func NewService(repo TierRepository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

func (s *Service) WithClock(clock func() time.Time) *Service {
	s.clock = clock
	return s
}

var (
	ErrNoTiers            = errors.New("no commission tiers configured")
	ErrInvalidTierRequest = errors.New("invalid commission tier request")
)

// TierRepository abstracts tier persistence.
type TierRepository interface {
	ActiveTiers(ctx context.Context) ([]Tier, error)
	FindOverride(ctx context.Context, partnerID string, at time.Time) (Override, Tier, bool, error)
}

// Resolve returns the tier for partnerID at the given monthly participant volume.
// partnerID may be empty to skip the override lookup.
func (s *Service) Resolve(ctx context.Context, partnerID string, monthlyVolume int) (ResolvedTier, error) {
	if monthlyVolume < 0 {
		return ResolvedTier{}, ErrInvalidTierRequest
	}

	if partnerID != "" {
		o, t, ok, err := s.repo.FindOverride(ctx, partnerID, s.clock().UTC())
		if err != nil {
			return ResolvedTier{}, err
		}
		if ok {
			reason := o.Reason
			if reason == "" {
				reason = "Manual tier assignment"
			}
			return ResolvedTier{Tier: t, IsOverride: true, OverrideReason: reason}, nil
		}
	}

	tiers, err := s.repo.ActiveTiers(ctx)
	if err != nil {
		return ResolvedTier{}, err
	}
	if len(tiers) == 0 {
		return ResolvedTier{}, ErrNoTiers
	}
	_, t := match(tiers, monthlyVolume)
	return ResolvedTier{Tier: t}, nil
}

// Progress reports the current tier for volume and the gap to the next one.
func (s *Service) Progress(ctx context.Context, volume int) (Progress, error) {
	if volume < 0 {
		return Progress{}, ErrInvalidTierRequest
	}
	tiers, err := s.repo.ActiveTiers(ctx)
	if err != nil {
		return Progress{}, err
	}
	if len(tiers) == 0 {
		return Progress{}, ErrNoTiers
	}

	i, cur := match(tiers, volume)
	p := Progress{Current: ResolvedTier{Tier: cur}}
	if i+1 >= len(tiers) {
		return p, nil
	}
	next := tiers[i+1]
	p.Next = &ResolvedTier{Tier: next}
	p.VolumeToNext = max(0, next.MinVolume-volume)
	p.RateIncrease = decimal.NewFromFloat(next.Rate).Sub(decimal.NewFromFloat(cur.Rate)).InexactFloat64()
	return p, nil
}

// Calculate applies tier to premium earned across policyCount policies.
// Amounts are rounded to cents and the effective rate to four places.
func Calculate(premium float64, tier ResolvedTier, policyCount int) Commission {
	p := decimal.NewFromFloat(premium)
	amount := p.Mul(decimal.NewFromFloat(tier.Rate))
	bonus := decimal.NewFromFloat(tier.FlatBonus).Mul(decimal.NewFromInt(int64(policyCount)))
	total := amount.Add(bonus)

	effective := decimal.NewFromFloat(tier.Rate)
	if p.IsPositive() {
		effective = total.Div(p)
	}
	return Commission{
		Amount:        amount.Round(2).InexactFloat64(),
		FlatBonus:     bonus.Round(2).InexactFloat64(),
		Total:         total.Round(2).InexactFloat64(),
		EffectiveRate: effective.Round(4).InexactFloat64(),
	}
}

// match finds the band covering volume, falling back to the first tier.
func match(tiers []Tier, volume int) (int, Tier) {
	for i, t := range tiers {
		if t.covers(volume) {
			return i, t
		}
	}
	return 0, tiers[0]
}
