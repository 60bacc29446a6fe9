package commission

import (
	"context"
	"sort"
	"time"
)

func bound(n int) *int { return &n }

// DefaultTiers are the standard bands used when no tiers are configured.
// Bronze starts at 500 participants a month.
func DefaultTiers() []Tier {
	return []Tier{
		{ID: "tier-bronze", Name: "Bronze", MinVolume: 500, MaxVolume: bound(999), Rate: 0.40, Status: TierStatusActive, SortOrder: 1},
		{ID: "tier-silver", Name: "Silver", MinVolume: 1000, MaxVolume: bound(2499), Rate: 0.45, FlatBonus: 10, Status: TierStatusActive, SortOrder: 2},
		{ID: "tier-gold", Name: "Gold", MinVolume: 2500, MaxVolume: bound(4999), Rate: 0.50, FlatBonus: 25, Status: TierStatusActive, SortOrder: 3},
		{ID: "tier-platinum", Name: "Platinum", MinVolume: 5000, Rate: 0.55, FlatBonus: 50, Status: TierStatusActive, SortOrder: 4},
	}
}

// MemoryRepo is a simple in-memory repository for tests and the fixture data source.
type MemoryRepo struct {
	Tiers     []Tier
	Overrides []Override
}

// NewMemoryRepo returns a repo seeded with DefaultTiers.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{Tiers: DefaultTiers()}
}

func (r *MemoryRepo) ActiveTiers(ctx context.Context) ([]Tier, error) {
	_ = ctx

	out := make([]Tier, 0, len(r.Tiers))
	for _, t := range r.Tiers {
		if t.Status == TierStatusActive {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].MinVolume < out[j].MinVolume
	})
	return out, nil
}

func (r *MemoryRepo) FindOverride(ctx context.Context, partnerID string, at time.Time) (Override, Tier, bool, error) {
	_ = ctx

	for _, o := range r.Overrides {
		if o.PartnerID != partnerID || !o.activeAt(at) {
			continue
		}
		for _, t := range r.Tiers {
			if t.ID == o.TierID {
				return o, t, true, nil
			}
		}
	}
	return Override{}, Tier{}, false, nil
}
