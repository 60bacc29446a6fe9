package commission

import "time"

// Tier is a volume band with its commission terms.
// Volumes count event participants per month; MaxVolume nil means unbounded.
type Tier struct {
	ID        string     `json:"id" yaml:"id"`
	Name      string     `json:"name" yaml:"name"`
	MinVolume int        `json:"min_volume" yaml:"min_volume"`
	MaxVolume *int       `json:"max_volume,omitempty" yaml:"max_volume,omitempty"`
	Rate      float64    `json:"rate" yaml:"rate"`
	FlatBonus float64    `json:"flat_bonus" yaml:"flat_bonus"`
	Status    TierStatus `json:"status" yaml:"status"`
	SortOrder int        `json:"sort_order" yaml:"sort_order"`
}

type TierStatus string

const (
	TierStatusActive   TierStatus = "active"
	TierStatusInactive TierStatus = "inactive"
)

func (t Tier) covers(volume int) bool {
	return volume >= t.MinVolume && (t.MaxVolume == nil || volume <= *t.MaxVolume)
}

// Override pins a partner to a tier regardless of volume until it expires.
type Override struct {
	PartnerID string     `json:"partner_id"`
	TierID    string     `json:"tier_id"`
	Reason    string     `json:"reason,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

func (o Override) activeAt(at time.Time) bool {
	return o.ExpiresAt == nil || !at.After(*o.ExpiresAt)
}

// ResolvedTier is the tier that applies to a partner at a given volume.
type ResolvedTier struct {
	Tier
	IsOverride     bool   `json:"is_override"`
	OverrideReason string `json:"override_reason,omitempty"`
}

// Commission is the payout for a batch of premium under one tier.
type Commission struct {
	Amount        float64 `json:"amount"`
	FlatBonus     float64 `json:"flat_bonus"`
	Total         float64 `json:"total"`
	EffectiveRate float64 `json:"effective_rate"`
}

// Progress describes how far a volume is from the next tier.
type Progress struct {
	Current      ResolvedTier  `json:"current"`
	Next         *ResolvedTier `json:"next,omitempty"`
	VolumeToNext int           `json:"volume_to_next"`
	RateIncrease float64       `json:"rate_increase"`
}
