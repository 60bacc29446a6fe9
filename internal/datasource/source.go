package datasource

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidRequest = errors.New("invalid request")
)

// Filter narrows list queries. Zero values mean "no constraint".
// Since is inclusive and Until is exclusive; both apply to CreatedAt.
type Filter struct {
	PartnerID string
	Status    string
	Since     *time.Time
	Until     *time.Time
}

func (f Filter) matches(partnerID, status string, createdAt time.Time) bool {
	if f.PartnerID != "" && partnerID != f.PartnerID {
		return false
	}
	if f.Status != "" && status != f.Status {
		return false
	}
	if f.Since != nil && createdAt.Before(*f.Since) {
		return false
	}
	if f.Until != nil && !createdAt.Before(*f.Until) {
		return false
	}
	return true
}

// Source is the read side of partner, policy, payout and quote records.
// List results are ordered newest first.
type Source interface {
	ListPartners(ctx context.Context, f Filter) ([]Partner, error)
	GetPartner(ctx context.Context, id string) (Partner, error)
	ListPolicies(ctx context.Context, f Filter) ([]Policy, error)
	ListPayouts(ctx context.Context, f Filter) ([]Payout, error)
	ListQuotes(ctx context.Context, f Filter) ([]Quote, error)
}

// PartnerWriter changes partner lifecycle state.
type PartnerWriter interface {
	SetPartnerStatus(ctx context.Context, id, status string) (Partner, error)
}

// Period maps a lookback key (7d, 30d, 90d, 1y, all) to a Since bound relative to now.
// "all" and unknown keys return nil.
func Period(key string, now time.Time) *time.Time {
	var d time.Duration
	switch key {
	case "7d":
		d = 7 * 24 * time.Hour
	case "30d":
		d = 30 * 24 * time.Hour
	case "90d":
		d = 90 * 24 * time.Hour
	case "1y":
		d = 365 * 24 * time.Hour
	default:
		return nil
	}
	since := now.Add(-d)
	return &since
}
