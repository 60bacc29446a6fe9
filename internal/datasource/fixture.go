package datasource

import (
	"context"
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed fixtures.yaml
var defaultFixtures []byte

type fixtureFile struct {
	Partners []Partner `yaml:"partners"`
	Policies []Policy  `yaml:"policies"`
	Payouts  []Payout  `yaml:"payouts"`
	Quotes   []Quote   `yaml:"quotes"`
}

// FixtureSource serves records from a YAML document held in memory.
// It backs local development and tests when no database is configured.
type FixtureSource struct {
	mu sync.RWMutex

	partners []Partner
	policies []Policy
	payouts  []Payout
	quotes   []Quote
}

// NewFixtureSource loads the embedded sample dataset.
func NewFixtureSource() (*FixtureSource, error) {
	return LoadFixtures(defaultFixtures)
}

// LoadFixtures parses a YAML fixture document.
func LoadFixtures(raw []byte) (*FixtureSource, error) {
	var f fixtureFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	return &FixtureSource{
		partners: f.Partners,
		policies: f.Policies,
		payouts:  f.Payouts,
		quotes:   f.Quotes,
	}, nil
}

func (s *FixtureSource) ListPartners(ctx context.Context, f Filter) ([]Partner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Partner, 0)
	for _, p := range s.partners {
		if f.matches(p.ID, p.Status, p.CreatedAt) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *FixtureSource) GetPartner(ctx context.Context, id string) (Partner, error) {
	if strings.TrimSpace(id) == "" {
		return Partner{}, fmt.Errorf("%w: partner id required", ErrInvalidRequest)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.partners {
		if p.ID == id {
			return p, nil
		}
	}
	return Partner{}, fmt.Errorf("partner %s: %w", id, ErrNotFound)
}

func (s *FixtureSource) SetPartnerStatus(ctx context.Context, id, status string) (Partner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.partners {
		if s.partners[i].ID == id {
			s.partners[i].Status = status
			return s.partners[i], nil
		}
	}
	return Partner{}, fmt.Errorf("partner %s: %w", id, ErrNotFound)
}

func (s *FixtureSource) ListPolicies(ctx context.Context, f Filter) ([]Policy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Policy, 0)
	for _, p := range s.policies {
		if f.matches(p.PartnerID, p.Status, p.CreatedAt) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *FixtureSource) ListPayouts(ctx context.Context, f Filter) ([]Payout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Payout, 0)
	for _, p := range s.payouts {
		if f.matches(p.PartnerID, p.Status, p.CreatedAt) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *FixtureSource) ListQuotes(ctx context.Context, f Filter) ([]Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Quote, 0)
	for _, q := range s.quotes {
		if f.matches(q.PartnerID, q.Status, q.CreatedAt) {
			out = append(out, q)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
