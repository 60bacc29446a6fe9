package datasource

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB mirrors the subset of *pgxpool.Pool used by the Postgres adapters.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresSource reads records from the partners, policies, partner_payouts and quotes tables.
type PostgresSource struct {
	db DB
}

func NewPostgresSource(db DB) *PostgresSource { return &PostgresSource{db: db} }

const partnerColumns = `id, business_name, contact_name, contact_email, contact_phone, status,
	business_type, integration_type, commission_tier, commission_rate,
	COALESCE(payout_method, ''), COALESCE(payout_last_four, ''), created_at`

func scanPartner(row pgx.Row) (Partner, error) {
	var p Partner
	err := row.Scan(&p.ID, &p.BusinessName, &p.ContactName, &p.ContactEmail, &p.ContactPhone, &p.Status,
		&p.BusinessType, &p.IntegrationType, &p.CommissionTier, &p.CommissionRate,
		&p.PayoutMethod, &p.PayoutLastFour, &p.CreatedAt)
	return p, err
}

// where builds a parameterised WHERE clause. partnerCol is empty for tables keyed by partner id itself.
func where(f Filter, partnerCol string) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.PartnerID != "" && partnerCol != "" {
		add(partnerCol+" = $%d", f.PartnerID)
	}
	if f.Status != "" {
		add("status = $%d", f.Status)
	}
	if f.Since != nil {
		add("created_at >= $%d", *f.Since)
	}
	if f.Until != nil {
		add("created_at < $%d", *f.Until)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (s *PostgresSource) ListPartners(ctx context.Context, f Filter) ([]Partner, error) {
	clause, args := where(f, "id")
	rows, err := s.db.Query(ctx, "SELECT "+partnerColumns+" FROM partners"+clause+" ORDER BY created_at DESC", args...)
	if err != nil {
		return nil, fmt.Errorf("list partners: %w", err)
	}
	defer rows.Close()

	out := make([]Partner, 0)
	for rows.Next() {
		p, err := scanPartner(rows)
		if err != nil {
			return nil, fmt.Errorf("scan partner: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *PostgresSource) GetPartner(ctx context.Context, id string) (Partner, error) {
	if strings.TrimSpace(id) == "" {
		return Partner{}, fmt.Errorf("%w: partner id required", ErrInvalidRequest)
	}
	p, err := scanPartner(s.db.QueryRow(ctx, "SELECT "+partnerColumns+" FROM partners WHERE id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Partner{}, fmt.Errorf("partner %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Partner{}, fmt.Errorf("get partner: %w", err)
	}
	return p, nil
}

func (s *PostgresSource) SetPartnerStatus(ctx context.Context, id, status string) (Partner, error) {
	p, err := scanPartner(s.db.QueryRow(ctx,
		"UPDATE partners SET status = $2, updated_at = now() WHERE id = $1 RETURNING "+partnerColumns, id, status))
	if errors.Is(err, pgx.ErrNoRows) {
		return Partner{}, fmt.Errorf("partner %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Partner{}, fmt.Errorf("update partner status: %w", err)
	}
	return p, nil
}

func (s *PostgresSource) ListPolicies(ctx context.Context, f Filter) ([]Policy, error) {
	clause, args := where(f, "partner_id")
	rows, err := s.db.Query(ctx, `SELECT id, policy_number, partner_id, customer_name, customer_email,
	event_type, event_date, participants, coverage_type, premium, commission, status, created_at
	FROM policies`+clause+" ORDER BY created_at DESC", args...)
	if err != nil {
		return nil, fmt.Errorf("list policies: %w", err)
	}
	defer rows.Close()

	out := make([]Policy, 0)
	for rows.Next() {
		var p Policy
		if err := rows.Scan(&p.ID, &p.PolicyNumber, &p.PartnerID, &p.CustomerName, &p.CustomerEmail,
			&p.EventType, &p.EventDate, &p.Participants, &p.CoverageType, &p.Premium, &p.Commission,
			&p.Status, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan policy: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *PostgresSource) ListPayouts(ctx context.Context, f Filter) ([]Payout, error) {
	clause, args := where(f, "partner_id")
	rows, err := s.db.Query(ctx, `SELECT id, partner_id, year_month, tier, commission_rate, total_policies,
	total_participants, gross_revenue, commission_amount, bonus_amount, status, created_at, paid_at
	FROM partner_payouts`+clause+" ORDER BY created_at DESC", args...)
	if err != nil {
		return nil, fmt.Errorf("list payouts: %w", err)
	}
	defer rows.Close()

	out := make([]Payout, 0)
	for rows.Next() {
		var p Payout
		if err := rows.Scan(&p.ID, &p.PartnerID, &p.YearMonth, &p.Tier, &p.CommissionRate, &p.TotalPolicies,
			&p.TotalParticipants, &p.GrossRevenue, &p.CommissionAmount, &p.BonusAmount, &p.Status,
			&p.CreatedAt, &p.PaidAt); err != nil {
			return nil, fmt.Errorf("scan payout: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *PostgresSource) ListQuotes(ctx context.Context, f Filter) ([]Quote, error) {
	clause, args := where(f, "partner_id")
	rows, err := s.db.Query(ctx, `SELECT quote_number, partner_id, customer_name, customer_email, event_type,
	event_date, participants, premium, status, created_at, expires_at
	FROM quotes`+clause+" ORDER BY created_at DESC", args...)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	defer rows.Close()

	out := make([]Quote, 0)
	for rows.Next() {
		var q Quote
		if err := rows.Scan(&q.QuoteNumber, &q.PartnerID, &q.CustomerName, &q.CustomerEmail, &q.EventType,
			&q.EventDate, &q.Participants, &q.Premium, &q.Status, &q.CreatedAt, &q.ExpiresAt); err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		out = append(out, q)
	}
	return out, rows.Err()
}
