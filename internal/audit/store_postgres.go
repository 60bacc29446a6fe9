package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB mirrors the subset of *pgxpool.Pool used by PostgresStore.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresStore writes entries to the audit_logs table.
//
// Storage recommendation:
// - INSERT-only grants for the service role.
// - Optional: trigger to prevent UPDATE/DELETE.
// - Optional: partition by timestamp and drop partitions past retention_days.
type PostgresStore struct {
	db DB
}

func NewPostgresStore(db DB) *PostgresStore { return &PostgresStore{db: db} }

func (s *PostgresStore) Name() string { return "postgres" }

const insertAuditSQL = `INSERT INTO audit_logs (
	id, timestamp, category, event_type, action, description,
	user_id, user_email, user_role, partner_id, resource_type, resource_id,
	ip_address, user_agent, request_id, session_id,
	success, error_message, details, pii_accessed, retention_days
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`

func (s *PostgresStore) Append(ctx context.Context, e Entry) error {
	var details []byte
	if len(e.Details) > 0 {
		b, err := json.Marshal(e.Details)
		if err != nil {
			return fmt.Errorf("encode audit details: %w", err)
		}
		details = b
	}

	_, err := s.db.Exec(ctx, insertAuditSQL,
		e.ID, e.Timestamp, string(e.Category), string(e.EventType), e.Action, e.Description,
		nullable(e.UserID), nullable(e.UserEmail), nullable(e.UserRole), nullable(e.PartnerID),
		nullable(e.ResourceType), nullable(e.ResourceID),
		nullable(e.IPAddress), nullable(e.UserAgent), nullable(e.RequestID), nullable(e.SessionID),
		e.Success, nullable(e.ErrorMessage), details, e.PIIAccessed, e.RetentionDays,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

func (s *PostgresStore) Recent(ctx context.Context, q Query) ([]Entry, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if q.Category != "" {
		add("category = $%d", string(q.Category))
	}
	if q.EventType != "" {
		add("event_type = $%d", string(q.EventType))
	}
	if q.PartnerID != "" {
		add("partner_id = $%d", q.PartnerID)
	}
	sql := `SELECT id, timestamp, category, event_type, action, description,
	COALESCE(user_id, ''), COALESCE(user_email, ''), COALESCE(user_role, ''), COALESCE(partner_id, ''),
	COALESCE(resource_type, ''), COALESCE(resource_id, ''), COALESCE(ip_address, ''), COALESCE(user_agent, ''),
	COALESCE(request_id, ''), COALESCE(session_id, ''), success, COALESCE(error_message, ''),
	details, pii_accessed, retention_days FROM audit_logs`
	if len(conds) > 0 {
		sql += " WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, q.limit())
	sql += fmt.Sprintf(" ORDER BY timestamp DESC LIMIT $%d", len(args))

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query audit logs: %w", err)
	}
	defer rows.Close()

	out := make([]Entry, 0)
	for rows.Next() {
		var (
			e        Entry
			category string
			evType   string
			details  []byte
		)
		if err := rows.Scan(&e.ID, &e.Timestamp, &category, &evType, &e.Action, &e.Description,
			&e.UserID, &e.UserEmail, &e.UserRole, &e.PartnerID, &e.ResourceType, &e.ResourceID,
			&e.IPAddress, &e.UserAgent, &e.RequestID, &e.SessionID, &e.Success, &e.ErrorMessage,
			&details, &e.PIIAccessed, &e.RetentionDays); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		e.Category = Category(category)
		e.EventType = EventType(evType)
		if len(details) > 0 {
			if err := json.Unmarshal(details, &e.Details); err != nil {
				return nil, fmt.Errorf("decode audit details: %w", err)
			}
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
