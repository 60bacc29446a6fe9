package audit

import (
	"log/slog"
	"maps"
	"time"
)

// DefaultRetentionDays is seven years, the retention horizon for insurance records.
const DefaultRetentionDays = 2555

// Entry is an immutable, append-only audit record.
//
// Invariants:
// - Entries are never updated or deleted.
// - Category and EventType always form a taxonomy pair.
// - Persistence is best-effort; callers never block on audit failures.
type Entry struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Category    Category  `json:"category"`
	EventType   EventType `json:"event_type"`
	Action      string    `json:"action"`
	Description string    `json:"description"`

	UserID       string `json:"user_id,omitempty"`
	UserEmail    string `json:"user_email,omitempty"`
	UserRole     string `json:"user_role,omitempty"`
	PartnerID    string `json:"partner_id,omitempty"`
	ResourceType string `json:"resource_type,omitempty"`
	ResourceID   string `json:"resource_id,omitempty"`
	IPAddress    string `json:"ip_address,omitempty"`
	UserAgent    string `json:"user_agent,omitempty"`
	RequestID    string `json:"request_id,omitempty"`
	SessionID    string `json:"session_id,omitempty"`

	Success       bool           `json:"success"`
	ErrorMessage  string         `json:"error_message,omitempty"`
	Details       map[string]any `json:"details,omitempty"`
	PIIAccessed   bool           `json:"pii_accessed"`
	RetentionDays int            `json:"retention_days"`
}

// Options carries the optional context of an audit entry.
// Empty fields are treated as absent.
type Options struct {
	UserID       string
	UserEmail    string
	UserRole     string
	PartnerID    string
	ResourceType string
	ResourceID   string
	IPAddress    string
	UserAgent    string
	RequestID    string
	SessionID    string
	Details      map[string]any
	PIIAccessed  bool

	// RetentionDays overrides DefaultRetentionDays when positive.
	RetentionDays int
}

// over returns base with every non-empty field of o applied on top.
// Details maps are merged key by key.
func (o Options) over(base Options) Options {
	out := base
	pick := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	pick(&out.UserID, o.UserID)
	pick(&out.UserEmail, o.UserEmail)
	pick(&out.UserRole, o.UserRole)
	pick(&out.PartnerID, o.PartnerID)
	pick(&out.ResourceType, o.ResourceType)
	pick(&out.ResourceID, o.ResourceID)
	pick(&out.IPAddress, o.IPAddress)
	pick(&out.UserAgent, o.UserAgent)
	pick(&out.RequestID, o.RequestID)
	pick(&out.SessionID, o.SessionID)
	out.PIIAccessed = base.PIIAccessed || o.PIIAccessed
	if o.RetentionDays > 0 {
		out.RetentionDays = o.RetentionDays
	}
	if len(base.Details) > 0 || len(o.Details) > 0 {
		out.Details = make(map[string]any, len(base.Details)+len(o.Details))
		maps.Copy(out.Details, base.Details)
		maps.Copy(out.Details, o.Details)
	}
	return out
}

// Outcome is the result an audit entry describes.
type Outcome struct {
	Success bool
	Error   string
}

// Succeeded marks a successful operation.
var Succeeded = Outcome{Success: true}

// Failed marks a failed operation with its reason.
func Failed(reason string) Outcome { return Outcome{Error: reason} }

func (e Entry) logAttrs(typ string) []slog.Attr {
	attrs := []slog.Attr{
		slog.String("type", typ),
		slog.String("id", e.ID),
		slog.Time("timestamp", e.Timestamp),
		slog.String("category", string(e.Category)),
		slog.String("event_type", string(e.EventType)),
		slog.String("action", e.Action),
		slog.String("description", e.Description),
		slog.Bool("success", e.Success),
	}
	optional := []struct{ key, val string }{
		{"error_message", e.ErrorMessage},
		{"user_id", e.UserID},
		{"user_email", e.UserEmail},
		{"user_role", e.UserRole},
		{"partner_id", e.PartnerID},
		{"resource_type", e.ResourceType},
		{"resource_id", e.ResourceID},
		{"ip_address", e.IPAddress},
		{"user_agent", e.UserAgent},
		{"request_id", e.RequestID},
		{"session_id", e.SessionID},
	}
	for _, kv := range optional {
		if kv.val != "" {
			attrs = append(attrs, slog.String(kv.key, kv.val))
		}
	}
	if len(e.Details) > 0 {
		attrs = append(attrs, slog.Any("details", e.Details))
	}
	return append(attrs,
		slog.Bool("pii_accessed", e.PIIAccessed),
		slog.Int("retention_days", e.RetentionDays),
	)
}
