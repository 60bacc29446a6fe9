package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Julianb233/daily-event-insurance-sub010/internal/metrics"
)

const defaultPersistTimeout = 5 * time.Second

// Recorder is the single entry point for audit entries.
//
// IMPORTANT:
// - Record never fails and never panics; the id is returned even when persistence fails.
// - Every entry is emitted as a structured log line before persistence is attempted.
type Recorder struct {
	store     Store
	log       *slog.Logger
	clock     func() time.Time
	newID     func() string
	timeout   time.Duration
	retention int
}

type RecorderOption func(*Recorder)

func WithClock(clock func() time.Time) RecorderOption {
	return func(r *Recorder) { r.clock = clock }
}

func WithIDGenerator(fn func() string) RecorderOption {
	return func(r *Recorder) { r.newID = fn }
}

// WithPersistTimeout bounds a single store write.
func WithPersistTimeout(d time.Duration) RecorderOption {
	return func(r *Recorder) { r.timeout = d }
}

// WithRetentionDays changes the default retention applied when callers leave it unset.
func WithRetentionDays(days int) RecorderOption {
	return func(r *Recorder) {
		if days > 0 {
			r.retention = days
		}
	}
}

// NewRecorder builds a Recorder. A nil store records to the log only.
func NewRecorder(log *slog.Logger, store Store, opts ...RecorderOption) *Recorder {
	if log == nil {
		log = slog.Default()
	}
	r := &Recorder{
		store:     store,
		log:       log,
		clock:     time.Now,
		newID:     uuid.NewString,
		timeout:   defaultPersistTimeout,
		retention: DefaultRetentionDays,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Record builds, logs and persists one entry and returns its id.
// Request correlation found in ctx fills any option the caller left empty.
func (r *Recorder) Record(ctx context.Context, ev Event, action, description string, outcome Outcome, opts Options) string {
	e := r.build(ctx, ev, action, description, outcome, opts)

	if !ev.Valid() {
		r.log.LogAttrs(ctx, slog.LevelWarn, "audit event outside taxonomy",
			slog.String("category", string(e.Category)), slog.String("event_type", string(e.EventType)))
	}

	level := slog.LevelInfo
	if !e.Success {
		level = slog.LevelWarn
	}
	r.log.LogAttrs(ctx, level, "audit_log", e.logAttrs("audit_log")...)
	metrics.RecordAuditEntry(string(e.Category), e.Success)

	if r.store == nil {
		return e.ID
	}
	if err := r.persist(ctx, e); err != nil {
		metrics.RecordAuditPersistFailure(r.store.Name())
		attrs := append(e.logAttrs("audit_log_failure"),
			slog.String("sink", r.store.Name()),
			slog.String("error", err.Error()),
		)
		r.log.LogAttrs(ctx, slog.LevelError, "audit_log_failure", attrs...)
	}
	return e.ID
}

func (r *Recorder) build(ctx context.Context, ev Event, action, description string, outcome Outcome, opts Options) Entry {
	merged := opts.over(contextOptions(ctx))
	if action == "" {
		action = ev.Action()
	}
	retention := r.retention
	if merged.RetentionDays > 0 {
		retention = merged.RetentionDays
	}
	errMsg := outcome.Error
	if !outcome.Success && errMsg == "" {
		errMsg = description
	}

	return Entry{
		ID:            r.newID(),
		Timestamp:     r.clock().UTC(),
		Category:      ev.Category(),
		EventType:     ev.Type(),
		Action:        action,
		Description:   description,
		UserID:        merged.UserID,
		UserEmail:     merged.UserEmail,
		UserRole:      merged.UserRole,
		PartnerID:     merged.PartnerID,
		ResourceType:  merged.ResourceType,
		ResourceID:    merged.ResourceID,
		IPAddress:     merged.IPAddress,
		UserAgent:     merged.UserAgent,
		RequestID:     merged.RequestID,
		SessionID:     merged.SessionID,
		Success:       outcome.Success,
		ErrorMessage:  errMsg,
		Details:       merged.Details,
		PIIAccessed:   merged.PIIAccessed,
		RetentionDays: retention,
	}
}

// persist makes one write attempt. Request cancellation does not abort it.
func (r *Recorder) persist(ctx context.Context, e Entry) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("audit store panic: %v", p)
		}
	}()

	ctx = context.WithoutCancel(ctx)
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	return r.store.Append(ctx, e)
}
