package audit

import (
	"context"
	"fmt"
)

type SecurityAudit struct{ r *Recorder }
type AdminAudit struct{ r *Recorder }
type SystemAudit struct{ r *Recorder }

func (r *Recorder) Security() SecurityAudit { return SecurityAudit{r} }
func (r *Recorder) Admin() AdminAudit       { return AdminAudit{r} }
func (r *Recorder) System() SystemAudit     { return SystemAudit{r} }

// Security events always describe a rejected or suspicious outcome.

func (s SecurityAudit) SuspiciousActivity(ctx context.Context, description string, opts Options) string {
	return s.r.Record(ctx, Security(SuspiciousActivity), "SUSPICIOUS_ACTIVITY",
		description, Failed(description), opts)
}

func (s SecurityAudit) RateLimitExceeded(ctx context.Context, endpoint string, opts Options) string {
	desc := fmt.Sprintf("Rate limit exceeded for endpoint %s", endpoint)
	return s.r.Record(ctx, Security(RateLimitExceeded), "RATE_LIMIT_EXCEEDED", desc, Failed(desc),
		opts.over(Options{Details: map[string]any{"endpoint": endpoint}}))
}

func (s SecurityAudit) InvalidSignature(ctx context.Context, source string, opts Options) string {
	desc := fmt.Sprintf("Invalid webhook signature from %s", source)
	return s.r.Record(ctx, Security(InvalidSignature), "INVALID_SIGNATURE", desc, Failed(desc),
		opts.over(Options{Details: map[string]any{"source": source}}))
}

func (s SecurityAudit) BruteForceDetected(ctx context.Context, targetEmail string, attemptCount int, opts Options) string {
	desc := fmt.Sprintf("Possible brute force attack detected: %d failed attempts for %s", attemptCount, targetEmail)
	return s.r.Record(ctx, Security(BruteForceDetected), "BRUTE_FORCE_DETECTED", desc, Failed(desc),
		opts.over(Options{UserEmail: targetEmail, Details: map[string]any{"attemptCount": attemptCount}}))
}

func (a AdminAudit) SettingsChanged(ctx context.Context, changedBy, settingName string, opts Options) string {
	return a.r.Record(ctx, Admin(SettingsChanged), "SETTINGS_CHANGED",
		fmt.Sprintf("Setting %s changed by %s", settingName, changedBy), Succeeded,
		opts.over(Options{Details: map[string]any{"settingName": settingName, "changedBy": changedBy}}))
}

func (a AdminAudit) UserCreated(ctx context.Context, createdBy, newUserEmail string, opts Options) string {
	return a.r.Record(ctx, Admin(UserCreated), "USER_CREATED",
		fmt.Sprintf("User %s created by %s", newUserEmail, createdBy), Succeeded,
		opts.over(Options{Details: map[string]any{"newUserEmail": newUserEmail, "createdBy": createdBy}}))
}

func (a AdminAudit) UserDisabled(ctx context.Context, disabledBy, targetUserEmail, reason string, opts Options) string {
	return a.r.Record(ctx, Admin(UserDisabled), "USER_DISABLED",
		fmt.Sprintf("User %s disabled by %s: %s", targetUserEmail, disabledBy, reason), Succeeded,
		opts.over(Options{Details: map[string]any{"targetUserEmail": targetUserEmail, "disabledBy": disabledBy, "reason": reason}}))
}

func (a AdminAudit) BulkOperation(ctx context.Context, performedBy, operation string, recordCount int, opts Options) string {
	return a.r.Record(ctx, Admin(BulkOperation), "BULK_OPERATION",
		fmt.Sprintf("Bulk %s performed on %d records by %s", operation, recordCount, performedBy), Succeeded,
		opts.over(Options{Details: map[string]any{"operation": operation, "recordCount": recordCount, "performedBy": performedBy}}))
}

func (s SystemAudit) WebhookReceived(ctx context.Context, source, eventType string, opts Options) string {
	return s.r.Record(ctx, System(WebhookReceived), "WEBHOOK_RECEIVED",
		fmt.Sprintf("Webhook received from %s: %s", source, eventType), Succeeded,
		opts.over(Options{Details: map[string]any{"source": source, "eventType": eventType}}))
}

func (s SystemAudit) WebhookProcessed(ctx context.Context, source, eventType string, opts Options) string {
	return s.r.Record(ctx, System(WebhookProcessed), "WEBHOOK_PROCESSED",
		fmt.Sprintf("Webhook from %s processed successfully: %s", source, eventType), Succeeded,
		opts.over(Options{Details: map[string]any{"source": source, "eventType": eventType}}))
}

func (s SystemAudit) WebhookFailed(ctx context.Context, source, eventType, errMsg string, opts Options) string {
	return s.r.Record(ctx, System(WebhookFailed), "WEBHOOK_FAILED",
		fmt.Sprintf("Webhook from %s failed: %s", source, eventType), Failed(errMsg),
		opts.over(Options{Details: map[string]any{"source": source, "eventType": eventType, "error": errMsg}}))
}

func (s SystemAudit) SystemError(ctx context.Context, component, errMsg string, opts Options) string {
	return s.r.Record(ctx, System(SystemError), "SYSTEM_ERROR",
		fmt.Sprintf("System error in %s: %s", component, errMsg), Failed(errMsg),
		opts.over(Options{Details: map[string]any{"component": component, "error": errMsg}}))
}
