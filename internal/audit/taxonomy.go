package audit

import "strings"

// Category groups audit event types.
type Category string

const (
	CategoryAuthentication   Category = "authentication"
	CategoryAuthorization    Category = "authorization"
	CategoryTransaction      Category = "transaction"
	CategoryDataAccess       Category = "data_access"
	CategoryDataModification Category = "data_modification"
	CategoryPartner          Category = "partner"
	CategoryCompliance       Category = "compliance"
	CategorySecurity         Category = "security"
	CategoryAdmin            Category = "admin"
	CategorySystem           Category = "system"
)

// EventType is the wire name of an audit event.
type EventType string

// Event pairs an event type with the one category it belongs to.
// Build it with the per-category constructors below; the zero value is invalid.
type Event struct {
	category  Category
	eventType EventType
}

func (e Event) Category() Category { return e.category }
func (e Event) Type() EventType    { return e.eventType }

// Valid reports whether the pair is part of the taxonomy.
func (e Event) Valid() bool {
	types, ok := taxonomy[e.category]
	if !ok {
		return false
	}
	_, ok = types[e.eventType]
	return ok
}

// Action is the default upper-case action name, e.g. policy_purchased -> POLICY_PURCHASED.
func (e Event) Action() string { return strings.ToUpper(string(e.eventType)) }

func (e Event) String() string { return string(e.category) + "/" + string(e.eventType) }

type AuthenticationEvent EventType

const (
	UserLogin       AuthenticationEvent = "user_login"
	UserLogout      AuthenticationEvent = "user_logout"
	LoginFailed     AuthenticationEvent = "login_failed"
	PasswordChanged AuthenticationEvent = "password_changed"
	MFAEnabled      AuthenticationEvent = "mfa_enabled"
	MFADisabled     AuthenticationEvent = "mfa_disabled"
	SessionExpired  AuthenticationEvent = "session_expired"
)

func Authentication(t AuthenticationEvent) Event {
	return Event{category: CategoryAuthentication, eventType: EventType(t)}
}

type AuthorizationEvent EventType

const (
	PermissionGranted AuthorizationEvent = "permission_granted"
	PermissionDenied  AuthorizationEvent = "permission_denied"
	RoleAssigned      AuthorizationEvent = "role_assigned"
	RoleRemoved       AuthorizationEvent = "role_removed"
)

func Authorization(t AuthorizationEvent) Event {
	return Event{category: CategoryAuthorization, eventType: EventType(t)}
}

type TransactionEvent EventType

const (
	QuoteCreated     TransactionEvent = "quote_created"
	QuoteExpired     TransactionEvent = "quote_expired"
	PolicyPurchased  TransactionEvent = "policy_purchased"
	PolicyCancelled  TransactionEvent = "policy_cancelled"
	PaymentProcessed TransactionEvent = "payment_processed"
	PaymentFailed    TransactionEvent = "payment_failed"
	RefundIssued     TransactionEvent = "refund_issued"
	ClaimSubmitted   TransactionEvent = "claim_submitted"
	ClaimUpdated     TransactionEvent = "claim_updated"
	ClaimApproved    TransactionEvent = "claim_approved"
	ClaimDenied      TransactionEvent = "claim_denied"
	ClaimPaid        TransactionEvent = "claim_paid"
)

func Transaction(t TransactionEvent) Event {
	return Event{category: CategoryTransaction, eventType: EventType(t)}
}

type DataAccessEvent EventType

const (
	PIIAccessed     DataAccessEvent = "pii_accessed"
	DataExported    DataAccessEvent = "data_exported"
	ReportGenerated DataAccessEvent = "report_generated"
)

func DataAccess(t DataAccessEvent) Event {
	return Event{category: CategoryDataAccess, eventType: EventType(t)}
}

type DataModificationEvent EventType

const (
	RecordCreated DataModificationEvent = "record_created"
	RecordUpdated DataModificationEvent = "record_updated"
	RecordDeleted DataModificationEvent = "record_deleted"
)

func DataModification(t DataModificationEvent) Event {
	return Event{category: CategoryDataModification, eventType: EventType(t)}
}

type PartnerEvent EventType

const (
	PartnerRegistered        PartnerEvent = "partner_registered"
	PartnerApproved          PartnerEvent = "partner_approved"
	PartnerSuspended         PartnerEvent = "partner_suspended"
	PartnerDocumentSigned    PartnerEvent = "partner_document_signed"
	PartnerDocumentRequested PartnerEvent = "partner_document_requested"
)

func Partner(t PartnerEvent) Event {
	return Event{category: CategoryPartner, eventType: EventType(t)}
}

type ComplianceEvent EventType

const (
	KYCInitiated          ComplianceEvent = "kyc_initiated"
	KYCCompleted          ComplianceEvent = "kyc_completed"
	KYCFailed             ComplianceEvent = "kyc_failed"
	VerificationCompleted ComplianceEvent = "verification_completed"
	ComplianceCheckPassed ComplianceEvent = "compliance_check_passed"
	ComplianceCheckFailed ComplianceEvent = "compliance_check_failed"
)

func Compliance(t ComplianceEvent) Event {
	return Event{category: CategoryCompliance, eventType: EventType(t)}
}

type SecurityEvent EventType

const (
	SuspiciousActivity SecurityEvent = "suspicious_activity"
	RateLimitExceeded  SecurityEvent = "rate_limit_exceeded"
	InvalidSignature   SecurityEvent = "invalid_signature"
	BruteForceDetected SecurityEvent = "brute_force_detected"
)

func Security(t SecurityEvent) Event {
	return Event{category: CategorySecurity, eventType: EventType(t)}
}

type AdminEvent EventType

const (
	SettingsChanged AdminEvent = "settings_changed"
	UserCreated     AdminEvent = "user_created"
	UserDisabled    AdminEvent = "user_disabled"
	BulkOperation   AdminEvent = "bulk_operation"
)

func Admin(t AdminEvent) Event {
	return Event{category: CategoryAdmin, eventType: EventType(t)}
}

type SystemEvent EventType

const (
	WebhookReceived  SystemEvent = "webhook_received"
	WebhookProcessed SystemEvent = "webhook_processed"
	WebhookFailed    SystemEvent = "webhook_failed"
	SystemError      SystemEvent = "system_error"
)

func System(t SystemEvent) Event {
	return Event{category: CategorySystem, eventType: EventType(t)}
}

var taxonomy = map[Category]map[EventType]struct{}{
	CategoryAuthentication: set(UserLogin, UserLogout, LoginFailed, PasswordChanged, MFAEnabled, MFADisabled, SessionExpired),
	CategoryAuthorization:  set(PermissionGranted, PermissionDenied, RoleAssigned, RoleRemoved),
	CategoryTransaction: set(QuoteCreated, QuoteExpired, PolicyPurchased, PolicyCancelled, PaymentProcessed,
		PaymentFailed, RefundIssued, ClaimSubmitted, ClaimUpdated, ClaimApproved, ClaimDenied, ClaimPaid),
	CategoryDataAccess:       set(PIIAccessed, DataExported, ReportGenerated),
	CategoryDataModification: set(RecordCreated, RecordUpdated, RecordDeleted),
	CategoryPartner: set(PartnerRegistered, PartnerApproved, PartnerSuspended, PartnerDocumentSigned,
		PartnerDocumentRequested),
	CategoryCompliance: set(KYCInitiated, KYCCompleted, KYCFailed, VerificationCompleted, ComplianceCheckPassed,
		ComplianceCheckFailed),
	CategorySecurity: set(SuspiciousActivity, RateLimitExceeded, InvalidSignature, BruteForceDetected),
	CategoryAdmin:    set(SettingsChanged, UserCreated, UserDisabled, BulkOperation),
	CategorySystem:   set(WebhookReceived, WebhookProcessed, WebhookFailed, SystemError),
}

func set[T ~string](types ...T) map[EventType]struct{} {
	out := make(map[EventType]struct{}, len(types))
	for _, t := range types {
		out[EventType(t)] = struct{}{}
	}
	return out
}

// Categories lists every category in display order.
func Categories() []Category {
	return []Category{
		CategoryAuthentication, CategoryAuthorization, CategoryTransaction, CategoryDataAccess,
		CategoryDataModification, CategoryPartner, CategoryCompliance, CategorySecurity,
		CategoryAdmin, CategorySystem,
	}
}

// ParseCategory validates a category name.
func ParseCategory(s string) (Category, bool) {
	c := Category(s)
	_, ok := taxonomy[c]
	return c, ok
}
