package audit

import (
	"context"
	"fmt"

	"github.com/Julianb233/daily-event-insurance-sub010/internal/export"
)

// Helpers encode the canonical wording, details and PII flags for common events.
// Caller options are applied on top of the helper's own, except that PII flags
// set by a helper cannot be cleared.

type AuthAudit struct{ r *Recorder }
type TransactionAudit struct{ r *Recorder }
type PartnerAudit struct{ r *Recorder }
type ComplianceAudit struct{ r *Recorder }

func (r *Recorder) Auth() AuthAudit               { return AuthAudit{r} }
func (r *Recorder) Transaction() TransactionAudit { return TransactionAudit{r} }
func (r *Recorder) Partner() PartnerAudit         { return PartnerAudit{r} }
func (r *Recorder) Compliance() ComplianceAudit   { return ComplianceAudit{r} }

func money(amount float64) string { return export.FormatCurrency(amount) }

func (a AuthAudit) LoginSuccess(ctx context.Context, userID, email string, opts Options) string {
	return a.r.Record(ctx, Authentication(UserLogin), "USER_LOGIN",
		fmt.Sprintf("User %s logged in successfully", email), Succeeded,
		opts.over(Options{UserID: userID, UserEmail: email}))
}

func (a AuthAudit) LoginFailed(ctx context.Context, email, reason string, opts Options) string {
	return a.r.Record(ctx, Authentication(LoginFailed), "USER_LOGIN_FAILED",
		fmt.Sprintf("Login attempt failed for %s: %s", email, reason), Failed(reason),
		opts.over(Options{UserEmail: email}))
}

func (a AuthAudit) Logout(ctx context.Context, userID, email string, opts Options) string {
	return a.r.Record(ctx, Authentication(UserLogout), "USER_LOGOUT",
		fmt.Sprintf("User %s logged out", email), Succeeded,
		opts.over(Options{UserID: userID, UserEmail: email}))
}

func (a AuthAudit) PasswordChanged(ctx context.Context, userID, email string, opts Options) string {
	return a.r.Record(ctx, Authentication(PasswordChanged), "PASSWORD_CHANGED",
		fmt.Sprintf("Password changed for user %s", email), Succeeded,
		opts.over(Options{UserID: userID, UserEmail: email, PIIAccessed: true}))
}

func (t TransactionAudit) QuoteCreated(ctx context.Context, quoteID string, amount float64, opts Options) string {
	return t.r.Record(ctx, Transaction(QuoteCreated), "QUOTE_CREATED",
		fmt.Sprintf("Quote %s created for %s", quoteID, money(amount)), Succeeded,
		opts.over(Options{ResourceType: "quote", ResourceID: quoteID, Details: map[string]any{"amount": amount}}))
}

func (t TransactionAudit) PolicyPurchased(ctx context.Context, policyID string, amount float64, opts Options) string {
	return t.r.Record(ctx, Transaction(PolicyPurchased), "POLICY_PURCHASED",
		fmt.Sprintf("Policy %s purchased for %s", policyID, money(amount)), Succeeded,
		opts.over(Options{ResourceType: "policy", ResourceID: policyID, Details: map[string]any{"amount": amount}}))
}

func (t TransactionAudit) PaymentProcessed(ctx context.Context, paymentID string, amount float64, opts Options) string {
	return t.r.Record(ctx, Transaction(PaymentProcessed), "PAYMENT_PROCESSED",
		fmt.Sprintf("Payment %s processed for %s", paymentID, money(amount)), Succeeded,
		opts.over(Options{ResourceType: "payment", ResourceID: paymentID, Details: map[string]any{"amount": amount}}))
}

func (t TransactionAudit) PaymentFailed(ctx context.Context, paymentID, reason string, opts Options) string {
	return t.r.Record(ctx, Transaction(PaymentFailed), "PAYMENT_FAILED",
		fmt.Sprintf("Payment %s failed: %s", paymentID, reason), Failed(reason),
		opts.over(Options{ResourceType: "payment", ResourceID: paymentID}))
}

func (t TransactionAudit) RefundIssued(ctx context.Context, paymentID string, amount float64, opts Options) string {
	return t.r.Record(ctx, Transaction(RefundIssued), "REFUND_ISSUED",
		fmt.Sprintf("Refund of %s issued for payment %s", money(amount), paymentID), Succeeded,
		opts.over(Options{ResourceType: "payment", ResourceID: paymentID, Details: map[string]any{"amount": amount}}))
}

func (t TransactionAudit) ClaimSubmitted(ctx context.Context, claimID string, amount float64, opts Options) string {
	return t.r.Record(ctx, Transaction(ClaimSubmitted), "CLAIM_SUBMITTED",
		fmt.Sprintf("Claim %s submitted for %s", claimID, money(amount)), Succeeded,
		opts.over(Options{ResourceType: "claim", ResourceID: claimID, Details: map[string]any{"amount": amount}}))
}

func (t TransactionAudit) ClaimApproved(ctx context.Context, claimID string, amount float64, opts Options) string {
	return t.r.Record(ctx, Transaction(ClaimApproved), "CLAIM_APPROVED",
		fmt.Sprintf("Claim %s approved for %s", claimID, money(amount)), Succeeded,
		opts.over(Options{ResourceType: "claim", ResourceID: claimID, Details: map[string]any{"amount": amount}}))
}

// ClaimDenied records a successful denial decision; the reason goes to details.
func (t TransactionAudit) ClaimDenied(ctx context.Context, claimID, reason string, opts Options) string {
	return t.r.Record(ctx, Transaction(ClaimDenied), "CLAIM_DENIED",
		fmt.Sprintf("Claim %s denied: %s", claimID, reason), Succeeded,
		opts.over(Options{ResourceType: "claim", ResourceID: claimID, Details: map[string]any{"reason": reason}}))
}

func (p PartnerAudit) Registered(ctx context.Context, partnerID, businessName string, opts Options) string {
	return p.r.Record(ctx, Partner(PartnerRegistered), "PARTNER_REGISTERED",
		fmt.Sprintf("Partner %s registered", businessName), Succeeded,
		opts.over(Options{PartnerID: partnerID, ResourceType: "partner", ResourceID: partnerID,
			Details: map[string]any{"businessName": businessName}}))
}

func (p PartnerAudit) Approved(ctx context.Context, partnerID, businessName, approvedBy string, opts Options) string {
	return p.r.Record(ctx, Partner(PartnerApproved), "PARTNER_APPROVED",
		fmt.Sprintf("Partner %s approved by %s", businessName, approvedBy), Succeeded,
		opts.over(Options{PartnerID: partnerID, ResourceType: "partner", ResourceID: partnerID,
			Details: map[string]any{"businessName": businessName, "approvedBy": approvedBy}}))
}

func (p PartnerAudit) Suspended(ctx context.Context, partnerID, businessName, reason string, opts Options) string {
	return p.r.Record(ctx, Partner(PartnerSuspended), "PARTNER_SUSPENDED",
		fmt.Sprintf("Partner %s suspended: %s", businessName, reason), Succeeded,
		opts.over(Options{PartnerID: partnerID, ResourceType: "partner", ResourceID: partnerID,
			Details: map[string]any{"businessName": businessName, "reason": reason}}))
}

func (p PartnerAudit) DocumentSigned(ctx context.Context, partnerID, documentType string, opts Options) string {
	return p.r.Record(ctx, Partner(PartnerDocumentSigned), "PARTNER_DOCUMENT_SIGNED",
		fmt.Sprintf("Partner document %s signed", documentType), Succeeded,
		opts.over(Options{PartnerID: partnerID, ResourceType: "partner_document",
			Details: map[string]any{"documentType": documentType}}))
}

func (c ComplianceAudit) KYCInitiated(ctx context.Context, userID, verificationType string, opts Options) string {
	return c.r.Record(ctx, Compliance(KYCInitiated), "KYC_INITIATED",
		fmt.Sprintf("KYC verification %s initiated for user", verificationType), Succeeded,
		opts.over(Options{UserID: userID, ResourceType: "kyc", Details: map[string]any{"verificationType": verificationType}}))
}

func (c ComplianceAudit) KYCCompleted(ctx context.Context, userID, verificationType string, opts Options) string {
	return c.r.Record(ctx, Compliance(KYCCompleted), "KYC_COMPLETED",
		fmt.Sprintf("KYC verification %s completed successfully", verificationType), Succeeded,
		opts.over(Options{UserID: userID, ResourceType: "kyc", PIIAccessed: true,
			Details: map[string]any{"verificationType": verificationType}}))
}

func (c ComplianceAudit) KYCFailed(ctx context.Context, userID, verificationType, reason string, opts Options) string {
	return c.r.Record(ctx, Compliance(KYCFailed), "KYC_FAILED",
		fmt.Sprintf("KYC verification %s failed: %s", verificationType, reason), Failed(reason),
		opts.over(Options{UserID: userID, ResourceType: "kyc",
			Details: map[string]any{"verificationType": verificationType, "reason": reason}}))
}

// PIIAccessed is filed under data_access.
func (c ComplianceAudit) PIIAccessed(ctx context.Context, userID, accessedBy, dataType string, opts Options) string {
	return c.r.Record(ctx, DataAccess(PIIAccessed), "PII_ACCESSED",
		fmt.Sprintf("PII data (%s) accessed by %s", dataType, accessedBy), Succeeded,
		opts.over(Options{UserID: userID, PIIAccessed: true,
			Details: map[string]any{"dataType": dataType, "accessedBy": accessedBy}}))
}

// DataExported is filed under data_access.
func (c ComplianceAudit) DataExported(ctx context.Context, exportedBy, dataType string, recordCount int, opts Options) string {
	return c.r.Record(ctx, DataAccess(DataExported), "DATA_EXPORTED",
		fmt.Sprintf("%d %s records exported by %s", recordCount, dataType, exportedBy), Succeeded,
		opts.over(Options{PIIAccessed: true,
			Details: map[string]any{"dataType": dataType, "recordCount": recordCount, "exportedBy": exportedBy}}))
}

// ReportGenerated is filed under data_access.
func (c ComplianceAudit) ReportGenerated(ctx context.Context, generatedBy, reportType, reportID string, opts Options) string {
	return c.r.Record(ctx, DataAccess(ReportGenerated), "REPORT_GENERATED",
		fmt.Sprintf("%s report %s generated by %s", reportType, reportID, generatedBy), Succeeded,
		opts.over(Options{ResourceType: reportType, ResourceID: reportID,
			Details: map[string]any{"reportType": reportType, "generatedBy": generatedBy}}))
}
