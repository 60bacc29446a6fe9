package auth

import (
	"context"
	"errors"
)

// Identity is the authenticated caller as carried by an access token.
type Identity struct {
	UserID    string
	Email     string
	PartnerID string
	Role      string
}

type ctxKey int

const ctxIdentity ctxKey = iota

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxIdentity, id)
}

func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxIdentity).(Identity)
	return id, ok && id.UserID != ""
}

func UserID(ctx context.Context) (string, error) {
	if id, ok := IdentityFrom(ctx); ok {
		return id.UserID, nil
	}
	return "", errors.New("user_id not in context")
}

func PartnerID(ctx context.Context) (string, error) {
	if id, ok := IdentityFrom(ctx); ok && id.PartnerID != "" {
		return id.PartnerID, nil
	}
	return "", errors.New("partner_id not in context")
}

func Role(ctx context.Context) (string, error) {
	if id, ok := IdentityFrom(ctx); ok && id.Role != "" {
		return id.Role, nil
	}
	return "", errors.New("role not in context")
}
