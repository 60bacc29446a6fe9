package audit

import "context"

// RequestInfo is the transport-level correlation for an audit entry.
type RequestInfo struct {
	RequestID string
	IPAddress string
	UserAgent string
	SessionID string
}

// Actor is the authenticated principal behind a request.
type Actor struct {
	UserID    string
	Email     string
	Role      string
	PartnerID string
}

type requestKey struct{}
type actorKey struct{}

func WithRequest(ctx context.Context, info RequestInfo) context.Context {
	return context.WithValue(ctx, requestKey{}, info)
}

func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

func RequestFrom(ctx context.Context) (RequestInfo, bool) {
	v, ok := ctx.Value(requestKey{}).(RequestInfo)
	return v, ok
}

func ActorFrom(ctx context.Context) (Actor, bool) {
	v, ok := ctx.Value(actorKey{}).(Actor)
	return v, ok
}

// contextOptions turns request correlation in ctx into Options.
func contextOptions(ctx context.Context) Options {
	var o Options
	if r, ok := RequestFrom(ctx); ok {
		o.RequestID = r.RequestID
		o.IPAddress = r.IPAddress
		o.UserAgent = r.UserAgent
		o.SessionID = r.SessionID
	}
	if a, ok := ActorFrom(ctx); ok {
		o.UserID = a.UserID
		o.UserEmail = a.Email
		o.UserRole = a.Role
		o.PartnerID = a.PartnerID
	}
	return o
}
