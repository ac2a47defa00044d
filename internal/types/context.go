package types

import "context"

// ContextKey is the key type for values carried on request contexts.
type ContextKey string

const (
	CtxTenantID  ContextKey = "ctx_tenant_id"
	CtxUserID    ContextKey = "ctx_user_id"
	CtxRequestID ContextKey = "ctx_request_id"
)

// DefaultUserID is used when no authenticated actor is present on the context.
const DefaultUserID = "system"

// GetUserID returns the acting console user from the context.
func GetUserID(ctx context.Context) string {
	if id, ok := ctx.Value(CtxUserID).(string); ok && id != "" {
		return id
	}
	return DefaultUserID
}

// SetUserID returns a child context carrying the acting console user.
func SetUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, CtxUserID, userID)
}

// GetTenantID returns the operator's admin tenancy from the context. This is
// the tenancy the console operator belongs to, not the billed tenant an
// adjustment targets.
func GetTenantID(ctx context.Context) string {
	if id, ok := ctx.Value(CtxTenantID).(string); ok {
		return id
	}
	return ""
}

// SetTenantID returns a child context carrying the operator's admin tenancy.
func SetTenantID(ctx context.Context, tenantID string) context.Context {
	return context.WithValue(ctx, CtxTenantID, tenantID)
}

// GetRequestID returns the request ID from the context, if any.
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(CtxRequestID).(string); ok {
		return id
	}
	return ""
}

// SetRequestID returns a child context carrying the request ID.
func SetRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, CtxRequestID, requestID)
}
