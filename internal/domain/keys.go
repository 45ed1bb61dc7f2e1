package domain

import "context"

type CtxKey string

const (
	KeyUserID    CtxKey = "UserID"
	KeyUserEmail CtxKey = "Email"
	KeyRequestID CtxKey = "RequestID"
)

// Identity is the authenticated caller decoded from a session token.
type Identity struct {
	UserID string
	Email  string
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	ctx = context.WithValue(ctx, KeyUserID, id.UserID)
	return context.WithValue(ctx, KeyUserEmail, id.Email)
}

// UserIDFromContext returns the authenticated user id, or "" when the request is anonymous.
func UserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(KeyUserID).(string)
	return id
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id := UserIDFromContext(ctx)
	if id == "" {
		return Identity{}, false
	}
	email, _ := ctx.Value(KeyUserEmail).(string)
	return Identity{UserID: id, Email: email}, true
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, KeyRequestID, requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(KeyRequestID).(string)
	return id
}
