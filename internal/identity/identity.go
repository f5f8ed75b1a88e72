// Package identity resolves the signed-in user of a request.
package identity

import "context"

// Provider reports the current user, if any.
type Provider interface {
	CurrentUserID(ctx context.Context) (string, bool)
}

type contextKey struct{}

// WithUserID returns a copy of ctx carrying userID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, contextKey{}, userID)
}

// UserIDFromContext returns the user placed by WithUserID.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(contextKey{}).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// ContextProvider reads the user from the request context populated by the
// auth middleware.
type ContextProvider struct{}

func (ContextProvider) CurrentUserID(ctx context.Context) (string, bool) {
	return UserIDFromContext(ctx)
}

// Static always reports the same user. An empty value means anonymous.
type Static string

func (s Static) CurrentUserID(context.Context) (string, bool) {
	if s == "" {
		return "", false
	}
	return string(s), true
}
