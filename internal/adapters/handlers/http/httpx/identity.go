package httpx

import "context"

type userKey struct{}

// WithUser stores the authenticated user email in ctx
func WithUser(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, userKey{}, email)
}

// User returns the authenticated user email set by the identity middleware
func User(ctx context.Context) string {
	email, _ := ctx.Value(userKey{}).(string)
	return email
}
