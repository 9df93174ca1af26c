package user

import "context"

type ctxKey string

const contextUserKey ctxKey = "user"

// FromContext returns the authenticated user placed in the request context
// by the auth middleware.
func FromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(contextUserKey).(*User)
	return u, ok
}

func NewContext(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, contextUserKey, u)
}
