package middleware

import "context"

type userKey struct{}

// UserCtx is the request-scoped identity derived from the session
// cookie. There is no process-wide current user; handlers read this
// from the request context only.
type UserCtx struct {
	UserID   string
	Username string
	IsAdmin  bool
}

func (u UserCtx) Authenticated() bool { return u.UserID != "" }

func (u UserCtx) HomePath() string {
	if u.IsAdmin {
		return "/accueil_admin"
	}
	return "/accueil"
}

func WithUser(ctx context.Context, u UserCtx) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

func FromCtx(ctx context.Context) UserCtx {
	if v := ctx.Value(userKey{}); v != nil {
		if u, ok := v.(UserCtx); ok {
			return u
		}
	}
	return UserCtx{}
}
