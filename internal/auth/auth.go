package auth

import (
	"context"
	"errors"

	"github.com/frahmantamala/finance-dashboard/internal/user"
)

// SessionCookieName is the fixed cookie carrying the session token.
const SessionCookieName = "fin-dashboard-session"

const (
	// sessionMaxAge is the cookie and token lifetime (7 days).
	sessionMaxAge = 60 * 60 * 24 * 7

	// shareCodeAlphabet is the 36-symbol alphabet share codes draw from.
	shareCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	shareCodeLength   = 6

	// maxShareCodeAttempts bounds the uniqueness retry loop; collisions are
	// rare enough that exhaustion signals a real problem.
	maxShareCodeAttempts = 10
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrShareCodeExhausted = errors.New("could not generate a unique share code")
)

type ctxKey string

const contextUserKey ctxKey = "sessionUser"

// UserFromContext returns the session user placed by the session middleware,
// or nil when the request carried no valid session.
func UserFromContext(ctx context.Context) *user.User {
	if u, ok := ctx.Value(contextUserKey).(*user.User); ok {
		return u
	}
	return nil
}

func ContextWithUser(ctx context.Context, u *user.User) context.Context {
	return context.WithValue(ctx, contextUserKey, u)
}
