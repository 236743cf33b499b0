package service

import (
	"context"
	"fmt"
	"strings"

	"linkfeed/internal/common"
)

// BearerPrefix is the only accepted Authorization scheme prefix.
const BearerPrefix = "Bearer "

// TokenVerifier resolves a session token into a user id.
type TokenVerifier interface {
	VerifyToken(token string) (int, error)
}

// TokenVerifierFunc adapts a plain function to TokenVerifier.
type TokenVerifierFunc func(token string) (int, error)

func (f TokenVerifierFunc) VerifyToken(token string) (int, error) { return f(token) }

// Session is the identity derived from one request.
type Session struct {
	UserID        int
	Authenticated bool
}

// ResolveSession derives the request identity from the raw Authorization
// header. An absent header is anonymous; a present header must carry a valid
// token or the request is rejected.
func ResolveSession(verifier TokenVerifier, header string, present bool) (Session, error) {
	if !present {
		return Session{}, nil
	}
	token := strings.TrimPrefix(header, BearerPrefix)
	if token == "" {
		return Session{}, common.ErrMissingToken
	}
	userID, err := verifier.VerifyToken(token)
	if err != nil {
		return Session{}, err
	}
	return Session{UserID: userID, Authenticated: true}, nil
}

type ctxKeyUserID struct{}

// WithUserID returns a context carrying the authenticated user id.
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, ctxKeyUserID{}, userID)
}

// UserIDFrom returns the authenticated user id, if any.
func UserIDFrom(ctx context.Context) (int, bool) {
	id, _ := ctx.Value(ctxKeyUserID{}).(int)
	return id, id != 0
}

// RequireAuthenticated returns the caller's user id or fails with
// common.ErrUnauthenticated naming the attempted action.
func RequireAuthenticated(ctx context.Context, action string) (int, error) {
	id, ok := UserIDFrom(ctx)
	if !ok {
		return 0, fmt.Errorf("%w to %s", common.ErrUnauthenticated, action)
	}
	return id, nil
}
