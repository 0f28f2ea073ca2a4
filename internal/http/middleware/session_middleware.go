package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mmttc/workshop-registration/internal/http/response"
	"github.com/mmttc/workshop-registration/internal/platform/session"
)

type ctxKey string

const CtxSession ctxKey = "session"

// BearerToken pulls the opaque session token from the Authorization header.
func BearerToken(r *http.Request) string {
	authz := r.Header.Get("Authorization")
	if strings.HasPrefix(authz, "Bearer ") {
		return strings.TrimPrefix(authz, "Bearer ")
	}
	return ""
}

// RequireSession gates the admin surface. This is the data-level check; the
// client-side dashboard gate is a UX convenience only.
func RequireSession(store session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := BearerToken(r)
			if tok == "" {
				response.Unauthorized(w, "session token is required")
				return
			}
			sess, err := store.Get(r.Context(), tok)
			if err != nil {
				response.InternalError(w, "session lookup failed")
				return
			}
			if sess == nil {
				response.Unauthorized(w, "invalid or expired session")
				return
			}
			ctx := context.WithValue(r.Context(), CtxSession, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func Session(r *http.Request) *session.Session {
	if v := r.Context().Value(CtxSession); v != nil {
		if s, ok := v.(*session.Session); ok {
			return s
		}
	}
	return nil
}
