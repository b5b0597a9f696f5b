package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/taskhive/taskhive/internal/httputil"
	"github.com/taskhive/taskhive/internal/token"
	"github.com/taskhive/taskhive/internal/user"
)

// Middleware resolves bearer tokens to live users. It is the single
// enforcement point for every protected route.
type Middleware struct {
	tokens token.Service
	users  UserFinder
}

func NewMiddleware(tokens token.Service, users UserFinder) *Middleware {
	return &Middleware{tokens: tokens, users: users}
}

// RequireAuth validates the Authorization header, verifies the token and
// looks up the live user behind its subject. Every failure mode collapses to
// the same 401 response so callers cannot tell which check failed.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr, ok := bearerToken(r)
		if !ok {
			unauthorized(w)
			return
		}

		claims, err := m.tokens.Validate(tokenStr)
		if err != nil {
			unauthorized(w)
			return
		}

		u, err := m.users.GetByEmail(r.Context(), claims.Subject)
		if err != nil {
			if !errors.Is(err, user.ErrNotFound) {
				httputil.RespondError(w, "failed to resolve session", http.StatusInternalServerError)
				return
			}
			unauthorized(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(user.NewContext(r.Context(), u)))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	httputil.RespondError(w, "Could not validate credentials", http.StatusUnauthorized)
}
