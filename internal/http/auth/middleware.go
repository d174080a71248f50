package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/MrJamesThe3rd/presence/internal/http/respond"
	"github.com/MrJamesThe3rd/presence/internal/session"
)

type Verifier interface {
	Verify(token string) (*session.Session, error)
}

// Middleware rejects requests without a valid bearer token and stores the
// verified session in the request context.
func Middleware(v Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				w.Header().Set("WWW-Authenticate", "Bearer")
				respond.Error(w, http.StatusUnauthorized, "missing bearer token")

				return
			}

			s, err := v.Verify(token)
			if err != nil {
				msg := "invalid token"
				if errors.Is(err, session.ErrExpired) {
					msg = "session expired"
				}

				w.Header().Set("WWW-Authenticate", "Bearer")
				respond.Error(w, http.StatusUnauthorized, msg)

				return
			}

			next.ServeHTTP(w, r.WithContext(session.NewContext(r.Context(), s)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)

	return token, token != ""
}
