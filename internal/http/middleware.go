package http

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tilapiasuite/tilapia/internal/actor"
)

// Authenticate validates the Bearer token and stores the caller's actor in
// the request context. Tokens carry the user id in "sub" and the role in a
// "role" claim.
func Authenticate(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")

			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			claims := jwt.MapClaims{}

			_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
				return secret, nil
			}, jwt.WithValidMethods([]string{"HS256"}))
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			sub, err := claims.GetSubject()
			if err != nil || sub == "" {
				http.Error(w, "invalid token subject", http.StatusUnauthorized)
				return
			}

			role, _ := claims["role"].(string)
			if !actor.Role(role).Valid() {
				http.Error(w, "unknown role", http.StatusForbidden)
				return
			}

			act := actor.Actor{UserID: sub, Role: actor.Role(role)}

			next.ServeHTTP(w, r.WithContext(actor.WithContext(r.Context(), act)))
		})
	}
}
