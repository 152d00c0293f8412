package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/golang-jwt/jwt/v5"

	"trainslot-service/internal/models"
	"trainslot-service/pkg/response"
	"trainslot-service/pkg/sl"
)

type ctxKey struct{}

// Identity returns the caller identity placed in the context by New, if any.
func Identity(ctx context.Context) (models.Identity, bool) {
	ident, ok := ctx.Value(ctxKey{}).(models.Identity)
	return ident, ok
}

// New verifies the Bearer token issued by the identity provider and stores
// the subject and role claims in the request context. Requests without a
// valid token are rejected before any handler runs.
func New(log *slog.Logger, secret string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		log := log.With(slog.String("component", "middleware/auth"))

		fn := func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error(string(response.UNAUTHORIZED), "missing bearer token"))
				return
			}

			tokenString := strings.TrimPrefix(header, "Bearer ")

			token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				if err != nil {
					log.Warn("Token rejected", sl.Err(err))
				}
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error(string(response.UNAUTHORIZED), "invalid token"))
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error(string(response.UNAUTHORIZED), "invalid token claims"))
				return
			}

			sub, _ := claims["sub"].(string)
			role, _ := claims["role"].(string)
			if sub == "" {
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error(string(response.UNAUTHORIZED), "token has no subject"))
				return
			}

			ident := models.Identity{Subject: sub, Role: models.Role(role)}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, ident)))
		}

		return http.HandlerFunc(fn)
	}
}
