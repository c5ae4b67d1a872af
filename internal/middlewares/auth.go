package middlewares

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/gw-p2p-payments/internal/jwt"
	"github.com/sbilibin2017/gw-p2p-payments/internal/logger"
)

//go:generate mockgen -source=auth.go -destination=mock_auth_test.go -package=middlewares

// Tokener defines the minimal interface needed by the middleware
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// AuthMiddleware returns a middleware that validates the bearer token and
// stores its claims in the request context.
func AuthMiddleware(tokener Tokener) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := tokener.GetTokenFromRequest(ctx, r)
			if err != nil {
				logger.Log.Errorw("authorization failed", "err", err)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			claims, err := tokener.GetClaims(ctx, tokenString)
			if err != nil {
				logger.Log.Errorw("authorization failed", "err", err)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(jwt.ContextWithClaims(ctx, claims)))
		})
	}
}

// RoleMiddleware lets through only staff users when staff is true and only
// customers otherwise. It must run after AuthMiddleware.
func RoleMiddleware(staff bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := jwt.ClaimsFromContext(r.Context())
			if !ok {
				logger.Log.Errorw("role check without claims", "uri", r.RequestURI)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			if claims.IsStaff != staff {
				logger.Log.Warnw("role not allowed", "user_id", claims.UserID, "is_staff", claims.IsStaff, "uri", r.RequestURI)
				w.WriteHeader(http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
