package middleware

import (
	"context"
	"net/http"
	"strings"

	"go-shop/models"
	"go-shop/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Key type for context
type contextKey string

const principalKey = contextKey("principal")

// WithPrincipal returns a copy of ctx carrying p
func WithPrincipal(ctx context.Context, p models.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromContext returns the authenticated caller, if any
func PrincipalFromContext(ctx context.Context) (models.Principal, bool) {
	p, ok := ctx.Value(principalKey).(models.Principal)
	return p, ok
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

func principalFromToken(tokenStr string) (models.Principal, error) {
	claims, err := utils.ParseJWT(tokenStr)
	if err != nil {
		return models.Principal{}, err
	}
	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return models.Principal{}, err
	}
	return models.Principal{
		UserID:   userID,
		Username: claims.Username,
		Email:    claims.Email,
		IsAdmin:  claims.IsAdmin || claims.Role == models.RoleAdmin,
	}, nil
}

// AuthMiddleware verifies JWT tokens and attaches the caller to the context
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			utils.RespondWithError(w, http.StatusUnauthorized, "Authorization header missing")
			return
		}
		tokenStr, ok := bearerToken(r)
		if !ok {
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid Authorization header format")
			return
		}
		principal, err := principalFromToken(tokenStr)
		if err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
	})
}

// OptionalAuth attaches the caller when a valid token is sent and lets
// anonymous requests through otherwise.
func OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if tokenStr, ok := bearerToken(r); ok {
			if principal, err := principalFromToken(tokenStr); err == nil {
				r = r.WithContext(WithPrincipal(r.Context(), principal))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// AdminMiddleware ensures that the user has admin privileges. It must run
// after AuthMiddleware.
func AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := PrincipalFromContext(r.Context())
		if !ok || !principal.IsAdmin {
			utils.RespondWithError(w, http.StatusForbidden, "Admin only")
			return
		}
		next.ServeHTTP(w, r)
	})
}
