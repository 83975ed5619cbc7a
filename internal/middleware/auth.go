package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	apperrors "github.com/skarbek/treasury-server-go/internal/errors"
	"github.com/skarbek/treasury-server-go/internal/httputil"
	"github.com/skarbek/treasury-server-go/internal/model"
	"github.com/skarbek/treasury-server-go/internal/service"
)

type contextKey string

const (
	PrincipalContextKey contextKey = "principal"
	ParentContextKey    contextKey = "parent"
	TokenContextKey     contextKey = "token"
)

func GetPrincipal(ctx context.Context) *service.Principal {
	if principal, ok := ctx.Value(PrincipalContextKey).(*service.Principal); ok {
		return principal
	}
	return nil
}

// GetParent returns the live parent record loaded during authentication.
func GetParent(ctx context.Context) *model.Parent {
	if parent, ok := ctx.Value(ParentContextKey).(*model.Parent); ok {
		return parent
	}
	return nil
}

// GetToken returns the raw bearer token of the current request.
func GetToken(ctx context.Context) string {
	if token, ok := ctx.Value(TokenContextKey).(string); ok {
		return token
	}
	return ""
}

type AuthMiddleware struct {
	auth *service.AuthService
}

func NewAuthMiddleware(auth *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// RequireAdmin admits only requests carrying a valid admin token.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			httputil.WriteError(w, apperrors.Unauthorized("Missing authentication token"))
			return
		}

		principal, err := m.auth.ValidateAdminToken(r.Context(), token)
		if err != nil {
			if appErr, ok := apperrors.AsAppError(err); ok && appErr.Code == apperrors.ErrCodeDatabase {
				log.Error().Err(err).Msg("admin auth middleware: database error")
			}
			httputil.WriteError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), PrincipalContextKey, principal)
		ctx = context.WithValue(ctx, TokenContextKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireParent admits requests carrying a valid parent token and loads the
// live parent record into the context. It does not enforce the password
// rotation gate; the rotation endpoint itself mounts only this middleware.
func (m *AuthMiddleware) RequireParent(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			httputil.WriteError(w, apperrors.Unauthorized("Missing authentication token"))
			return
		}

		principal, parent, err := m.auth.ValidateParentToken(r.Context(), token)
		if err != nil {
			if appErr, ok := apperrors.AsAppError(err); ok && appErr.Code == apperrors.ErrCodeDatabase {
				log.Error().Err(err).Msg("parent auth middleware: database error")
			}
			httputil.WriteError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), PrincipalContextKey, principal)
		ctx = context.WithValue(ctx, ParentContextKey, parent)
		ctx = context.WithValue(ctx, TokenContextKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequirePasswordChanged is the rotation gate. It reads the parent record
// loaded by RequireParent, not the snapshot inside the token, so a captured
// pre-rotation token cannot bypass the gate.
func (m *AuthMiddleware) RequirePasswordChanged(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		parent := GetParent(r.Context())
		if parent == nil {
			httputil.WriteError(w, apperrors.Unauthorized("Not authenticated"))
			return
		}
		if parent.MustChangePassword {
			httputil.WriteError(w, apperrors.PasswordChangeRequired())
			return
		}
		next.ServeHTTP(w, r)
	})
}

func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}
