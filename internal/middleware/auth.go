package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/music_catalog/internal/service"
	"github.com/Skotchmaster/music_catalog/pkg/logging"
)

const (
	CtxUserID    = "user_id"
	CtxEmail     = "email"
	CtxRole      = "role"
	CtxToken     = "token"
	CtxPrincipal = "principal"
)

type Authenticator interface {
	Authenticate(ctx context.Context, raw string) (*service.Principal, error)
}

// BearerToken returns the token of an "Authorization: Bearer <token>" header.
func BearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// RequireAuth rejects requests without a valid, non-blacklisted bearer token
// whose subject still exists, and attaches the caller to the echo context.
func RequireAuth(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			l := logging.FromContext(ctx).With("middleware", "require_auth")

			raw := BearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if raw == "" {
				l.Warn("auth_error", "status", 401, "reason", "missing bearer token")
				return echo.NewHTTPError(http.StatusUnauthorized, service.MsgUnauthorized)
			}

			p, err := auth.Authenticate(ctx, raw)
			if err != nil {
				var se *service.Error
				if errors.As(err, &se) && errors.Is(err, service.ErrUnauthorized) {
					l.Warn("auth_error", "status", 401, "reason", se.Message)
					return echo.NewHTTPError(http.StatusUnauthorized, se.Message)
				}
				l.Error("auth_error", "status", 500, "reason", "cannot authenticate", "error", err)
				return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error.").SetInternal(err)
			}

			c.Set(CtxUserID, p.UserID)
			c.Set(CtxEmail, p.Email)
			c.Set(CtxRole, string(p.Role))
			c.Set(CtxToken, p.Token)
			c.Set(CtxPrincipal, p)
			c.SetRequest(c.Request().WithContext(service.WithPrincipal(ctx, p)))
			return next(c)
		}
	}
}

// PrincipalFrom returns the caller attached by RequireAuth.
func PrincipalFrom(c echo.Context) (*service.Principal, bool) {
	p, ok := c.Get(CtxPrincipal).(*service.Principal)
	return p, ok && p != nil
}
