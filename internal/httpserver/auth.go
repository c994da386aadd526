package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/music_catalog/internal/service"
	"github.com/Skotchmaster/music_catalog/internal/transport"
	"github.com/Skotchmaster/music_catalog/pkg/logging"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Signup(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.signup")

	var req transport.SignupRequest
	if err := bind(c, l, "signup_error", &req); err != nil {
		return err
	}
	if err := h.Svc.Signup(ctx, req); err != nil {
		return fail(l, "signup_error", err)
	}

	l.Info("signup_success")
	return reply(c, http.StatusCreated, nil, "User created successfully.")
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := bind(c, l, "login_error", &req); err != nil {
		return err
	}
	token, err := h.Svc.Login(ctx, req)
	if err != nil {
		return fail(l, "login_error", err)
	}

	l.Info("login_success")
	return reply(c, http.StatusOK, transport.LoginResponse{Token: token}, "Login successful.")
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.logout")

	p, err := caller(c)
	if err != nil {
		return err
	}
	if err := h.Svc.Logout(ctx, p); err != nil {
		return fail(l, "logout_error", err)
	}

	l.Info("logout_success", "user_id", p.UserID)
	return reply(c, http.StatusOK, nil, "User logged out successfully.")
}
