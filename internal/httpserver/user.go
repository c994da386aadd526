package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/music_catalog/internal/service"
	"github.com/Skotchmaster/music_catalog/internal/transport"
	"github.com/Skotchmaster/music_catalog/pkg/logging"
)

type UserHTTP struct {
	Svc *service.UserService
}

func (h *UserHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.list")

	p, err := page(c, l, "list_users_error")
	if err != nil {
		return err
	}
	users, err := h.Svc.List(ctx, c.QueryParam("role"), p)
	if err != nil {
		return fail(l, "list_users_error", err)
	}
	return reply(c, http.StatusOK, users, "Users retrieved successfully.")
}

func (h *UserHTTP) AddUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.add")

	var req transport.AddUserRequest
	if err := bind(c, l, "add_user_error", &req); err != nil {
		return err
	}
	if err := h.Svc.AddUser(ctx, req); err != nil {
		return fail(l, "add_user_error", err)
	}

	l.Info("add_user_success")
	return reply(c, http.StatusCreated, nil, "User created successfully.")
}

func (h *UserHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.delete")

	user, err := h.Svc.Delete(ctx, c.Param("user_id"))
	if err != nil {
		return fail(l, "delete_user_error", err)
	}

	l.Info("delete_user_success", "deleted_user_id", user.UserID)
	return reply(c, http.StatusOK,
		map[string]string{"user_id": user.UserID},
		"User "+user.Email+" deleted successfully")
}

func (h *UserHTTP) UpdatePassword(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.update_password")

	p, err := caller(c)
	if err != nil {
		return err
	}
	var req transport.UpdatePasswordRequest
	if err := bind(c, l, "update_password_error", &req); err != nil {
		return err
	}
	if err := h.Svc.UpdatePassword(ctx, p.UserID, req); err != nil {
		return fail(l, "update_password_error", err)
	}

	l.Info("update_password_success")
	return c.NoContent(http.StatusNoContent)
}
