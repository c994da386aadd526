package httpserver

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/music_catalog/internal/middleware"
	"github.com/Skotchmaster/music_catalog/internal/repo"
	"github.com/Skotchmaster/music_catalog/internal/service"
	"github.com/Skotchmaster/music_catalog/internal/transport"
	"github.com/Skotchmaster/music_catalog/internal/util"
)

const (
	msgInternal = "Internal server error."
	msgBadPage  = "Bad request: 'limit' and 'offset' must be numbers."
	msgBadBody  = "Bad Request: invalid body"
)

func reply(c echo.Context, status int, data any, message string) error {
	return c.JSON(status, transport.Envelope{Status: status, Data: data, Message: message})
}

func internalError(err error) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusInternalServerError, msgInternal).SetInternal(err)
}

func statusFor(kind error) int {
	switch {
	case errors.Is(kind, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(kind, service.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(kind, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(kind, service.ErrConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// fail logs err under event and converts it to the HTTP error the client sees.
func fail(l *slog.Logger, event string, err error) error {
	var se *service.Error
	if errors.As(err, &se) {
		status := statusFor(se.Kind)
		l.Warn(event, "status", status, "reason", se.Message)
		return echo.NewHTTPError(status, se.Message)
	}
	l.Error(event, "status", 500, "reason", "unexpected error", "error", err)
	return internalError(err)
}

func bind(c echo.Context, l *slog.Logger, event string, req any) error {
	if err := c.Bind(req); err != nil {
		l.Warn(event, "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, msgBadBody)
	}
	return nil
}

func page(c echo.Context, l *slog.Logger, event string) (repo.Page, error) {
	limit, offset, err := util.ParsePage(c.QueryParam("limit"), c.QueryParam("offset"))
	if err != nil {
		l.Warn(event, "status", 400, "reason", "bad paging", "error", err)
		return repo.Page{}, echo.NewHTTPError(http.StatusBadRequest, msgBadPage)
	}
	return repo.Page{Limit: limit, Offset: offset}, nil
}

func hiddenFilter(c echo.Context, l *slog.Logger, event string) (*bool, error) {
	hidden, err := util.ParseOptionalBool(c.QueryParam("hidden"))
	if err != nil {
		l.Warn(event, "status", 400, "reason", "bad hidden filter", "error", err)
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Bad request: 'hidden' must be true or false.")
	}
	return hidden, nil
}

func caller(c echo.Context) (*service.Principal, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, service.MsgUnauthorized)
	}
	return p, nil
}

// ErrorHandler renders every error as the response envelope. 5xx responses
// carry the underlying error text in the error field.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if !errors.As(err, &he) {
		he = internalError(err)
	}

	status := he.Code
	message := fmt.Sprint(he.Message)
	var detail *string
	if status >= http.StatusInternalServerError {
		message = msgInternal
		text := "Unknown error"
		if he.Internal != nil && he.Internal.Error() != "" {
			text = he.Internal.Error()
		}
		detail = &text
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, transport.Envelope{Status: status, Message: message, Error: detail})
}
