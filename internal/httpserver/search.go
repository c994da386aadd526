package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/music_catalog/internal/service"
	"github.com/Skotchmaster/music_catalog/pkg/logging"
)

type SearchHTTP struct {
	Svc *service.SearchService
}

func (h *SearchHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "search")

	p, err := page(c, l, "search_error")
	if err != nil {
		return err
	}
	hits, err := h.Svc.Search(ctx, c.QueryParam("q"), p)
	if err != nil {
		return fail(l, "search_error", err)
	}
	return reply(c, http.StatusOK, hits, "Search results retrieved successfully.")
}
