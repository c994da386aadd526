package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/music_catalog/internal/service"
	"github.com/Skotchmaster/music_catalog/internal/transport"
	"github.com/Skotchmaster/music_catalog/pkg/logging"
)

type FavouriteHTTP struct {
	Svc *service.FavouriteService
}

func (h *FavouriteHTTP) Add(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "favourite.add")

	p, err := caller(c)
	if err != nil {
		return err
	}
	var req transport.AddFavouriteRequest
	if err := bind(c, l, "add_favourite_error", &req); err != nil {
		return err
	}
	fav, err := h.Svc.Add(ctx, p.UserID, req)
	if err != nil {
		return fail(l, "add_favourite_error", err)
	}

	l.Info("add_favourite_success", "favorite_id", fav.FavoriteID)
	return reply(c, http.StatusCreated, nil, "Favorite added successfully.")
}

func (h *FavouriteHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "favourite.list")

	p, err := caller(c)
	if err != nil {
		return err
	}
	pg, err := page(c, l, "list_favourites_error")
	if err != nil {
		return err
	}
	favs, err := h.Svc.List(ctx, p.UserID, c.Param("category"), pg)
	if err != nil {
		return fail(l, "list_favourites_error", err)
	}
	return reply(c, http.StatusOK, favs, "Favorites retrieved successfully.")
}

func (h *FavouriteHTTP) Remove(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "favourite.remove")

	p, err := caller(c)
	if err != nil {
		return err
	}
	id := c.Param("favorite_id")
	if err := h.Svc.Remove(ctx, p.UserID, id); err != nil {
		return fail(l, "remove_favourite_error", err)
	}

	l.Info("remove_favourite_success", "favorite_id", id)
	return reply(c, http.StatusOK, map[string]string{"favorite_id": id}, "Favorite removed successfully")
}
