package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/music_catalog/internal/repo"
	"github.com/Skotchmaster/music_catalog/internal/service"
	"github.com/Skotchmaster/music_catalog/internal/transport"
	"github.com/Skotchmaster/music_catalog/pkg/logging"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func (h *CatalogHTTP) CreateArtist(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "artist.create")

	var req transport.CreateArtistRequest
	if err := bind(c, l, "create_artist_error", &req); err != nil {
		return err
	}
	artist, err := h.Svc.CreateArtist(ctx, req)
	if err != nil {
		return fail(l, "create_artist_error", err)
	}

	l.Info("create_artist_success", "artist_id", artist.ArtistID)
	return reply(c, http.StatusCreated, nil, "Artist created successfully.")
}

func (h *CatalogHTTP) ListArtists(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "artist.list")

	p, err := page(c, l, "list_artists_error")
	if err != nil {
		return err
	}
	hidden, err := hiddenFilter(c, l, "list_artists_error")
	if err != nil {
		return err
	}

	artists, err := h.Svc.ListArtists(ctx, repo.ArtistFilter{Hidden: hidden}, p)
	if err != nil {
		return fail(l, "list_artists_error", err)
	}
	return reply(c, http.StatusOK, artists, "Artists retrieved successfully.")
}

func (h *CatalogHTTP) GetArtist(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "artist.get")

	artist, err := h.Svc.GetArtist(ctx, c.Param("artist_id"))
	if err != nil {
		return fail(l, "get_artist_error", err)
	}
	return reply(c, http.StatusOK, artist, "Artist retrieved successfully.")
}

func (h *CatalogHTTP) UpdateArtist(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "artist.update")

	var req transport.PatchArtistRequest
	if err := bind(c, l, "update_artist_error", &req); err != nil {
		return err
	}
	if err := h.Svc.PatchArtist(ctx, c.Param("artist_id"), req); err != nil {
		return fail(l, "update_artist_error", err)
	}

	l.Info("update_artist_success")
	return c.NoContent(http.StatusNoContent)
}

func (h *CatalogHTTP) DeleteArtist(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "artist.delete")

	artist, err := h.Svc.DeleteArtist(ctx, c.Param("artist_id"))
	if err != nil {
		return fail(l, "delete_artist_error", err)
	}

	l.Info("delete_artist_success", "artist_id", artist.ArtistID)
	return reply(c, http.StatusOK,
		map[string]string{"artist_id": artist.ArtistID},
		"Artist "+artist.Name+" deleted successfully")
}
