package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/music_catalog/internal/repo"
	"github.com/Skotchmaster/music_catalog/internal/transport"
	"github.com/Skotchmaster/music_catalog/pkg/logging"
)

func (h *CatalogHTTP) CreateAlbum(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "album.create")

	var req transport.CreateAlbumRequest
	if err := bind(c, l, "create_album_error", &req); err != nil {
		return err
	}
	album, err := h.Svc.CreateAlbum(ctx, req)
	if err != nil {
		return fail(l, "create_album_error", err)
	}

	l.Info("create_album_success", "album_id", album.AlbumID)
	return reply(c, http.StatusCreated, nil, "Album created successfully.")
}

func (h *CatalogHTTP) ListAlbums(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "album.list")

	p, err := page(c, l, "list_albums_error")
	if err != nil {
		return err
	}
	hidden, err := hiddenFilter(c, l, "list_albums_error")
	if err != nil {
		return err
	}

	f := repo.AlbumFilter{ArtistID: c.QueryParam("artist_id"), Hidden: hidden}
	albums, err := h.Svc.ListAlbums(ctx, f, p)
	if err != nil {
		return fail(l, "list_albums_error", err)
	}
	return reply(c, http.StatusOK, albums, "Albums fetched successfully.")
}

func (h *CatalogHTTP) GetAlbum(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "album.get")

	album, err := h.Svc.GetAlbum(ctx, c.Param("album_id"))
	if err != nil {
		return fail(l, "get_album_error", err)
	}
	return reply(c, http.StatusOK, album, "Album retrieved successfully.")
}

func (h *CatalogHTTP) UpdateAlbum(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "album.update")

	var req transport.PatchAlbumRequest
	if err := bind(c, l, "update_album_error", &req); err != nil {
		return err
	}
	if err := h.Svc.PatchAlbum(ctx, c.Param("album_id"), req); err != nil {
		return fail(l, "update_album_error", err)
	}

	l.Info("update_album_success")
	return c.NoContent(http.StatusNoContent)
}

func (h *CatalogHTTP) DeleteAlbum(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "album.delete")

	album, err := h.Svc.DeleteAlbum(ctx, c.Param("album_id"))
	if err != nil {
		return fail(l, "delete_album_error", err)
	}

	l.Info("delete_album_success", "album_id", album.AlbumID)
	return reply(c, http.StatusOK,
		map[string]string{"album_id": album.AlbumID},
		"Album "+album.Name+" deleted successfully")
}
