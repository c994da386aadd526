package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/music_catalog/internal/repo"
	"github.com/Skotchmaster/music_catalog/internal/transport"
	"github.com/Skotchmaster/music_catalog/pkg/logging"
)

func (h *CatalogHTTP) CreateTrack(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "track.create")

	var req transport.CreateTrackRequest
	if err := bind(c, l, "create_track_error", &req); err != nil {
		return err
	}
	track, err := h.Svc.CreateTrack(ctx, req)
	if err != nil {
		return fail(l, "create_track_error", err)
	}

	l.Info("create_track_success", "track_id", track.TrackID)
	return reply(c, http.StatusCreated, nil, "Track created successfully.")
}

func (h *CatalogHTTP) ListTracks(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "track.list")

	p, err := page(c, l, "list_tracks_error")
	if err != nil {
		return err
	}
	hidden, err := hiddenFilter(c, l, "list_tracks_error")
	if err != nil {
		return err
	}

	f := repo.TrackFilter{
		ArtistID: c.QueryParam("artist_id"),
		AlbumID:  c.QueryParam("album_id"),
		Hidden:   hidden,
	}
	tracks, err := h.Svc.ListTracks(ctx, f, p)
	if err != nil {
		return fail(l, "list_tracks_error", err)
	}
	return reply(c, http.StatusOK, tracks, "Tracks fetched successfully.")
}

func (h *CatalogHTTP) GetTrack(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "track.get")

	track, err := h.Svc.GetTrack(ctx, c.Param("track_id"))
	if err != nil {
		return fail(l, "get_track_error", err)
	}
	return reply(c, http.StatusOK, track, "Track fetched successfully.")
}

func (h *CatalogHTTP) UpdateTrack(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "track.update")

	var req transport.PatchTrackRequest
	if err := bind(c, l, "update_track_error", &req); err != nil {
		return err
	}
	if err := h.Svc.PatchTrack(ctx, c.Param("track_id"), req); err != nil {
		return fail(l, "update_track_error", err)
	}

	l.Info("update_track_success")
	return c.NoContent(http.StatusNoContent)
}

func (h *CatalogHTTP) DeleteTrack(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "track.delete")

	track, err := h.Svc.DeleteTrack(ctx, c.Param("track_id"))
	if err != nil {
		return fail(l, "delete_track_error", err)
	}

	l.Info("delete_track_success", "track_id", track.TrackID)
	return reply(c, http.StatusOK,
		map[string]string{"track_id": track.TrackID},
		"Track "+track.Name+" deleted successfully")
}
