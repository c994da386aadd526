package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/music_catalog/internal/middleware"
	"github.com/Skotchmaster/music_catalog/internal/models"
)

const APIPrefix = "/api/v1"

type Deps struct {
	AuthHandler      *AuthHTTP
	UserHandler      *UserHTTP
	CatalogHandler   *CatalogHTTP
	FavouriteHandler *FavouriteHTTP
	SearchHandler    *SearchHTTP
	Authenticator    middleware.Authenticator
	// Ready reports whether the service can take traffic.
	Ready func(ctx context.Context) error
}

func Register(e *echo.Echo, d *Deps) {
	e.HTTPErrorHandler = ErrorHandler

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			if err := d.Ready(c.Request().Context()); err != nil {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "not ready").SetInternal(err)
			}
		}
		return c.NoContent(http.StatusOK)
	})

	authMW := middleware.RequireAuth(d.Authenticator)
	admin := middleware.RequireRole(models.RoleAdmin)
	editors := middleware.RequireRole(models.RoleAdmin, models.RoleEditor)

	api := e.Group(APIPrefix)
	api.POST("/signup", d.AuthHandler.Signup)
	api.POST("/login", d.AuthHandler.Login)
	api.GET("/logout", d.AuthHandler.Logout, authMW)

	users := api.Group("/users", authMW)
	users.GET("", d.UserHandler.List, admin)
	users.POST("/add-user", d.UserHandler.AddUser, admin)
	users.PUT("/update-password", d.UserHandler.UpdatePassword)
	users.DELETE("/:user_id", d.UserHandler.Delete, admin)

	artists := api.Group("/artists", authMW)
	artists.POST("/add-artist", d.CatalogHandler.CreateArtist, admin)
	artists.GET("", d.CatalogHandler.ListArtists)
	artists.GET("/:artist_id", d.CatalogHandler.GetArtist)
	artists.PUT("/:artist_id", d.CatalogHandler.UpdateArtist, editors)
	artists.DELETE("/:artist_id", d.CatalogHandler.DeleteArtist, editors)

	albums := api.Group("/albums", authMW)
	albums.POST("/add-album", d.CatalogHandler.CreateAlbum, admin)
	albums.GET("", d.CatalogHandler.ListAlbums)
	albums.GET("/:album_id", d.CatalogHandler.GetAlbum)
	albums.PUT("/:album_id", d.CatalogHandler.UpdateAlbum, editors)
	albums.DELETE("/:album_id", d.CatalogHandler.DeleteAlbum, editors)

	tracks := api.Group("/tracks", authMW)
	tracks.POST("/add-track", d.CatalogHandler.CreateTrack, admin)
	tracks.GET("", d.CatalogHandler.ListTracks)
	tracks.GET("/:track_id", d.CatalogHandler.GetTrack)
	tracks.PUT("/:track_id", d.CatalogHandler.UpdateTrack, editors)
	tracks.DELETE("/:track_id", d.CatalogHandler.DeleteTrack, editors)

	favs := api.Group("/favorites", authMW)
	favs.POST("/add-favorite", d.FavouriteHandler.Add)
	favs.GET("/:category", d.FavouriteHandler.List)
	favs.DELETE("/remove-favorite/:favorite_id", d.FavouriteHandler.Remove)

	api.GET("/search", d.SearchHandler.Search, authMW)
}
