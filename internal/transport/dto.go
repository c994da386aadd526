package transport

import "time"

// Envelope is the body of every non-204 response.
type Envelope struct {
	Status  int     `json:"status"`
	Data    any     `json:"data"`
	Message string  `json:"message"`
	Error   *string `json:"error"`
}

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type AddUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type UpdatePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type CreateArtistRequest struct {
	Name   string `json:"name"`
	Grammy *int   `json:"grammy"`
	Hidden *bool  `json:"hidden"`
}

type PatchArtistRequest struct {
	Name   *string `json:"name"`
	Grammy *int    `json:"grammy"`
	Hidden *bool   `json:"hidden"`
}

type CreateAlbumRequest struct {
	ArtistID string `json:"artist_id"`
	Name     string `json:"name"`
	Year     *int   `json:"year"`
	Hidden   *bool  `json:"hidden"`
}

type PatchAlbumRequest struct {
	Name   *string `json:"name"`
	Year   *int    `json:"year"`
	Hidden *bool   `json:"hidden"`
}

type CreateTrackRequest struct {
	ArtistID string `json:"artist_id"`
	AlbumID  string `json:"album_id"`
	Name     string `json:"name"`
	Duration *int   `json:"duration"`
	Hidden   *bool  `json:"hidden"`
}

type PatchTrackRequest struct {
	Name     *string `json:"name"`
	Duration *int    `json:"duration"`
	Hidden   *bool   `json:"hidden"`
}

type AddFavouriteRequest struct {
	Category string `json:"category"`
	ItemID   string `json:"item_id"`
}

type UserView struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type ArtistView struct {
	ArtistID string `json:"artist_id"`
	Name     string `json:"name"`
	Grammy   int    `json:"grammy"`
	Hidden   bool   `json:"hidden"`
}

type AlbumView struct {
	AlbumID    string  `json:"album_id"`
	ArtistName *string `json:"artist_name"`
	Name       string  `json:"name"`
	Year       int     `json:"year"`
	Hidden     bool    `json:"hidden"`
}

type TrackView struct {
	TrackID    string  `json:"track_id"`
	ArtistName *string `json:"artist_name"`
	AlbumName  *string `json:"album_name"`
	Name       string  `json:"name"`
	Duration   int     `json:"duration"`
	Hidden     bool    `json:"hidden"`
}

type FavouriteView struct {
	FavoriteID string    `json:"favorite_id"`
	Category   string    `json:"category"`
	ItemID     string    `json:"item_id"`
	Name       *string   `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
}

type SearchHit struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
	Name string `json:"name"`
}
