package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/music_catalog/internal/events"
	"github.com/Skotchmaster/music_catalog/internal/models"
	"github.com/Skotchmaster/music_catalog/internal/repo"
	"github.com/Skotchmaster/music_catalog/internal/repo/repotest"
	"github.com/Skotchmaster/music_catalog/internal/search"
	"github.com/Skotchmaster/music_catalog/internal/transport"
	"github.com/Skotchmaster/music_catalog/pkg/hash"
	"github.com/Skotchmaster/music_catalog/pkg/tokens"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

type fixture struct {
	repo    *repo.GormRepo
	rec     *events.Recorder
	auth    *AuthService
	users   *UserService
	catalog *CatalogService
	favs    *FavouriteService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	r := &repo.GormRepo{DB: repotest.NewDB(t)}
	sealer, err := hash.NewAESSealer(testSecret)
	require.NoError(t, err)
	rec := &events.Recorder{}
	return &fixture{
		repo:    r,
		rec:     rec,
		auth:    &AuthService{Repo: r, Sealer: sealer, Secret: testSecret, Events: rec},
		users:   &UserService{Repo: r, Sealer: sealer, Events: rec},
		catalog: &CatalogService{Repo: r, Events: rec, Index: search.DBIndex{Repo: r}},
		favs:    &FavouriteService{Repo: r},
	}
}

func intp(v int) *int       { return &v }
func strp(v string) *string { return &v }
func boolp(v bool) *bool    { return &v }

func assertKind(t *testing.T, err error, kind error, msg string) {
	t.Helper()
	require.Error(t, err)
	assert.ErrorIs(t, err, kind)
	var se *Error
	require.True(t, errors.As(err, &se))
	assert.Equal(t, msg, se.Message)
}

func (f *fixture) signup(t *testing.T, email, password, role string) *models.User {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.auth.Signup(ctx, transport.SignupRequest{Email: email, Password: password, Role: role}))
	u, err := f.repo.GetUserByEmail(ctx, email)
	require.NoError(t, err)
	return u
}

func TestSignup_FirstUserIsAdmin(t *testing.T) {
	f := newFixture(t)

	first := f.signup(t, "Root@Example.com ", "pw", "Viewer")
	assert.Equal(t, models.RoleAdmin, first.Role)
	assert.Equal(t, "root@example.com", first.Email)
	assert.NotEqual(t, "pw", first.Password)

	second := f.signup(t, "two@example.com", "pw", "")
	assert.Equal(t, models.RoleViewer, second.Role)

	third := f.signup(t, "three@example.com", "pw", "Editor")
	assert.Equal(t, models.RoleEditor, third.Role)

	err := f.auth.Signup(context.Background(), transport.SignupRequest{Email: "x@example.com", Password: "pw", Role: "Admin"})
	assertKind(t, err, ErrValidation, "Bad Request, Reason: Role should be either Editor or Viewer")

	assert.Equal(t, []string{"user_created", "user_created", "user_created"}, f.rec.Types())
}

func TestSignup_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.auth.Signup(ctx, transport.SignupRequest{Password: "pw"})
	assertKind(t, err, ErrValidation, "Bad Request, Reason: Missing Email")

	err = f.auth.Signup(ctx, transport.SignupRequest{Email: "a@b.c"})
	assertKind(t, err, ErrValidation, "Bad Request, Reason: Missing Password")

	f.signup(t, "a@b.c", "pw", "")
	err = f.auth.Signup(ctx, transport.SignupRequest{Email: "A@B.C", Password: "pw"})
	assertKind(t, err, ErrConflict, "Email already exists.")
}

func TestLoginAndAuthenticate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.signup(t, "admin@x.io", "secret", "")

	_, err := f.auth.Login(ctx, transport.LoginRequest{Email: "nobody@x.io", Password: "secret"})
	assertKind(t, err, ErrNotFound, "User not found.")

	_, err = f.auth.Login(ctx, transport.LoginRequest{Email: "admin@x.io", Password: "wrong"})
	assertKind(t, err, ErrUnauthorized, "Invalid credentials")

	_, err = f.auth.Login(ctx, transport.LoginRequest{Email: "admin@x.io"})
	assertKind(t, err, ErrValidation, "Bad Request, Reason: Missing Password")

	token, err := f.auth.Login(ctx, transport.LoginRequest{Email: "admin@x.io", Password: "secret"})
	require.NoError(t, err)

	claims, err := tokens.AccessClaimsFromToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, admin.UserID, claims.Subject)
	assert.Equal(t, "Admin", claims.Role)
	assert.WithinDuration(t, time.Now().Add(DefaultTokenTTL), claims.ExpiresAt.Time, 5*time.Second)

	p, err := f.auth.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, admin.UserID, p.UserID)
	assert.Equal(t, models.RoleAdmin, p.Role)
	assert.Equal(t, token, p.Token)

	require.NoError(t, f.auth.Logout(ctx, p))
	_, err = f.auth.Authenticate(ctx, token)
	assertKind(t, err, ErrUnauthorized, MsgInvalidToken)
}

func TestAuthenticate_Failures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.Authenticate(ctx, "")
	assertKind(t, err, ErrUnauthorized, MsgUnauthorized)

	_, err = f.auth.Authenticate(ctx, "not-a-jwt")
	assertKind(t, err, ErrUnauthorized, MsgMalformedToken)

	other, _, err := tokens.IssueAccessToken("u", "Admin", []byte("another-secret"), time.Now(), time.Hour)
	require.NoError(t, err)
	_, err = f.auth.Authenticate(ctx, other)
	assertKind(t, err, ErrUnauthorized, MsgMalformedToken)

	expired, _, err := tokens.IssueAccessToken("u", "Admin", testSecret, time.Now().Add(-2*time.Hour), time.Hour)
	require.NoError(t, err)
	_, err = f.auth.Authenticate(ctx, expired)
	assertKind(t, err, ErrUnauthorized, MsgMalformedToken)

	ghost, _, err := tokens.IssueAccessToken("ghost", "Admin", testSecret, time.Now(), time.Hour)
	require.NoError(t, err)
	_, err = f.auth.Authenticate(ctx, ghost)
	assertKind(t, err, ErrUnauthorized, MsgUnauthorized)
}

func TestUserService(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.signup(t, "admin@x.io", "pw", "")

	err := f.users.AddUser(ctx, transport.AddUserRequest{Email: "e@x.io", Password: "pw"})
	assertKind(t, err, ErrValidation, "Bad Request, Reason: Missing Role")

	err = f.users.AddUser(ctx, transport.AddUserRequest{Email: "e@x.io", Password: "pw", Role: "Admin"})
	assertKind(t, err, ErrValidation, "Bad Request, Reason: Role should be either Editor or Viewer")

	require.NoError(t, f.users.AddUser(ctx, transport.AddUserRequest{Email: "e@x.io", Password: "pw", Role: "Editor"}))
	err = f.users.AddUser(ctx, transport.AddUserRequest{Email: "e@x.io", Password: "pw", Role: "Viewer"})
	assertKind(t, err, ErrConflict, "Email already exists.")

	list, err := f.users.List(ctx, "", repo.Page{Limit: 5})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "e@x.io", list[0].Email)

	_, err = f.users.Delete(ctx, admin.UserID)
	assertKind(t, err, ErrValidation, "Admin cannot be deleted.")

	_, err = f.users.Delete(ctx, "missing")
	assertKind(t, err, ErrNotFound, "User not found.")

	deleted, err := f.users.Delete(ctx, list[0].UserID)
	require.NoError(t, err)
	assert.Equal(t, "e@x.io", deleted.Email)
	assert.Contains(t, f.rec.Types(), "user_deleted")
}

func TestUpdatePassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.signup(t, "me@x.io", "old", "")

	err := f.users.UpdatePassword(ctx, u.UserID, transport.UpdatePasswordRequest{NewPassword: "new"})
	assertKind(t, err, ErrValidation, "Bad Request, Reason: Missing old_password")

	err = f.users.UpdatePassword(ctx, u.UserID, transport.UpdatePasswordRequest{OldPassword: "nope", NewPassword: "new"})
	assertKind(t, err, ErrValidation, "Incorrect old password.")

	err = f.users.UpdatePassword(ctx, u.UserID, transport.UpdatePasswordRequest{OldPassword: "old", NewPassword: "old"})
	assertKind(t, err, ErrValidation, "New password cannot be the same as the old password.")

	require.NoError(t, f.users.UpdatePassword(ctx, u.UserID, transport.UpdatePasswordRequest{OldPassword: "old", NewPassword: "new"}))

	_, err = f.auth.Login(ctx, transport.LoginRequest{Email: "me@x.io", Password: "old"})
	assertKind(t, err, ErrUnauthorized, "Invalid credentials")
	_, err = f.auth.Login(ctx, transport.LoginRequest{Email: "me@x.io", Password: "new"})
	require.NoError(t, err)
}

func TestCreateArtist(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.catalog.CreateArtist(ctx, transport.CreateArtistRequest{Grammy: intp(1)})
	assertKind(t, err, ErrValidation, "Bad Request, Reason: Missing name")

	_, err = f.catalog.CreateArtist(ctx, transport.CreateArtistRequest{Name: "Air"})
	assertKind(t, err, ErrValidation, "Bad Request, Reason: Missing grammy")

	artist, err := f.catalog.CreateArtist(ctx, transport.CreateArtistRequest{Name: " Air ", Grammy: intp(0)})
	require.NoError(t, err)
	assert.Equal(t, "Air", artist.Name)
	assert.False(t, artist.Hidden)

	_, err = f.catalog.CreateArtist(ctx, transport.CreateArtistRequest{Name: "AIR", Grammy: intp(2)})
	assertKind(t, err, ErrConflict, "Artist already exists.")

	assert.Equal(t, []string{"artist_created"}, f.rec.Types())
}

func TestPatchAndDeleteArtist(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	air, err := f.catalog.CreateArtist(ctx, transport.CreateArtistRequest{Name: "Air", Grammy: intp(1)})
	require.NoError(t, err)
	_, err = f.catalog.CreateArtist(ctx, transport.CreateArtistRequest{Name: "Justice", Grammy: intp(1)})
	require.NoError(t, err)

	err = f.catalog.PatchArtist(ctx, air.ArtistID, transport.PatchArtistRequest{Name: strp("justice")})
	assertKind(t, err, ErrConflict, "Artist already exists.")

	require.NoError(t, f.catalog.PatchArtist(ctx, air.ArtistID, transport.PatchArtistRequest{Name: strp("AIR"), Hidden: boolp(true)}))
	view, err := f.catalog.GetArtist(ctx, air.ArtistID)
	require.NoError(t, err)
	assert.Equal(t, "AIR", view.Name)
	assert.True(t, view.Hidden)
	assert.Equal(t, 1, view.Grammy)

	err = f.catalog.PatchArtist(ctx, "missing", transport.PatchArtistRequest{})
	assertKind(t, err, ErrNotFound, "Artist not found.")

	deleted, err := f.catalog.DeleteArtist(ctx, air.ArtistID)
	require.NoError(t, err)
	assert.Equal(t, "AIR", deleted.Name)

	_, err = f.catalog.GetArtist(ctx, air.ArtistID)
	assertKind(t, err, ErrNotFound, "Artist not found.")
}

func TestCreateAlbum(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	air, err := f.catalog.CreateArtist(ctx, transport.CreateArtistRequest{Name: "Air", Grammy: intp(1)})
	require.NoError(t, err)

	_, err = f.catalog.CreateAlbum(ctx, transport.CreateAlbumRequest{ArtistID: air.ArtistID, Name: "Moon Safari"})
	assertKind(t, err, ErrValidation, "Bad Request: Missing year")

	_, err = f.catalog.CreateAlbum(ctx, transport.CreateAlbumRequest{ArtistID: "ghost", Name: "Moon Safari", Year: intp(1998)})
	assertKind(t, err, ErrNotFound, MsgNoResource)

	_, err = f.catalog.CreateAlbum(ctx, transport.CreateAlbumRequest{ArtistID: air.ArtistID, Name: "Moon Safari", Year: intp(1998)})
	require.NoError(t, err)

	_, err = f.catalog.CreateAlbum(ctx, transport.CreateAlbumRequest{ArtistID: air.ArtistID, Name: "Moon Safari", Year: intp(1998)})
	assertKind(t, err, ErrConflict, "Album already exists.")

	_, err = f.catalog.CreateAlbum(ctx, transport.CreateAlbumRequest{ArtistID: air.ArtistID, Name: "moon safari", Year: intp(1998)})
	require.NoError(t, err)

	albums, err := f.catalog.ListAlbums(ctx, repo.AlbumFilter{ArtistID: air.ArtistID}, repo.Page{Limit: 5})
	require.NoError(t, err)
	require.Len(t, albums, 2)
	assert.Equal(t, "Air", *albums[0].ArtistName)
}

func TestCreateTrack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	air, err := f.catalog.CreateArtist(ctx, transport.CreateArtistRequest{Name: "Air", Grammy: intp(1)})
	require.NoError(t, err)
	album, err := f.catalog.CreateAlbum(ctx, transport.CreateAlbumRequest{ArtistID: air.ArtistID, Name: "Moon Safari", Year: intp(1998)})
	require.NoError(t, err)

	_, err = f.catalog.CreateTrack(ctx, transport.CreateTrackRequest{ArtistID: air.ArtistID, Name: "Sexy Boy", Duration: intp(298)})
	assertKind(t, err, ErrValidation, "Bad Request: Missing album_id")

	_, err = f.catalog.CreateTrack(ctx, transport.CreateTrackRequest{ArtistID: air.ArtistID, AlbumID: "ghost", Name: "Sexy Boy", Duration: intp(298)})
	assertKind(t, err, ErrNotFound, MsgNoResource)

	track, err := f.catalog.CreateTrack(ctx, transport.CreateTrackRequest{ArtistID: air.ArtistID, AlbumID: album.AlbumID, Name: "Sexy Boy", Duration: intp(298)})
	require.NoError(t, err)

	// a taken name is reported even when the references are missing
	_, err = f.catalog.CreateTrack(ctx, transport.CreateTrackRequest{ArtistID: "ghost", AlbumID: "ghost", Name: "SEXY BOY", Duration: intp(1)})
	assertKind(t, err, ErrConflict, "Track already exists.")

	view, err := f.catalog.GetTrack(ctx, track.TrackID)
	require.NoError(t, err)
	assert.Equal(t, "Moon Safari", *view.AlbumName)
	assert.Equal(t, 298, view.Duration)

	require.NoError(t, f.catalog.PatchTrack(ctx, track.TrackID, transport.PatchTrackRequest{Duration: intp(300)}))
	deleted, err := f.catalog.DeleteTrack(ctx, track.TrackID)
	require.NoError(t, err)
	assert.Equal(t, "Sexy Boy", deleted.Name)

	_, err = f.catalog.DeleteTrack(ctx, track.TrackID)
	assertKind(t, err, ErrNotFound, MsgNoResource)
}

func TestFavourites(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	air, err := f.catalog.CreateArtist(ctx, transport.CreateArtistRequest{Name: "Air", Grammy: intp(1)})
	require.NoError(t, err)

	_, err = f.favs.Add(ctx, "u1", transport.AddFavouriteRequest{ItemID: air.ArtistID})
	assertKind(t, err, ErrValidation, "Bad Request: Missing category")

	_, err = f.favs.Add(ctx, "u1", transport.AddFavouriteRequest{Category: "playlist", ItemID: air.ArtistID})
	assertKind(t, err, ErrValidation, MsgBadCategory)

	_, err = f.favs.Add(ctx, "u1", transport.AddFavouriteRequest{Category: "album", ItemID: air.ArtistID})
	assertKind(t, err, ErrNotFound, MsgNoResource)

	fav, err := f.favs.Add(ctx, "u1", transport.AddFavouriteRequest{Category: "artist", ItemID: air.ArtistID})
	require.NoError(t, err)

	_, err = f.favs.Add(ctx, "u1", transport.AddFavouriteRequest{Category: "artist", ItemID: air.ArtistID})
	assertKind(t, err, ErrConflict, "Favorite already exists.")

	list, err := f.favs.List(ctx, "u1", "artist", repo.Page{Limit: 5})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Air", *list[0].Name)

	_, err = f.favs.List(ctx, "u1", "song", repo.Page{Limit: 5})
	assertKind(t, err, ErrValidation, MsgBadCategory)

	err = f.favs.Remove(ctx, "u2", fav.FavoriteID)
	assertKind(t, err, ErrNotFound, MsgNoResource)
	require.NoError(t, f.favs.Remove(ctx, "u1", fav.FavoriteID))
}

func TestSearchService(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.catalog.CreateArtist(ctx, transport.CreateArtistRequest{Name: "Air", Grammy: intp(1)})
	require.NoError(t, err)

	svc := &SearchService{Index: f.catalog.Index}
	_, err = svc.Search(ctx, "  ", repo.Page{Limit: 5})
	assertKind(t, err, ErrValidation, "Bad Request: Missing q")

	hits, err := svc.Search(ctx, "ai", repo.Page{Limit: 5})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Air", hits[0].Name)
}

func TestCatalogEventsCarryActor(t *testing.T) {
	f := newFixture(t)
	ctx := WithPrincipal(context.Background(), &Principal{UserID: "editor-1", Role: models.RoleEditor})

	artist, err := f.catalog.CreateArtist(ctx, transport.CreateArtistRequest{Name: "Air", Grammy: intp(1)})
	require.NoError(t, err)
	_, err = f.catalog.DeleteArtist(context.Background(), artist.ArtistID)
	require.NoError(t, err)

	require.Len(t, f.rec.Events, 2)
	assert.Equal(t, "editor-1", f.rec.Events[0].ActorID)
	assert.Equal(t, artist.ArtistID, f.rec.Events[0].ID)
	assert.Empty(t, f.rec.Events[1].ActorID)
}
