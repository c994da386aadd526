package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/music_catalog/internal/models"
	"github.com/Skotchmaster/music_catalog/internal/transport"
)

type AlbumFilter struct {
	ArtistID string
	Hidden   *bool
}

const albumViewColumns = "albums.album_id, artists.name AS artist_name, albums.name, albums.year, albums.hidden"

func (r *GormRepo) CreateAlbum(ctx context.Context, a *models.Album) error {
	return r.DB.WithContext(ctx).Create(a).Error
}

func (r *GormRepo) AlbumExists(ctx context.Context, id string) (bool, error) {
	return r.exists(r.DB.WithContext(ctx), &models.Album{}, "album_id", id)
}

// AlbumNameTaken compares names exactly, unlike artists and tracks.
func (r *GormRepo) AlbumNameTaken(ctx context.Context, name string) (bool, error) {
	return r.exists(r.DB.WithContext(ctx), &models.Album{}, "name", name)
}

func (r *GormRepo) GetAlbum(ctx context.Context, id string) (*models.Album, error) {
	var album models.Album
	if err := r.DB.WithContext(ctx).Where("album_id = ?", id).First(&album).Error; err != nil {
		return nil, err
	}
	return &album, nil
}

func (r *GormRepo) albumViews(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).
		Table("albums").
		Select(albumViewColumns).
		Joins("LEFT JOIN artists ON artists.artist_id = albums.artist_id")
}

func (r *GormRepo) GetAlbumView(ctx context.Context, id string) (*transport.AlbumView, error) {
	var views []transport.AlbumView
	if err := r.albumViews(ctx).Where("albums.album_id = ?", id).Limit(1).Scan(&views).Error; err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &views[0], nil
}

func (r *GormRepo) ListAlbums(ctx context.Context, f AlbumFilter, p Page) ([]transport.AlbumView, error) {
	q := r.albumViews(ctx)
	if f.ArtistID != "" {
		q = q.Where("albums.artist_id = ?", f.ArtistID)
	}
	if f.Hidden != nil {
		q = q.Where("albums.hidden = ?", *f.Hidden)
	}

	views := make([]transport.AlbumView, 0, p.Limit)
	if err := q.Order("albums.created_at ASC, albums.album_id ASC").Offset(p.Offset).Limit(p.Limit).Scan(&views).Error; err != nil {
		return nil, err
	}
	return views, nil
}

func (r *GormRepo) PatchAlbum(ctx context.Context, id string, req transport.PatchAlbumRequest) error {
	set := map[string]any{}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Year != nil {
		set["year"] = *req.Year
	}
	if req.Hidden != nil {
		set["hidden"] = *req.Hidden
	}
	if len(set) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Model(&models.Album{}).Where("album_id = ?", id).Updates(set).Error
}

func (r *GormRepo) DeleteAlbum(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Where("album_id = ?", id).Delete(&models.Album{}).Error
}
