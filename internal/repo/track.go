package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/music_catalog/internal/models"
	"github.com/Skotchmaster/music_catalog/internal/transport"
)

type TrackFilter struct {
	ArtistID string
	AlbumID  string
	Hidden   *bool
}

const trackViewColumns = "tracks.track_id, artists.name AS artist_name, albums.name AS album_name, tracks.name, tracks.duration, tracks.hidden"

func (r *GormRepo) CreateTrack(ctx context.Context, t *models.Track) error {
	t.NameKey = NameKey(t.Name)
	return r.DB.WithContext(ctx).Create(t).Error
}

func (r *GormRepo) TrackNameTaken(ctx context.Context, name string) (bool, error) {
	return r.exists(r.DB.WithContext(ctx), &models.Track{}, "name_key", NameKey(name))
}

func (r *GormRepo) GetTrack(ctx context.Context, id string) (*models.Track, error) {
	var track models.Track
	if err := r.DB.WithContext(ctx).Where("track_id = ?", id).First(&track).Error; err != nil {
		return nil, err
	}
	return &track, nil
}

func (r *GormRepo) trackViews(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).
		Table("tracks").
		Select(trackViewColumns).
		Joins("LEFT JOIN artists ON artists.artist_id = tracks.artist_id").
		Joins("LEFT JOIN albums ON albums.album_id = tracks.album_id")
}

func (r *GormRepo) GetTrackView(ctx context.Context, id string) (*transport.TrackView, error) {
	var views []transport.TrackView
	if err := r.trackViews(ctx).Where("tracks.track_id = ?", id).Limit(1).Scan(&views).Error; err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &views[0], nil
}

func (r *GormRepo) ListTracks(ctx context.Context, f TrackFilter, p Page) ([]transport.TrackView, error) {
	q := r.trackViews(ctx)
	if f.ArtistID != "" {
		q = q.Where("tracks.artist_id = ?", f.ArtistID)
	}
	if f.AlbumID != "" {
		q = q.Where("tracks.album_id = ?", f.AlbumID)
	}
	if f.Hidden != nil {
		q = q.Where("tracks.hidden = ?", *f.Hidden)
	}

	views := make([]transport.TrackView, 0, p.Limit)
	if err := q.Order("tracks.created_at ASC, tracks.track_id ASC").Offset(p.Offset).Limit(p.Limit).Scan(&views).Error; err != nil {
		return nil, err
	}
	return views, nil
}

func (r *GormRepo) PatchTrack(ctx context.Context, id string, req transport.PatchTrackRequest) error {
	set := map[string]any{}
	if req.Name != nil {
		set["name"] = *req.Name
		set["name_key"] = NameKey(*req.Name)
	}
	if req.Duration != nil {
		set["duration"] = *req.Duration
	}
	if req.Hidden != nil {
		set["hidden"] = *req.Hidden
	}
	if len(set) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Model(&models.Track{}).Where("track_id = ?", id).Updates(set).Error
}

func (r *GormRepo) DeleteTrack(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Where("track_id = ?", id).Delete(&models.Track{}).Error
}
