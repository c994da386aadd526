package repo

import (
	"context"

	"github.com/Skotchmaster/music_catalog/internal/models"
	"github.com/Skotchmaster/music_catalog/internal/transport"
)

type ArtistFilter struct {
	Hidden *bool
}

func (r *GormRepo) CreateArtist(ctx context.Context, a *models.Artist) error {
	a.NameKey = NameKey(a.Name)
	return r.DB.WithContext(ctx).Create(a).Error
}

func (r *GormRepo) ArtistExists(ctx context.Context, id string) (bool, error) {
	return r.exists(r.DB.WithContext(ctx), &models.Artist{}, "artist_id", id)
}

func (r *GormRepo) ArtistNameTaken(ctx context.Context, name string) (bool, error) {
	return r.exists(r.DB.WithContext(ctx), &models.Artist{}, "name_key", NameKey(name))
}

func (r *GormRepo) GetArtist(ctx context.Context, id string) (*models.Artist, error) {
	var artist models.Artist
	if err := r.DB.WithContext(ctx).Where("artist_id = ?", id).First(&artist).Error; err != nil {
		return nil, err
	}
	return &artist, nil
}

func (r *GormRepo) ListArtists(ctx context.Context, f ArtistFilter, p Page) ([]transport.ArtistView, error) {
	q := r.DB.WithContext(ctx).Model(&models.Artist{})
	if f.Hidden != nil {
		q = q.Where("hidden = ?", *f.Hidden)
	}

	var artists []models.Artist
	if err := q.Order("created_at ASC, artist_id ASC").Offset(p.Offset).Limit(p.Limit).Find(&artists).Error; err != nil {
		return nil, err
	}

	out := make([]transport.ArtistView, 0, len(artists))
	for i := range artists {
		out = append(out, ArtistView(&artists[i]))
	}
	return out, nil
}

func (r *GormRepo) PatchArtist(ctx context.Context, id string, req transport.PatchArtistRequest) error {
	set := map[string]any{}
	if req.Name != nil {
		set["name"] = *req.Name
		set["name_key"] = NameKey(*req.Name)
	}
	if req.Grammy != nil {
		set["grammy"] = *req.Grammy
	}
	if req.Hidden != nil {
		set["hidden"] = *req.Hidden
	}
	if len(set) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Model(&models.Artist{}).Where("artist_id = ?", id).Updates(set).Error
}

func (r *GormRepo) DeleteArtist(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Where("artist_id = ?", id).Delete(&models.Artist{}).Error
}

func ArtistView(a *models.Artist) transport.ArtistView {
	return transport.ArtistView{
		ArtistID: a.ArtistID,
		Name:     a.Name,
		Grammy:   a.Grammy,
		Hidden:   a.Hidden,
	}
}
