package repo

import (
	"context"

	"github.com/Skotchmaster/music_catalog/internal/models"
	"github.com/Skotchmaster/music_catalog/internal/transport"
)

// ItemExists checks the table behind cat for a row with the given public id.
func (r *GormRepo) ItemExists(ctx context.Context, cat models.Category, itemID string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Table(cat.Table()).
		Where(cat.KeyColumn()+" = ?", itemID).
		Limit(1).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormRepo) CreateFavourite(ctx context.Context, f *models.Favourite) error {
	return r.DB.WithContext(ctx).Create(f).Error
}

func (r *GormRepo) GetFavourite(ctx context.Context, userID, favouriteID string) (*models.Favourite, error) {
	var fav models.Favourite
	err := r.DB.WithContext(ctx).
		Where("favorite_id = ? AND user_id = ?", favouriteID, userID).
		First(&fav).Error
	if err != nil {
		return nil, err
	}
	return &fav, nil
}

func (r *GormRepo) DeleteFavourite(ctx context.Context, userID, favouriteID string) error {
	return r.DB.WithContext(ctx).
		Where("favorite_id = ? AND user_id = ?", favouriteID, userID).
		Delete(&models.Favourite{}).Error
}

type itemName struct {
	ID   string
	Name string
}

// ListFavourites returns the caller's favourites of one category. Names are
// read from the category's own table; an item deleted since leaves Name nil.
func (r *GormRepo) ListFavourites(ctx context.Context, userID string, cat models.Category, p Page) ([]transport.FavouriteView, error) {
	var favs []models.Favourite
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND category = ?", userID, cat.String()).
		Order("created_at ASC, favorite_id ASC").
		Offset(p.Offset).
		Limit(p.Limit).
		Find(&favs).Error
	if err != nil {
		return nil, err
	}

	out := make([]transport.FavouriteView, 0, len(favs))
	if len(favs) == 0 {
		return out, nil
	}

	ids := make([]string, 0, len(favs))
	for _, f := range favs {
		ids = append(ids, f.ItemID)
	}

	var names []itemName
	err = r.DB.WithContext(ctx).
		Table(cat.Table()).
		Select(cat.KeyColumn()+" AS id, name").
		Where(cat.KeyColumn()+" IN ?", ids).
		Scan(&names).Error
	if err != nil {
		return nil, err
	}

	byID := make(map[string]string, len(names))
	for _, n := range names {
		byID[n.ID] = n.Name
	}

	for _, f := range favs {
		view := transport.FavouriteView{
			FavoriteID: f.FavoriteID,
			Category:   f.Category,
			ItemID:     f.ItemID,
			CreatedAt:  f.CreatedAt,
		}
		if name, ok := byID[f.ItemID]; ok {
			view.Name = &name
		}
		out = append(out, view)
	}
	return out, nil
}
