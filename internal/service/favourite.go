package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/Skotchmaster/music_catalog/internal/models"
	"github.com/Skotchmaster/music_catalog/internal/repo"
	"github.com/Skotchmaster/music_catalog/internal/transport"
)

type FavouriteService struct {
	Repo *repo.GormRepo
}

func (s *FavouriteService) Add(ctx context.Context, userID string, req transport.AddFavouriteRequest) (*models.Favourite, error) {
	itemID := strings.TrimSpace(req.ItemID)
	if missing, ok := firstMissing(
		field{"category", req.Category != ""},
		field{"item_id", itemID != ""},
	); ok {
		return nil, invalid("Bad Request: Missing " + missing)
	}

	cat, ok := models.ParseCategory(req.Category)
	if !ok {
		return nil, invalid(MsgBadCategory)
	}

	found, err := s.Repo.ItemExists(ctx, cat, itemID)
	if err != nil {
		return nil, fmt.Errorf("check %s: %w", cat, err)
	}
	if !found {
		return nil, notFound(MsgNoResource)
	}

	fav := models.Favourite{UserID: userID, Category: cat.String(), ItemID: itemID}
	if err := s.Repo.CreateFavourite(ctx, &fav); err != nil {
		if repo.IsDuplicate(err) {
			return nil, conflict("Favorite already exists.")
		}
		return nil, fmt.Errorf("create favourite: %w", err)
	}
	return &fav, nil
}

func (s *FavouriteService) List(ctx context.Context, userID, category string, p repo.Page) ([]transport.FavouriteView, error) {
	if category == "" {
		return nil, invalid("Bad Request: Missing category")
	}
	cat, ok := models.ParseCategory(category)
	if !ok {
		return nil, invalid(MsgBadCategory)
	}

	favs, err := s.Repo.ListFavourites(ctx, userID, cat, p)
	if err != nil {
		return nil, fmt.Errorf("list favourites: %w", err)
	}
	return favs, nil
}

// Remove deletes one of the caller's favourites. Another user's favourite
// is reported as missing.
func (s *FavouriteService) Remove(ctx context.Context, userID, favouriteID string) error {
	if favouriteID == "" {
		return invalid("Bad Request: Missing favorite_id")
	}

	if _, err := s.Repo.GetFavourite(ctx, userID, favouriteID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(MsgNoResource)
		}
		return fmt.Errorf("get favourite: %w", err)
	}
	if err := s.Repo.DeleteFavourite(ctx, userID, favouriteID); err != nil {
		return fmt.Errorf("delete favourite: %w", err)
	}
	return nil
}
