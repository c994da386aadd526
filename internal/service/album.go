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

// CreateAlbum checks the artist before the name, so an album for a missing
// artist is a 404 even when the name is already taken.
func (s *CatalogService) CreateAlbum(ctx context.Context, req transport.CreateAlbumRequest) (*models.Album, error) {
	artistID := strings.TrimSpace(req.ArtistID)
	name := strings.TrimSpace(req.Name)
	if missing, ok := firstMissing(
		field{"artist_id", artistID != ""},
		field{"name", name != ""},
		field{"year", req.Year != nil},
	); ok {
		return nil, invalid("Bad Request: Missing " + missing)
	}

	found, err := s.Repo.ArtistExists(ctx, artistID)
	if err != nil {
		return nil, fmt.Errorf("check artist: %w", err)
	}
	if !found {
		return nil, notFound(MsgNoResource)
	}

	taken, err := s.Repo.AlbumNameTaken(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("check album name: %w", err)
	}
	if taken {
		return nil, conflict("Album already exists.")
	}

	album := models.Album{Name: name, Year: *req.Year, ArtistID: artistID}
	if req.Hidden != nil {
		album.Hidden = *req.Hidden
	}
	if err := s.Repo.CreateAlbum(ctx, &album); err != nil {
		if repo.IsDuplicate(err) {
			return nil, conflict("Album already exists.")
		}
		return nil, fmt.Errorf("create album: %w", err)
	}

	s.changed(ctx, "created", models.CategoryAlbum, album.AlbumID, album.Name)
	return &album, nil
}

func (s *CatalogService) ListAlbums(ctx context.Context, f repo.AlbumFilter, p repo.Page) ([]transport.AlbumView, error) {
	albums, err := s.Repo.ListAlbums(ctx, f, p)
	if err != nil {
		return nil, fmt.Errorf("list albums: %w", err)
	}
	return albums, nil
}

func (s *CatalogService) GetAlbum(ctx context.Context, id string) (*transport.AlbumView, error) {
	if id == "" {
		return nil, invalid("Bad Request: Missing album_id")
	}
	view, err := s.Repo.GetAlbumView(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Album not found.")
		}
		return nil, fmt.Errorf("get album: %w", err)
	}
	return view, nil
}

func (s *CatalogService) findAlbum(ctx context.Context, id string) (*models.Album, error) {
	if id == "" {
		return nil, invalid("Bad Request: Missing album_id")
	}
	album, err := s.Repo.GetAlbum(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(MsgNoResource)
		}
		return nil, fmt.Errorf("get album: %w", err)
	}
	return album, nil
}

func (s *CatalogService) PatchAlbum(ctx context.Context, id string, req transport.PatchAlbumRequest) error {
	album, err := s.findAlbum(ctx, id)
	if err != nil {
		return err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return invalid("Bad Request: Missing name")
		}
		req.Name = &name
		if name != album.Name {
			taken, err := s.Repo.AlbumNameTaken(ctx, name)
			if err != nil {
				return fmt.Errorf("check album name: %w", err)
			}
			if taken {
				return conflict("Album already exists.")
			}
		}
	}

	if err := s.Repo.PatchAlbum(ctx, id, req); err != nil {
		if repo.IsDuplicate(err) {
			return conflict("Album already exists.")
		}
		return fmt.Errorf("patch album: %w", err)
	}

	if req.Name != nil {
		s.changed(ctx, "updated", models.CategoryAlbum, id, *req.Name)
	}
	return nil
}

func (s *CatalogService) DeleteAlbum(ctx context.Context, id string) (*models.Album, error) {
	album, err := s.findAlbum(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.DeleteAlbum(ctx, id); err != nil {
		return nil, fmt.Errorf("delete album: %w", err)
	}
	s.changed(ctx, "deleted", models.CategoryAlbum, id, album.Name)
	return album, nil
}
