package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/Skotchmaster/music_catalog/internal/events"
	"github.com/Skotchmaster/music_catalog/internal/models"
	"github.com/Skotchmaster/music_catalog/internal/repo"
	"github.com/Skotchmaster/music_catalog/internal/search"
	"github.com/Skotchmaster/music_catalog/internal/transport"
)

type CatalogService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
	Index  search.Index
}

func (s *CatalogService) notify() notifier {
	return notifier{Events: s.Events, Index: s.Index}
}

func (s *CatalogService) changed(ctx context.Context, typ string, cat models.Category, id, name string) {
	n := s.notify()
	n.publish(ctx, events.TopicCatalog, events.Event{Type: cat.String() + "_" + typ, ID: id, Name: name})
	if typ == "deleted" {
		n.indexRemove(ctx, cat.String(), id)
		return
	}
	n.indexPut(ctx, transport.SearchHit{Kind: cat.String(), ID: id, Name: name})
}

func (s *CatalogService) CreateArtist(ctx context.Context, req transport.CreateArtistRequest) (*models.Artist, error) {
	name := strings.TrimSpace(req.Name)
	if missing, ok := firstMissing(
		field{"name", name != ""},
		field{"grammy", req.Grammy != nil},
	); ok {
		return nil, invalid("Bad Request, Reason: Missing " + missing)
	}

	taken, err := s.Repo.ArtistNameTaken(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("check artist name: %w", err)
	}
	if taken {
		return nil, conflict("Artist already exists.")
	}

	artist := models.Artist{Name: name, Grammy: *req.Grammy}
	if req.Hidden != nil {
		artist.Hidden = *req.Hidden
	}
	if err := s.Repo.CreateArtist(ctx, &artist); err != nil {
		if repo.IsDuplicate(err) {
			return nil, conflict("Artist already exists.")
		}
		return nil, fmt.Errorf("create artist: %w", err)
	}

	s.changed(ctx, "created", models.CategoryArtist, artist.ArtistID, artist.Name)
	return &artist, nil
}

func (s *CatalogService) ListArtists(ctx context.Context, f repo.ArtistFilter, p repo.Page) ([]transport.ArtistView, error) {
	artists, err := s.Repo.ListArtists(ctx, f, p)
	if err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}
	return artists, nil
}

func (s *CatalogService) GetArtist(ctx context.Context, id string) (*transport.ArtistView, error) {
	artist, err := s.findArtist(ctx, id)
	if err != nil {
		return nil, err
	}
	view := repo.ArtistView(artist)
	return &view, nil
}

func (s *CatalogService) findArtist(ctx context.Context, id string) (*models.Artist, error) {
	if id == "" {
		return nil, invalid("Bad Request: Missing artist_id")
	}
	artist, err := s.Repo.GetArtist(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Artist not found.")
		}
		return nil, fmt.Errorf("get artist: %w", err)
	}
	return artist, nil
}

func (s *CatalogService) PatchArtist(ctx context.Context, id string, req transport.PatchArtistRequest) error {
	artist, err := s.findArtist(ctx, id)
	if err != nil {
		return err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return invalid("Bad Request, Reason: Missing name")
		}
		req.Name = &name
		if repo.NameKey(name) != artist.NameKey {
			taken, err := s.Repo.ArtistNameTaken(ctx, name)
			if err != nil {
				return fmt.Errorf("check artist name: %w", err)
			}
			if taken {
				return conflict("Artist already exists.")
			}
		}
	}

	if err := s.Repo.PatchArtist(ctx, id, req); err != nil {
		if repo.IsDuplicate(err) {
			return conflict("Artist already exists.")
		}
		return fmt.Errorf("patch artist: %w", err)
	}

	if req.Name != nil {
		s.changed(ctx, "updated", models.CategoryArtist, id, *req.Name)
	}
	return nil
}

// DeleteArtist leaves albums, tracks and favourites that point at the artist in place.
func (s *CatalogService) DeleteArtist(ctx context.Context, id string) (*models.Artist, error) {
	artist, err := s.findArtist(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.DeleteArtist(ctx, id); err != nil {
		return nil, fmt.Errorf("delete artist: %w", err)
	}
	s.changed(ctx, "deleted", models.CategoryArtist, id, artist.Name)
	return artist, nil
}
