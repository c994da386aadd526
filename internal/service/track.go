package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/Skotchmaster/music_catalog/internal/models"
	"github.com/Skotchmaster/music_catalog/internal/repo"
	"github.com/Skotchmaster/music_catalog/internal/transport"
)

// CreateTrack runs the name, artist and album lookups concurrently. A taken
// name wins over a missing reference.
func (s *CatalogService) CreateTrack(ctx context.Context, req transport.CreateTrackRequest) (*models.Track, error) {
	artistID := strings.TrimSpace(req.ArtistID)
	albumID := strings.TrimSpace(req.AlbumID)
	name := strings.TrimSpace(req.Name)
	if missing, ok := firstMissing(
		field{"artist_id", artistID != ""},
		field{"album_id", albumID != ""},
		field{"name", name != ""},
		field{"duration", req.Duration != nil},
	); ok {
		return nil, invalid("Bad Request: Missing " + missing)
	}

	var taken, artistFound, albumFound bool
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		taken, err = s.Repo.TrackNameTaken(gctx, name)
		return err
	})
	g.Go(func() (err error) {
		artistFound, err = s.Repo.ArtistExists(gctx, artistID)
		return err
	})
	g.Go(func() (err error) {
		albumFound, err = s.Repo.AlbumExists(gctx, albumID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("track lookups: %w", err)
	}

	switch {
	case taken:
		return nil, conflict("Track already exists.")
	case !artistFound, !albumFound:
		return nil, notFound(MsgNoResource)
	}

	track := models.Track{Name: name, Duration: *req.Duration, ArtistID: artistID, AlbumID: albumID}
	if req.Hidden != nil {
		track.Hidden = *req.Hidden
	}
	if err := s.Repo.CreateTrack(ctx, &track); err != nil {
		if repo.IsDuplicate(err) {
			return nil, conflict("Track already exists.")
		}
		return nil, fmt.Errorf("create track: %w", err)
	}

	s.changed(ctx, "created", models.CategoryTrack, track.TrackID, track.Name)
	return &track, nil
}

func (s *CatalogService) ListTracks(ctx context.Context, f repo.TrackFilter, p repo.Page) ([]transport.TrackView, error) {
	tracks, err := s.Repo.ListTracks(ctx, f, p)
	if err != nil {
		return nil, fmt.Errorf("list tracks: %w", err)
	}
	return tracks, nil
}

func (s *CatalogService) GetTrack(ctx context.Context, id string) (*transport.TrackView, error) {
	if id == "" {
		return nil, invalid("Bad Request: Missing track_id")
	}
	view, err := s.Repo.GetTrackView(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Track not found.")
		}
		return nil, fmt.Errorf("get track: %w", err)
	}
	return view, nil
}

func (s *CatalogService) findTrack(ctx context.Context, id string) (*models.Track, error) {
	if id == "" {
		return nil, invalid("Bad Request: Missing track_id")
	}
	track, err := s.Repo.GetTrack(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(MsgNoResource)
		}
		return nil, fmt.Errorf("get track: %w", err)
	}
	return track, nil
}

func (s *CatalogService) PatchTrack(ctx context.Context, id string, req transport.PatchTrackRequest) error {
	track, err := s.findTrack(ctx, id)
	if err != nil {
		return err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return invalid("Bad Request: Missing name")
		}
		req.Name = &name
		if repo.NameKey(name) != track.NameKey {
			taken, err := s.Repo.TrackNameTaken(ctx, name)
			if err != nil {
				return fmt.Errorf("check track name: %w", err)
			}
			if taken {
				return conflict("Track already exists.")
			}
		}
	}

	if err := s.Repo.PatchTrack(ctx, id, req); err != nil {
		if repo.IsDuplicate(err) {
			return conflict("Track already exists.")
		}
		return fmt.Errorf("patch track: %w", err)
	}

	if req.Name != nil {
		s.changed(ctx, "updated", models.CategoryTrack, id, *req.Name)
	}
	return nil
}

func (s *CatalogService) DeleteTrack(ctx context.Context, id string) (*models.Track, error) {
	track, err := s.findTrack(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.DeleteTrack(ctx, id); err != nil {
		return nil, fmt.Errorf("delete track: %w", err)
	}
	s.changed(ctx, "deleted", models.CategoryTrack, id, track.Name)
	return track, nil
}
