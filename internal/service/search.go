package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Skotchmaster/music_catalog/internal/repo"
	"github.com/Skotchmaster/music_catalog/internal/search"
	"github.com/Skotchmaster/music_catalog/internal/transport"
)

type SearchService struct {
	Index search.Index
}

func (s *SearchService) Search(ctx context.Context, q string, p repo.Page) ([]transport.SearchHit, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, invalid("Bad Request: Missing q")
	}
	hits, err := s.Index.Query(ctx, q, p)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return hits, nil
}
