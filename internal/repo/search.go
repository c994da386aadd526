package repo

import (
	"context"
	"strings"

	"github.com/Skotchmaster/music_catalog/internal/models"
	"github.com/Skotchmaster/music_catalog/internal/transport"
)

var searchable = []models.Category{models.CategoryArtist, models.CategoryAlbum, models.CategoryTrack}

func likePattern(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(strings.TrimSpace(q))) + "%"
}

// SearchCatalog matches names across artists, albums and tracks. It backs
// search when no Elasticsearch index is configured.
func (r *GormRepo) SearchCatalog(ctx context.Context, q string, p Page) ([]transport.SearchHit, error) {
	pattern := likePattern(q)
	hits := make([]transport.SearchHit, 0, p.Limit)

	for _, cat := range searchable {
		var rows []itemName
		err := r.DB.WithContext(ctx).
			Table(cat.Table()).
			Select(cat.KeyColumn()+" AS id, name").
			Where(`LOWER(name) LIKE ? ESCAPE '\'`, pattern).
			Order("name ASC, " + cat.KeyColumn() + " ASC").
			Limit(p.Offset + p.Limit).
			Scan(&rows).Error
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			hits = append(hits, transport.SearchHit{Kind: cat.String(), ID: row.ID, Name: row.Name})
		}
	}

	if p.Offset >= len(hits) {
		return []transport.SearchHit{}, nil
	}
	hits = hits[p.Offset:]
	if len(hits) > p.Limit {
		hits = hits[:p.Limit]
	}
	return hits, nil
}

// CatalogNames returns every artist, album and track name. It seeds an
// external search index from the catalog tables.
func (r *GormRepo) CatalogNames(ctx context.Context) ([]transport.SearchHit, error) {
	var docs []transport.SearchHit
	for _, cat := range searchable {
		var rows []itemName
		err := r.DB.WithContext(ctx).
			Table(cat.Table()).
			Select(cat.KeyColumn() + " AS id, name").
			Order(cat.KeyColumn() + " ASC").
			Scan(&rows).Error
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			docs = append(docs, transport.SearchHit{Kind: cat.String(), ID: row.ID, Name: row.Name})
		}
	}
	return docs, nil
}
