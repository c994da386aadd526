package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/Skotchmaster/music_catalog/internal/repo"
	"github.com/Skotchmaster/music_catalog/internal/transport"
)

const bulkChunk = 500

// Reindex writes every catalog name into the index so rows created before the
// index was enabled are searchable. Existing documents are overwritten by id.
func (x *ESIndex) Reindex(ctx context.Context, r *repo.GormRepo) (int, error) {
	docs, err := r.CatalogNames(ctx)
	if err != nil {
		return 0, fmt.Errorf("reindex load: %w", err)
	}
	for start := 0; start < len(docs); start += bulkChunk {
		end := min(start+bulkChunk, len(docs))
		if err := x.bulk(ctx, docs[start:end]); err != nil {
			return start, err
		}
	}
	return len(docs), nil
}

func (x *ESIndex) bulk(ctx context.Context, docs []transport.SearchHit) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, doc := range docs {
		meta := map[string]any{"index": map[string]any{"_index": x.Index, "_id": docID(doc.Kind, doc.ID)}}
		if err := enc.Encode(meta); err != nil {
			return fmt.Errorf("reindex encode: %w", err)
		}
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("reindex encode: %w", err)
		}
	}

	res, err := x.ES.Bulk(&buf, x.ES.Bulk.WithContext(ctx), x.ES.Bulk.WithIndex(x.Index))
	if err != nil {
		return fmt.Errorf("reindex bulk: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("reindex bulk: %s", res.Status())
	}

	var out struct {
		Errors bool `json:"errors"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return fmt.Errorf("reindex decode: %w", err)
	}
	if out.Errors {
		return fmt.Errorf("reindex bulk: some documents were rejected")
	}
	return nil
}
