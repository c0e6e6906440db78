package snippets

import (
	"context"
	"log/slog"
)

// Search finds snippets matching the query. With an index it runs a
// vector search and joins the hits back to stored snippets; without one,
// or when the index errors, it falls back to plain text matching.
func Search(ctx context.Context, store *Store, index *Index, query string, limit int) ([]SearchResult, error) {
	if index != nil {
		hits, err := index.Search(ctx, query, limit)
		if err == nil {
			ids := make([]string, len(hits))
			simByID := make(map[string]float32, len(hits))
			for i, h := range hits {
				ids[i] = h.ID
				simByID[h.ID] = h.Similarity
			}
			matched, err := store.GetMany(ctx, ids)
			if err != nil {
				return nil, err
			}
			results := make([]SearchResult, len(matched))
			for i, sn := range matched {
				results[i] = SearchResult{Snippet: sn, Score: float64(simByID[sn.ID])}
			}
			return results, nil
		}
		slog.Warn("vector search failed, falling back to text match", "error", err)
	}

	matched, err := store.SearchLike(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	results := make([]SearchResult, len(matched))
	for i, sn := range matched {
		results[i] = SearchResult{Snippet: sn}
	}
	return results, nil
}
