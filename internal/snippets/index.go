package snippets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	chromem "github.com/philippgille/chromem-go"

	"github.com/codebench-ai/codebench/internal/embeddings"
)

const (
	collectionName = "snippets"
	indexFileName  = "chromem.gob.gz"
)

// Index is the vector search index over snippets, backed by chromem-go.
// A non-empty dir makes the index durable across restarts.
type Index struct {
	db         *chromem.DB
	collection *chromem.Collection
	embedFunc  chromem.EmbeddingFunc
	dir        string
}

// NewIndex creates a snippet index using the given embedder. When dir is
// non-empty, a previously persisted index is loaded from it.
func NewIndex(embedder embeddings.Embedder, dir string) (*Index, error) {
	db := chromem.NewDB()
	ef := embeddings.ChromemFunc(embedder)

	col, err := db.GetOrCreateCollection(collectionName, nil, ef)
	if err != nil {
		return nil, fmt.Errorf("creating snippet collection: %w", err)
	}

	idx := &Index{db: db, collection: col, embedFunc: ef, dir: dir}

	if dir != "" {
		if err := idx.load(); err != nil {
			return nil, err
		}
	}
	return idx, nil
}

// indexText is what gets embedded for a snippet.
func indexText(sn Snippet) string {
	parts := []string{sn.Title}
	if sn.Description != "" {
		parts = append(parts, sn.Description)
	}
	parts = append(parts, sn.Code)
	return strings.Join(parts, "\n\n")
}

// Add embeds and indexes one snippet.
func (idx *Index) Add(ctx context.Context, sn Snippet) error {
	doc := chromem.Document{
		ID:      sn.ID,
		Content: indexText(sn),
		Metadata: map[string]string{
			"title":    sn.Title,
			"language": sn.Language,
		},
	}
	if err := idx.collection.AddDocuments(ctx, []chromem.Document{doc}, 1); err != nil {
		return fmt.Errorf("indexing snippet %s: %w", sn.ID, err)
	}
	return nil
}

// Remove drops a snippet from the index.
func (idx *Index) Remove(ctx context.Context, id string) error {
	if err := idx.collection.Delete(ctx, nil, nil, id); err != nil {
		return fmt.Errorf("removing snippet %s from index: %w", id, err)
	}
	return nil
}

// Hit is one vector search match.
type Hit struct {
	ID         string
	Similarity float32
}

// Search returns the ids of the closest snippets to the query.
func (idx *Index) Search(ctx context.Context, query string, limit int) ([]Hit, error) {
	if limit <= 0 {
		limit = 10
	}

	// chromem-go requires nResults <= collection size.
	count := idx.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if limit > count {
		limit = count
	}

	results, err := idx.collection.Query(ctx, query, limit, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("querying snippet index: %w", err)
	}

	hits := make([]Hit, len(results))
	for i, r := range results {
		hits[i] = Hit{ID: r.ID, Similarity: r.Similarity}
	}
	return hits, nil
}

// Count returns the number of indexed snippets.
func (idx *Index) Count() int {
	return idx.collection.Count()
}

// Persist writes the index to its directory. It is a no-op for a purely
// in-memory index.
func (idx *Index) Persist() error {
	if idx.dir == "" {
		return nil
	}
	if err := os.MkdirAll(idx.dir, 0o755); err != nil {
		return fmt.Errorf("creating index directory: %w", err)
	}
	path := filepath.Join(idx.dir, indexFileName)
	if err := idx.db.ExportToFile(path, true, ""); err != nil {
		return fmt.Errorf("persisting snippet index: %w", err)
	}
	return nil
}

func (idx *Index) load() error {
	path := filepath.Join(idx.dir, indexFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	if err := idx.db.ImportFromFile(path, ""); err != nil {
		return fmt.Errorf("loading snippet index: %w", err)
	}

	// Re-acquire the collection reference after import.
	col := idx.db.GetCollection(collectionName, idx.embedFunc)
	if col == nil {
		return fmt.Errorf("collection %q not found after import", collectionName)
	}
	idx.collection = col
	return nil
}
