package snippets

import (
	"context"
	"testing"
)

func TestSearchFallsBackWithoutIndex(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	mustCreate(t, store, Snippet{Title: "bubble sort", Language: "python", Code: "def sort(xs): ..."})
	mustCreate(t, store, Snippet{Title: "http client", Language: "python", Code: "requests.get(url)"})

	results, err := Search(ctx, store, nil, "sort", 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Search returned %d results, want 1", len(results))
	}
	if results[0].Title != "bubble sort" {
		t.Errorf("Search[0].Title = %q", results[0].Title)
	}
	if results[0].Score != 0 {
		t.Errorf("fallback Score = %f, want 0", results[0].Score)
	}
}

func TestSearchJoinsIndexHits(t *testing.T) {
	store := newTestStore(t)
	idx := newTestIndex(t, "")
	ctx := context.Background()

	sortSnippet := mustCreate(t, store, Snippet{Title: "bubble sort", Language: "python", Code: "def sort(xs): ..."})
	httpSnippet := mustCreate(t, store, Snippet{Title: "http client", Language: "python", Code: "requests.get(url)"})
	for _, sn := range []*Snippet{sortSnippet, httpSnippet} {
		if err := idx.Add(ctx, *sn); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	results, err := Search(ctx, store, idx, "sorting things", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Search returned %d results, want 2", len(results))
	}
	if results[0].ID != sortSnippet.ID {
		t.Errorf("Search[0].ID = %s, want the sort snippet", results[0].ID)
	}
	if results[0].Score <= results[1].Score {
		t.Errorf("scores not descending: %f <= %f", results[0].Score, results[1].Score)
	}
	if results[0].Code == "" {
		t.Error("result missing stored snippet fields")
	}
}

func TestSearchSkipsStaleIndexHits(t *testing.T) {
	store := newTestStore(t)
	idx := newTestIndex(t, "")
	ctx := context.Background()

	kept := mustCreate(t, store, Snippet{Title: "bubble sort", Code: "def sort(xs): ..."})
	stale := mustCreate(t, store, Snippet{Title: "http client", Code: "requests.get(url)"})
	for _, sn := range []*Snippet{kept, stale} {
		if err := idx.Add(ctx, *sn); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	// Deleted from the store but still present in the index.
	if _, err := store.Delete(ctx, stale.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	results, err := Search(ctx, store, idx, "sort", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Search returned %d results, want stale hit dropped", len(results))
	}
	if results[0].ID != kept.ID {
		t.Errorf("Search[0].ID = %s, want %s", results[0].ID, kept.ID)
	}
}
