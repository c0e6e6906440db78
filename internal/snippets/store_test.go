package snippets

import (
	"context"
	"testing"
	"time"

	"github.com/codebench-ai/codebench/internal/db"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("opening in-memory db: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database)
}

func mustCreate(t *testing.T, store *Store, sn Snippet) *Snippet {
	t.Helper()
	created, err := store.Create(context.Background(), sn)
	if err != nil {
		t.Fatalf("Create(%q): %v", sn.Title, err)
	}
	return created
}

func TestCreateAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created := mustCreate(t, store, Snippet{
		Title:    "bubble sort",
		Language: "python",
		Code:     "def sort(xs): ...",
	})
	if created.ID == "" {
		t.Fatal("Create assigned no ID")
	}
	if created.CreatedAt.IsZero() {
		t.Fatal("Create assigned no timestamp")
	}

	got, err := store.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil {
		t.Fatal("Get returned nil for existing snippet")
	}
	if got.Title != "bubble sort" || got.Language != "python" {
		t.Errorf("Get = %+v, want title/language back", got)
	}

	missing, err := store.Get(ctx, "no-such-id")
	if err != nil {
		t.Fatalf("Get(missing): %v", err)
	}
	if missing != nil {
		t.Error("Get(missing) != nil")
	}
}

func TestListFiltersByLanguage(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	mustCreate(t, store, Snippet{Title: "a", Language: "python", Code: "pass"})
	time.Sleep(5 * time.Millisecond)
	mustCreate(t, store, Snippet{Title: "b", Language: "go", Code: "package b"})
	time.Sleep(5 * time.Millisecond)
	mustCreate(t, store, Snippet{Title: "c", Language: "python", Code: "pass"})

	all, err := store.List(ctx, "", 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("List returned %d snippets, want 3", len(all))
	}
	if all[0].Title != "c" {
		t.Errorf("List[0].Title = %q, want newest first", all[0].Title)
	}

	pythons, err := store.List(ctx, "python", 0)
	if err != nil {
		t.Fatalf("List(python): %v", err)
	}
	if len(pythons) != 2 {
		t.Fatalf("List(python) returned %d snippets, want 2", len(pythons))
	}
	for _, sn := range pythons {
		if sn.Language != "python" {
			t.Errorf("List(python) included language %q", sn.Language)
		}
	}

	limited, err := store.List(ctx, "", 1)
	if err != nil {
		t.Fatalf("List(limit=1): %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("List(limit=1) returned %d snippets", len(limited))
	}
}

func TestDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created := mustCreate(t, store, Snippet{Title: "tmp", Code: "x"})

	deleted, err := store.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !deleted {
		t.Error("Delete reported false for existing snippet")
	}

	again, err := store.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("Delete(again): %v", err)
	}
	if again {
		t.Error("Delete reported true for missing snippet")
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 0 {
		t.Errorf("Count = %d after delete, want 0", count)
	}
}

func TestSearchLike(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	mustCreate(t, store, Snippet{Title: "fib", Language: "python", Code: "def fib(n): ..."})
	mustCreate(t, store, Snippet{Title: "server", Language: "go", Code: "http.ListenAndServe"})
	mustCreate(t, store, Snippet{Title: "notes", Language: "markdown", Code: "# notes", Description: "fibonacci background"})

	got, err := store.SearchLike(ctx, "fib", 0)
	if err != nil {
		t.Fatalf("SearchLike: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("SearchLike(fib) returned %d snippets, want 2", len(got))
	}

	none, err := store.SearchLike(ctx, "no such text", 0)
	if err != nil {
		t.Fatalf("SearchLike(miss): %v", err)
	}
	if len(none) != 0 {
		t.Errorf("SearchLike(miss) returned %d snippets, want 0", len(none))
	}
}

func TestGetManyPreservesOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := mustCreate(t, store, Snippet{Title: "first", Code: "1"})
	second := mustCreate(t, store, Snippet{Title: "second", Code: "2"})

	got, err := store.GetMany(ctx, []string{second.ID, "gone", first.ID})
	if err != nil {
		t.Fatalf("GetMany: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("GetMany returned %d snippets, want 2", len(got))
	}
	if got[0].ID != second.ID || got[1].ID != first.ID {
		t.Errorf("GetMany order = [%s, %s], want input order with gaps skipped", got[0].Title, got[1].Title)
	}
}
