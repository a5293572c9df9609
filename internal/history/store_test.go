package history_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/satprep/practice/internal/database"
	"github.com/satprep/practice/internal/history"
	"github.com/satprep/practice/internal/practice"
)

func setupStore(t *testing.T) *history.Store {
	t.Helper()
	ctx := context.Background()

	db, err := database.Open(ctx, ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	store, err := history.NewStore(ctx, db)
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	return store
}

func TestRecordAndGet(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	finished := time.Date(2026, 5, 2, 10, 30, 0, 0, time.UTC)

	want := practice.Result{
		ID:               "abc",
		Section:          "Reading and Writing Module 2",
		SectionSeconds:   1920,
		ElapsedSeconds:   1700,
		RemainingSeconds: 220,
		StartedAt:        finished.Add(-1700 * time.Second),
		FinishedAt:       finished,
	}
	if err := store.RecordResult(ctx, want); err != nil {
		t.Fatalf("RecordResult: %v", err)
	}

	got, err := store.GetResult(ctx, "abc")
	if err != nil {
		t.Fatalf("GetResult: %v", err)
	}
	if got.Section != want.Section || got.ElapsedSeconds != 1700 || got.RemainingSeconds != 220 {
		t.Errorf("got %+v", got)
	}
	if !got.FinishedAt.Equal(finished) {
		t.Errorf("finishedAt = %v, want %v", got.FinishedAt, finished)
	}
}

func TestGetResultNotFound(t *testing.T) {
	store := setupStore(t)
	if _, err := store.GetResult(context.Background(), "nope"); !errors.Is(err, history.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListResultsNewestFirst(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	base := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)

	for i, id := range []string{"first", "second", "third"} {
		err := store.RecordResult(ctx, practice.Result{
			ID:         id,
			Section:    "math",
			FinishedAt: base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	all, err := store.ListResults(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 || all[0].ID != "third" || all[2].ID != "first" {
		t.Fatalf("order = %v", resultIDs(all))
	}

	limited, err := store.ListResults(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 2 || limited[0].ID != "third" {
		t.Fatalf("limited = %v", resultIDs(limited))
	}
}

func TestListResultsEmpty(t *testing.T) {
	store := setupStore(t)
	got, err := store.ListResults(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("got %#v, want empty slice", got)
	}
}

func TestRecordResultUpserts(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	store.RecordResult(ctx, practice.Result{ID: "x", Section: "a", FinishedAt: time.Now()})
	store.RecordResult(ctx, practice.Result{ID: "x", Section: "b", FinishedAt: time.Now()})

	all, _ := store.ListResults(ctx, 0)
	if len(all) != 1 || all[0].Section != "b" {
		t.Fatalf("all = %+v", all)
	}
}

func resultIDs(rs []practice.Result) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}
