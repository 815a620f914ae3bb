package persistence

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *CSVStore {
	t.Helper()
	store, err := NewCSVStore(t.TempDir(), map[string][]string{
		"widgets": {"name", "count"},
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return store
}

func TestLoadMissingTable(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Load(context.Background(), "widgets")
	if !errors.Is(err, ErrTableMissing) {
		t.Fatalf("expected ErrTableMissing, got %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	in := []Row{
		{"bolt", "10"},
		{"nut", "25"},
		{"washer", "3"},
	}
	if err := store.Save(ctx, "widgets", in); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	out, err := store.Load(ctx, "widgets")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("round trip mismatch: saved %v, loaded %v", in, out)
	}
}

func TestAppendCreatesFileWithHeader(t *testing.T) {
	dir := t.TempDir()
	store, err := NewCSVStore(dir, map[string][]string{"widgets": {"name", "count"}}, zap.NewNop())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	ctx := context.Background()

	if err := store.Append(ctx, "widgets", Row{"bolt", "10"}); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(dir, "widgets.csv"))
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if string(content) != "name,count\nbolt,10\n" {
		t.Errorf("unexpected file content: %q", string(content))
	}
}

func TestAppendPreservesOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, row := range []Row{{"a", "1"}, {"b", "2"}, {"c", "3"}} {
		if err := store.Append(ctx, "widgets", row); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}

	rows, err := store.Load(ctx, "widgets")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(rows) != 3 || rows[0][0] != "a" || rows[2][0] != "c" {
		t.Errorf("order not preserved: %v", rows)
	}
}

func TestUpdateAbortsWithoutWriting(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "widgets", []Row{{"bolt", "10"}}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	wantErr := errors.New("nope")
	err := store.Update(ctx, "widgets", func(rows []Row) ([]Row, error) {
		rows[0][1] = "0"
		return rows, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected callback error, got %v", err)
	}

	rows, err := store.Load(ctx, "widgets")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if rows[0][1] != "10" {
		t.Errorf("aborted update mutated table: %v", rows)
	}
}

func TestUpdateOnMissingTableSeesEmpty(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.Update(ctx, "widgets", func(rows []Row) ([]Row, error) {
		if len(rows) != 0 {
			t.Errorf("expected empty rows, got %v", rows)
		}
		return append(rows, Row{"bolt", "1"}), nil
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	rows, err := store.Load(ctx, "widgets")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("expected 1 row, got %d", len(rows))
	}
}

func TestUnknownTableRejected(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Load(context.Background(), "gadgets"); err == nil {
		t.Error("expected error for unknown table")
	}
	if err := store.Save(context.Background(), "gadgets", nil); err == nil {
		t.Error("expected error for unknown table")
	}
}
