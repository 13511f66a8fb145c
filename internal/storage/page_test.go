package storage_test

import (
	"path/filepath"
	"testing"

	"dayflow/internal/domain"
	"dayflow/internal/editor"
	"dayflow/internal/storage"
)

// ─────────────────────────────────────────────────────────────
// PageStore tests — real SQLite in a temp dir
// ─────────────────────────────────────────────────────────────

func newTestDB(t *testing.T) *storage.DB {
	t.Helper()
	dir := t.TempDir()
	db, err := storage.New(filepath.Join(dir, "test.db"), dir)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestPageStore_CreateAndGet(t *testing.T) {
	store := storage.NewPageStore(newTestDB(t))

	p := editor.NewDefaultPage("u1")
	p.Title = "First Page"
	p.Tags = []string{"work"}
	if err := store.CreatePage(&p); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := store.GetPage(p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "First Page" || got.UserID != "u1" {
		t.Errorf("round trip: title=%q user=%q", got.Title, got.UserID)
	}
	if len(got.Tags) != 1 || got.Tags[0] != "work" {
		t.Errorf("expected tags to survive, got %v", got.Tags)
	}
	if len(got.Blocks) != 1 || got.Blocks[0].Type != domain.BlockTypeParagraph {
		t.Errorf("expected the default paragraph, got %+v", got.Blocks)
	}
}

func TestPageStore_GetMissing(t *testing.T) {
	store := storage.NewPageStore(newTestDB(t))
	if _, err := store.GetPage("no-such-page"); err == nil {
		t.Fatal("expected an error for a missing page")
	}
}

func TestPageStore_UpdateIsLastWriteWins(t *testing.T) {
	store := storage.NewPageStore(newTestDB(t))

	p := editor.NewDefaultPage("u1")
	if err := store.CreatePage(&p); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Two writers race; the later UPDATE simply replaces the document.
	a := p.Clone()
	a.Title = "writer A"
	b := p.Clone()
	b.Title = "writer B"

	if err := store.UpdatePage(&a); err != nil {
		t.Fatalf("update a: %v", err)
	}
	if err := store.UpdatePage(&b); err != nil {
		t.Fatalf("update b: %v", err)
	}

	got, _ := store.GetPage(p.ID)
	if got.Title != "writer B" {
		t.Errorf("expected the last write to win, got %q", got.Title)
	}
}

func TestPageStore_ListByUser(t *testing.T) {
	store := storage.NewPageStore(newTestDB(t))

	for _, user := range []string{"u1", "u1", "u2"} {
		p := editor.NewDefaultPage(user)
		if err := store.CreatePage(&p); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	pages, err := store.ListPages("u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(pages) != 2 {
		t.Errorf("expected 2 pages for u1, got %d", len(pages))
	}
}

func TestPageStore_DeleteRemovesBackupsToo(t *testing.T) {
	db := newTestDB(t)
	store := storage.NewPageStore(db)
	backups := storage.NewBackupStore(db, 5)

	p := editor.NewDefaultPage("u1")
	if err := store.CreatePage(&p); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := backups.CreateBackup(p.ID, `{"id":"x"}`); err != nil {
		t.Fatalf("backup: %v", err)
	}

	if err := store.DeletePage(p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.GetPage(p.ID); err == nil {
		t.Error("expected the page to be gone")
	}
	left, err := backups.ListBackups(p.ID)
	if err != nil {
		t.Fatalf("list backups: %v", err)
	}
	if len(left) != 0 {
		t.Errorf("expected backups to be gone, got %d", len(left))
	}
}

func TestBackupStore_PrunesOldest(t *testing.T) {
	db := newTestDB(t)
	store := storage.NewPageStore(db)
	backups := storage.NewBackupStore(db, 3)

	p := editor.NewDefaultPage("u1")
	if err := store.CreatePage(&p); err != nil {
		t.Fatalf("create: %v", err)
	}

	for i := 0; i < 6; i++ {
		if err := backups.CreateBackup(p.ID, `{}`); err != nil {
			t.Fatalf("backup %d: %v", i, err)
		}
	}

	got, err := backups.ListBackups(p.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("expected pruning to keep 3 snapshots, got %d", len(got))
	}
}
