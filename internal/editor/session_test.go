package editor_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"dayflow/internal/domain"
	"dayflow/internal/editor"
	"dayflow/internal/service"
)

// ─────────────────────────────────────────────────────────────
// Session tests — mutation flow, history wiring, persistence
// ─────────────────────────────────────────────────────────────

// memStore is an in-memory PageStore double.
type memStore struct {
	mu    sync.Mutex
	pages map[string]domain.Page
}

func newMemStore() *memStore {
	return &memStore{pages: make(map[string]domain.Page)}
}

func (s *memStore) CreatePage(p *domain.Page) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages[p.ID] = p.Clone()
	return nil
}

func (s *memStore) GetPage(id string) (*domain.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pages[id]
	if !ok {
		return nil, fmt.Errorf("page not found: %s", id)
	}
	out := p.Clone()
	return &out, nil
}

func (s *memStore) ListPages(userID string) ([]domain.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Page
	for _, p := range s.pages {
		if p.UserID == userID {
			out = append(out, p.Clone())
		}
	}
	return out, nil
}

func (s *memStore) UpdatePage(p *domain.Page) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages[p.ID] = p.Clone()
	return nil
}

func (s *memStore) DeletePage(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pages, id)
	return nil
}

func newTestSession(t *testing.T) (*editor.Session, *memStore, *service.MockEmitter) {
	t.Helper()
	store := newMemStore()
	emitter := &service.MockEmitter{}
	sess := editor.NewSession(context.Background(), store, emitter, 20*time.Millisecond, zerolog.Nop())
	if _, err := sess.LoadNew("tester"); err != nil {
		t.Fatalf("load new page: %v", err)
	}
	return sess, store, emitter
}

func lastEvent(m *service.MockEmitter) string {
	if len(m.Events) == 0 {
		return ""
	}
	return m.Events[len(m.Events)-1].Event
}

func TestSession_NewDefaultPage(t *testing.T) {
	p := editor.NewDefaultPage("tester")
	if p.Title != "Untitled" {
		t.Errorf("expected default title Untitled, got %q", p.Title)
	}
	if len(p.Blocks) != 1 || p.Blocks[0].Type != domain.BlockTypeParagraph {
		t.Errorf("expected a single empty paragraph, got %+v", p.Blocks)
	}
}

func TestSession_ApplyThreadsHistoryAndEvents(t *testing.T) {
	sess, _, emitter := newTestSession(t)

	id := sess.AddBlock("", domain.BlockTypeHeading1)
	if id == "" {
		t.Fatal("expected AddBlock to return an id")
	}
	if !sess.CanUndo() {
		t.Error("expected history after a mutation")
	}
	if !sess.Dirty() {
		t.Error("expected the document to be dirty after a mutation")
	}
	if lastEvent(emitter) != "page:changed" {
		t.Errorf("expected page:changed, got %q", lastEvent(emitter))
	}
}

func TestSession_AddBlockWithTextIsOneUndoStep(t *testing.T) {
	sess, _, _ := newTestSession(t)

	id := sess.AddBlockWithText("", domain.BlockTypeHeading1, "Agenda")
	page := sess.Page()
	if got := len(page.Blocks); got != 2 {
		t.Fatalf("expected 2 blocks, got %d", got)
	}
	if got := domain.PlainText(page.Blocks[1].Content); got != "Agenda" {
		t.Errorf("expected initial text to be set, got %q", got)
	}
	if page.Blocks[1].ID != id {
		t.Error("expected the returned id to match the new block")
	}

	// One undo removes block and text together.
	if !sess.Undo() {
		t.Fatal("expected undo to succeed")
	}
	if got := len(sess.Page().Blocks); got != 1 {
		t.Errorf("expected a single undo to remove the block, got %d blocks", got)
	}
	if sess.CanUndo() {
		t.Error("expected no second history step for the text fill")
	}
}

func TestSession_GuardedNoopLeavesEverything(t *testing.T) {
	sess, _, emitter := newTestSession(t)
	before := len(emitter.Events)

	// The only block on a fresh page cannot be deleted.
	onlyID := sess.Page().Blocks[0].ID
	if _, ok := sess.DeleteBlock(onlyID); ok {
		t.Fatal("expected delete of the only block to be refused")
	}
	if sess.CanUndo() {
		t.Error("expected no history entry for a guarded no-op")
	}
	if sess.Dirty() {
		t.Error("expected no dirty flag for a guarded no-op")
	}
	if len(emitter.Events) != before {
		t.Error("expected no events for a guarded no-op")
	}
}

func TestSession_UndoRedoRestoresState(t *testing.T) {
	sess, _, _ := newTestSession(t)

	sess.SetTitle("Renamed")
	sess.AddBlock("", domain.BlockTypeQuote)
	if got := len(sess.Page().Blocks); got != 2 {
		t.Fatalf("expected 2 blocks, got %d", got)
	}

	if !sess.Undo() {
		t.Fatal("expected undo to succeed")
	}
	if got := len(sess.Page().Blocks); got != 1 {
		t.Errorf("expected 1 block after undo, got %d", got)
	}
	if sess.Page().Title != "Renamed" {
		t.Errorf("expected the rename to survive one undo, got %q", sess.Page().Title)
	}

	if !sess.Redo() {
		t.Fatal("expected redo to succeed")
	}
	if got := len(sess.Page().Blocks); got != 2 {
		t.Errorf("expected 2 blocks after redo, got %d", got)
	}
}

func TestSession_PageReturnsCopy(t *testing.T) {
	sess, _, _ := newTestSession(t)

	copy1 := sess.Page()
	copy1.Title = "mutated locally"

	if sess.Page().Title == "mutated locally" {
		t.Error("expected Page() to return an independent copy")
	}
}

func TestSession_SavePersistsAndClearsDirty(t *testing.T) {
	sess, store, emitter := newTestSession(t)

	sess.SetTitle("Persisted")
	if err := sess.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	if sess.Dirty() {
		t.Error("expected dirty to clear after save")
	}
	stored, err := store.GetPage(sess.PageID())
	if err != nil {
		t.Fatalf("get page: %v", err)
	}
	if stored.Title != "Persisted" {
		t.Errorf("expected stored title Persisted, got %q", stored.Title)
	}
	if lastEvent(emitter) != "page:saved" {
		t.Errorf("expected page:saved, got %q", lastEvent(emitter))
	}
}

func TestSession_AutosaveFiresWithLatestState(t *testing.T) {
	sess, store, _ := newTestSession(t)

	sess.SetTitle("first")
	sess.SetTitle("second")

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if !sess.Dirty() {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	if sess.Dirty() {
		t.Fatal("expected autosave to fire")
	}
	stored, _ := store.GetPage(sess.PageID())
	if stored.Title != "second" {
		t.Errorf("expected autosave to persist the latest state, got %q", stored.Title)
	}
}

func TestSession_LoadResetsHistoryAndDirty(t *testing.T) {
	sess, store, _ := newTestSession(t)

	other := editor.NewDefaultPage("tester")
	other.Title = "Other"
	if err := store.CreatePage(&other); err != nil {
		t.Fatalf("create: %v", err)
	}

	sess.SetTitle("unsaved work")
	if err := sess.Load(other.ID); err != nil {
		t.Fatalf("load: %v", err)
	}

	if sess.CanUndo() || sess.CanRedo() {
		t.Error("expected history to reset on load")
	}
	if sess.Dirty() {
		t.Error("expected pending autosave to be discarded on load")
	}
	if sess.Page().Title != "Other" {
		t.Errorf("expected the loaded page, got %q", sess.Page().Title)
	}
}

func TestSession_ReplaceBlocksRejectsEmpty(t *testing.T) {
	sess, _, _ := newTestSession(t)
	if sess.ReplaceBlocks(nil) {
		t.Error("expected empty replacement to be rejected")
	}
	blocks := []domain.Block{editor.NewBlock(domain.BlockTypeHeading1)}
	if !sess.ReplaceBlocks(blocks) {
		t.Error("expected non-empty replacement to succeed")
	}
}
