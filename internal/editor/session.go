package editor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"dayflow/internal/domain"
)

// EventEmitter is the slice of the app event bus the session needs.
// The service package provides the implementations (including a mock).
type EventEmitter interface {
	Emit(ctx context.Context, event string, data any)
}

// ─────────────────────────────────────────────────────────────
// Session — one editing session over one page
// ─────────────────────────────────────────────────────────────

// Session owns the live page of a single editor. All mutations run on a
// deep clone of the current page and are atomic from the caller's
// perspective; successful ones are threaded through history, mark the
// document dirty and rearm the autosave timer. The page and its history
// stacks belong exclusively to this session — multi-writer collaboration
// is not supported.
type Session struct {
	ctx      context.Context
	store    domain.PageStore
	emitter  EventEmitter
	log      zerolog.Logger
	history  *History
	autosave *Autosave

	mu   sync.Mutex
	page domain.Page
}

// NewSession creates a session with an empty page loaded. Use Load or
// LoadNew before editing.
func NewSession(ctx context.Context, store domain.PageStore, emitter EventEmitter, autosaveDelay time.Duration, log zerolog.Logger) *Session {
	s := &Session{
		ctx:     ctx,
		store:   store,
		emitter: emitter,
		log:     log,
		history: NewHistory(DefaultHistoryLimit),
	}
	s.autosave = NewAutosave(autosaveDelay, s.persist, s.Page, log)
	return s
}

// NewDefaultPage creates a fresh page: default title, one empty paragraph.
func NewDefaultPage(userID string) domain.Page {
	now := time.Now()
	return domain.Page{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     "Untitled",
		Tags:      []string{},
		Blocks:    []domain.Block{NewBlock(domain.BlockTypeParagraph)},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Load hydrates the session from the store. Any pending autosave timer and
// the dirty flag are discarded and history starts empty.
func (s *Session) Load(pageID string) error {
	page, err := s.store.GetPage(pageID)
	if err != nil {
		return fmt.Errorf("load page: %w", err)
	}
	s.reset(*page)
	return nil
}

// LoadNew starts the session on a fresh default page and persists it.
func (s *Session) LoadNew(userID string) (domain.Page, error) {
	page := NewDefaultPage(userID)
	if err := s.store.CreatePage(&page); err != nil {
		return domain.Page{}, fmt.Errorf("create page: %w", err)
	}
	s.reset(page)
	return page.Clone(), nil
}

func (s *Session) reset(page domain.Page) {
	s.autosave.Cancel()
	s.history.Reset()
	s.mu.Lock()
	s.page = page
	s.mu.Unlock()
	s.emitter.Emit(s.ctx, "page:opened", map[string]string{"pageId": page.ID})
}

// Page returns a deep copy of the current page.
func (s *Session) Page() domain.Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page.Clone()
}

// PageID returns the id of the open page, or "" when none is loaded.
func (s *Session) PageID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page.ID
}

// Apply runs a mutation against a clone of the current page. When the
// mutation reports a change, the previous page is pushed into history, the
// clone becomes current, the dirty flag is set and the autosave timer is
// rearmed. Guarded no-ops leave everything untouched.
func (s *Session) Apply(label string, fn func(p *domain.Page) bool) bool {
	s.mu.Lock()
	next := s.page.Clone()
	if !fn(&next) {
		s.mu.Unlock()
		return false
	}
	prev := s.page
	s.page = next
	s.mu.Unlock()

	s.history.Push(prev)
	s.autosave.Arm()
	s.emitter.Emit(s.ctx, "page:changed", map[string]string{"pageId": next.ID, "op": label})
	return true
}

// ── Typed operation wrappers ──────────────────────────────

// AddBlock inserts a new block after afterID and returns its id.
func (s *Session) AddBlock(afterID string, t domain.BlockType) string {
	return s.AddBlockWithText(afterID, t, "")
}

// AddBlockWithText inserts a new block and fills its text field in the
// same history step, so the pair undoes as one edit.
func (s *Session) AddBlockWithText(afterID string, t domain.BlockType, text string) (newID string) {
	s.Apply("addBlock", func(p *domain.Page) bool {
		newID = AddBlock(p, afterID, t)
		if text != "" {
			SetBlockText(p, newID, text)
		}
		return true
	})
	return newID
}

// UpdateBlock merges a partial payload into one block.
func (s *Session) UpdateBlock(id string, patch BlockPatch) bool {
	return s.Apply("updateBlock", func(p *domain.Page) bool {
		return UpdateBlock(p, id, patch)
	})
}

// DeleteBlock removes a block and returns the id that should take focus.
func (s *Session) DeleteBlock(id string) (focusID string, ok bool) {
	s.Apply("deleteBlock", func(p *domain.Page) bool {
		focusID, ok = DeleteBlock(p, id)
		return ok
	})
	return focusID, ok
}

// DuplicateBlock clones a block in place and returns the copy's id.
func (s *Session) DuplicateBlock(id string) (dupID string, ok bool) {
	s.Apply("duplicateBlock", func(p *domain.Page) bool {
		dupID, ok = DuplicateBlock(p, id)
		return ok
	})
	return dupID, ok
}

// MoveBlock swaps a block with its neighbor ("up" or "down").
func (s *Session) MoveBlock(id, direction string) bool {
	return s.Apply("moveBlock", func(p *domain.Page) bool {
		return MoveBlock(p, id, direction)
	})
}

// Reorder moves the block at fromIndex to toIndex (drag completion).
func (s *Session) Reorder(fromIndex, toIndex int) bool {
	return s.Apply("reorder", func(p *domain.Page) bool {
		return Reorder(p, fromIndex, toIndex)
	})
}

// Transform converts a block to another variant, preserving identity and
// plain text.
func (s *Session) Transform(id string, newType domain.BlockType) bool {
	return s.Apply("transform", func(p *domain.Page) bool {
		return TransformBlock(p, id, newType)
	})
}

// SetTitle renames the page.
func (s *Session) SetTitle(title string) bool {
	return s.Apply("setTitle", func(p *domain.Page) bool {
		if p.Title == title {
			return false
		}
		p.Title = title
		return true
	})
}

// ReplaceBlocks swaps the whole block sequence, e.g. after a vault
// re-import. An empty sequence is rejected to keep the page non-empty.
func (s *Session) ReplaceBlocks(blocks []domain.Block) bool {
	if len(blocks) == 0 {
		return false
	}
	return s.Apply("replaceBlocks", func(p *domain.Page) bool {
		p.Blocks = blocks
		p.UpdatedAt = time.Now()
		return true
	})
}

// ── History ───────────────────────────────────────────────

// Undo steps back one snapshot. Interaction state (focus, open menus) is
// not part of snapshots and is unaffected.
func (s *Session) Undo() bool {
	s.mu.Lock()
	prev, ok := s.history.Undo(s.page)
	if ok {
		s.page = prev
	}
	s.mu.Unlock()
	if !ok {
		return false
	}
	s.autosave.Arm()
	s.emitter.Emit(s.ctx, "page:changed", map[string]string{"pageId": prev.ID, "op": "undo"})
	return true
}

// Redo steps forward one snapshot.
func (s *Session) Redo() bool {
	s.mu.Lock()
	next, ok := s.history.Redo(s.page)
	if ok {
		s.page = next
	}
	s.mu.Unlock()
	if !ok {
		return false
	}
	s.autosave.Arm()
	s.emitter.Emit(s.ctx, "page:changed", map[string]string{"pageId": next.ID, "op": "redo"})
	return true
}

// CanUndo reports whether an undo is possible.
func (s *Session) CanUndo() bool { return s.history.CanUndo() }

// CanRedo reports whether a redo is possible.
func (s *Session) CanRedo() bool { return s.history.CanRedo() }

// ── Persistence ───────────────────────────────────────────

// Save cancels any pending autosave timer and saves immediately.
func (s *Session) Save() error {
	return s.autosave.Flush()
}

// Dirty reports whether there are unsaved changes.
func (s *Session) Dirty() bool {
	return s.autosave.Dirty()
}

func (s *Session) persist(page domain.Page) error {
	if err := s.store.UpdatePage(&page); err != nil {
		return err
	}
	s.emitter.Emit(s.ctx, "page:saved", map[string]string{"pageId": page.ID})
	return nil
}
