package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"dayflow/internal/domain"
	"dayflow/internal/editor"
)

// ─────────────────────────────────────────────────────────────
// Page Service — business logic for pages
// ─────────────────────────────────────────────────────────────

// PageService manages page CRUD around the editing engine.
type PageService struct {
	store   domain.PageStore
	emitter EventEmitter
}

// NewPageService creates a PageService.
func NewPageService(store domain.PageStore, emitter EventEmitter) *PageService {
	return &PageService{store: store, emitter: emitter}
}

// ListPages returns all pages of a user, newest first.
func (s *PageService) ListPages(userID string) ([]domain.Page, error) {
	return s.store.ListPages(userID)
}

// GetPage returns a page by id.
func (s *PageService) GetPage(id string) (*domain.Page, error) {
	return s.store.GetPage(id)
}

// CreatePage creates and persists a fresh default page (one empty
// paragraph block). An empty title falls back to "Untitled".
func (s *PageService) CreatePage(userID, title string) (*domain.Page, error) {
	p := editor.NewDefaultPage(userID)
	if title != "" {
		p.Title = title
	}
	if err := s.store.CreatePage(&p); err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}
	return &p, nil
}

// DeletePage removes a page.
func (s *PageService) DeletePage(id string) error {
	return s.store.DeletePage(id)
}

// PageStats is the word/character count of a page's plain-text projection.
type PageStats struct {
	Blocks int `json:"blocks"`
	Words  int `json:"words"`
	Chars  int `json:"chars"`
}

// Stats counts blocks, words, and characters over the plain-text
// projection of every block (toggle children included).
func (s *PageService) Stats(p domain.Page) PageStats {
	stats := PageStats{Blocks: len(p.Blocks)}
	var count func(blocks []domain.Block)
	count = func(blocks []domain.Block) {
		for _, b := range blocks {
			text := editor.ExtractPlainText(b)
			stats.Words += len(strings.Fields(text))
			stats.Chars += utf8.RuneCountInString(text)
			count(b.Children)
		}
	}
	count(p.Blocks)
	return stats
}
