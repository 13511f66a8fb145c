package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"dayflow/internal/domain"
)

// PageStore implements domain.PageStore using SQLite. The whole page —
// blocks, metadata, links — is stored as one JSON document per row; the
// domain shapes are the serialization contract. UPDATE by primary key is
// last-write-wins, which is the behavior the autosave scheduler requires
// when a manual save races a debounced one.
type PageStore struct {
	db *DB
}

func NewPageStore(db *DB) *PageStore {
	return &PageStore{db: db}
}

func (s *PageStore) CreatePage(p *domain.Page) error {
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal page: %w", err)
	}
	_, err = s.db.Conn().Exec(
		`INSERT INTO pages (id, user_id, title, doc_json, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.UserID, p.Title, string(doc), p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func (s *PageStore) GetPage(id string) (*domain.Page, error) {
	var doc string
	err := s.db.Conn().QueryRow(
		`SELECT doc_json FROM pages WHERE id = ?`, id,
	).Scan(&doc)
	if err != nil {
		return nil, fmt.Errorf("get page: %w", err)
	}
	var p domain.Page
	if err := json.Unmarshal([]byte(doc), &p); err != nil {
		return nil, fmt.Errorf("decode page: %w", err)
	}
	return &p, nil
}

func (s *PageStore) ListPages(userID string) ([]domain.Page, error) {
	rows, err := s.db.Conn().Query(
		`SELECT doc_json FROM pages WHERE user_id = ? ORDER BY updated_at DESC`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []domain.Page
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var p domain.Page
		if err := json.Unmarshal([]byte(doc), &p); err != nil {
			return nil, fmt.Errorf("decode page: %w", err)
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

func (s *PageStore) UpdatePage(p *domain.Page) error {
	p.UpdatedAt = time.Now()
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal page: %w", err)
	}
	_, err = s.db.Conn().Exec(
		`UPDATE pages SET user_id = ?, title = ?, doc_json = ?, updated_at = ? WHERE id = ?`,
		p.UserID, p.Title, string(doc), p.UpdatedAt, p.ID,
	)
	return err
}

func (s *PageStore) DeletePage(id string) error {
	_, _ = s.db.Conn().Exec(`DELETE FROM backups WHERE page_id = ?`, id)
	_, err := s.db.Conn().Exec(`DELETE FROM pages WHERE id = ?`, id)
	return err
}
