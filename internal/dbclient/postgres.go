package dbclient

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"dayflow/internal/domain"
)

// postgresBackend implements Backend on PostgreSQL.
type postgresBackend struct {
	db *sql.DB
}

func newPostgresBackend(dsn string) (*postgresBackend, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	b := &postgresBackend{db: db}
	if err := b.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return b, nil
}

func (b *postgresBackend) migrate() error {
	_, err := b.db.Exec(`CREATE TABLE IF NOT EXISTS pages (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL DEFAULT '',
		title TEXT NOT NULL DEFAULT 'Untitled',
		doc_json JSONB NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`)
	if err != nil {
		return fmt.Errorf("migrate postgres: %w", err)
	}
	_, err = b.db.Exec(`CREATE INDEX IF NOT EXISTS idx_pages_user ON pages(user_id)`)
	if err != nil {
		return fmt.Errorf("migrate postgres index: %w", err)
	}
	return nil
}

func (b *postgresBackend) Ping(ctx context.Context) error {
	return b.db.PingContext(ctx)
}

func (b *postgresBackend) Close() error {
	return b.db.Close()
}

func (b *postgresBackend) CreatePage(p *domain.Page) error {
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal page: %w", err)
	}
	_, err = b.db.Exec(
		`INSERT INTO pages (id, user_id, title, doc_json, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.UserID, p.Title, string(doc), p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func (b *postgresBackend) GetPage(id string) (*domain.Page, error) {
	var doc string
	err := b.db.QueryRow(`SELECT doc_json FROM pages WHERE id = $1`, id).Scan(&doc)
	if err != nil {
		return nil, fmt.Errorf("get page: %w", err)
	}
	var p domain.Page
	if err := json.Unmarshal([]byte(doc), &p); err != nil {
		return nil, fmt.Errorf("decode page: %w", err)
	}
	return &p, nil
}

func (b *postgresBackend) ListPages(userID string) ([]domain.Page, error) {
	rows, err := b.db.Query(`SELECT doc_json FROM pages WHERE user_id = $1 ORDER BY updated_at DESC`, userID)
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

func (b *postgresBackend) UpdatePage(p *domain.Page) error {
	p.UpdatedAt = time.Now()
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal page: %w", err)
	}
	_, err = b.db.Exec(
		`UPDATE pages SET user_id = $1, title = $2, doc_json = $3, updated_at = $4 WHERE id = $5`,
		p.UserID, p.Title, string(doc), p.UpdatedAt, p.ID,
	)
	return err
}

func (b *postgresBackend) DeletePage(id string) error {
	_, err := b.db.Exec(`DELETE FROM pages WHERE id = $1`, id)
	return err
}
