package dbclient

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"dayflow/internal/domain"
)

// mysqlBackend implements Backend on MySQL.
type mysqlBackend struct {
	db *sql.DB
}

func newMySQLBackend(dsn string) (*mysqlBackend, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	b := &mysqlBackend{db: db}
	if err := b.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return b, nil
}

func (b *mysqlBackend) migrate() error {
	_, err := b.db.Exec(`CREATE TABLE IF NOT EXISTS pages (
		id VARCHAR(64) PRIMARY KEY,
		user_id VARCHAR(64) NOT NULL DEFAULT '',
		title TEXT NOT NULL,
		doc_json JSON NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_pages_user (user_id)
	)`)
	if err != nil {
		return fmt.Errorf("migrate mysql: %w", err)
	}
	return nil
}

func (b *mysqlBackend) Ping(ctx context.Context) error {
	return b.db.PingContext(ctx)
}

func (b *mysqlBackend) Close() error {
	return b.db.Close()
}

func (b *mysqlBackend) CreatePage(p *domain.Page) error {
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
		`INSERT INTO pages (id, user_id, title, doc_json, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.UserID, p.Title, string(doc), p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func (b *mysqlBackend) GetPage(id string) (*domain.Page, error) {
	var doc string
	err := b.db.QueryRow(`SELECT doc_json FROM pages WHERE id = ?`, id).Scan(&doc)
	if err != nil {
		return nil, fmt.Errorf("get page: %w", err)
	}
	var p domain.Page
	if err := json.Unmarshal([]byte(doc), &p); err != nil {
		return nil, fmt.Errorf("decode page: %w", err)
	}
	return &p, nil
}

func (b *mysqlBackend) ListPages(userID string) ([]domain.Page, error) {
	rows, err := b.db.Query(`SELECT doc_json FROM pages WHERE user_id = ? ORDER BY updated_at DESC`, userID)
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

func (b *mysqlBackend) UpdatePage(p *domain.Page) error {
	p.UpdatedAt = time.Now()
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal page: %w", err)
	}
	_, err = b.db.Exec(
		`UPDATE pages SET user_id = ?, title = ?, doc_json = ?, updated_at = ? WHERE id = ?`,
		p.UserID, p.Title, string(doc), p.UpdatedAt, p.ID,
	)
	return err
}

func (b *mysqlBackend) DeletePage(id string) error {
	_, err := b.db.Exec(`DELETE FROM pages WHERE id = ?`, id)
	return err
}
