package storage

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"dayflow/internal/domain"
)

// BackupStore persists periodic full-page snapshots in SQLite.
type BackupStore struct {
	db       *DB
	maxPerPg int
}

// NewBackupStore creates a BackupStore keeping at most maxPerPage
// snapshots per page (oldest pruned first).
func NewBackupStore(db *DB, maxPerPage int) *BackupStore {
	if maxPerPage <= 0 {
		maxPerPage = 20
	}
	return &BackupStore{db: db, maxPerPg: maxPerPage}
}

func (s *BackupStore) CreateBackup(pageID string, snapshotJSON string) error {
	_, err := s.db.Conn().Exec(
		`INSERT INTO backups (id, page_id, snapshot_json, created_at) VALUES (?, ?, ?, ?)`,
		uuid.New().String(), pageID, snapshotJSON, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("insert backup: %w", err)
	}
	s.pruneIfNeeded(pageID)
	return nil
}

func (s *BackupStore) ListBackups(pageID string) ([]domain.Backup, error) {
	rows, err := s.db.Conn().Query(
		`SELECT id, page_id, snapshot_json, created_at FROM backups
		 WHERE page_id = ? ORDER BY created_at DESC`, pageID,
	)
	if err != nil {
		return nil, fmt.Errorf("list backups: %w", err)
	}
	defer rows.Close()

	var backups []domain.Backup
	for rows.Next() {
		var b domain.Backup
		if err := rows.Scan(&b.ID, &b.PageID, &b.SnapshotJSON, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan backup: %w", err)
		}
		backups = append(backups, b)
	}
	return backups, rows.Err()
}

// pruneIfNeeded removes the oldest snapshots when the per-page count
// exceeds the limit.
func (s *BackupStore) pruneIfNeeded(pageID string) {
	var count int
	s.db.Conn().QueryRow(`SELECT COUNT(*) FROM backups WHERE page_id = ?`, pageID).Scan(&count)
	if count <= s.maxPerPg {
		return
	}
	s.db.Conn().Exec(
		`DELETE FROM backups WHERE id IN (
			SELECT id FROM backups WHERE page_id = ?
			ORDER BY created_at ASC LIMIT ?
		)`, pageID, count-s.maxPerPg,
	)
}
