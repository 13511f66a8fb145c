package service_test

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"dayflow/internal/domain"
	"dayflow/internal/service"
)

// ─────────────────────────────────────────────────────────────
// BackupService tests
// ─────────────────────────────────────────────────────────────

// memBackups is an in-memory BackupStore double.
type memBackups struct {
	mu        sync.Mutex
	snapshots map[string][]domain.Backup
}

func newMemBackups() *memBackups {
	return &memBackups{snapshots: make(map[string][]domain.Backup)}
}

func (s *memBackups) CreateBackup(pageID, snapshotJSON string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[pageID] = append(s.snapshots[pageID], domain.Backup{
		PageID:       pageID,
		SnapshotJSON: snapshotJSON,
	})
	return nil
}

func (s *memBackups) ListBackups(pageID string) ([]domain.Backup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Backup(nil), s.snapshots[pageID]...), nil
}

func TestBackupService_RunSnapshotsEveryPage(t *testing.T) {
	store := newMemStore()
	backups := newMemBackups()
	svc := service.NewPageService(store, &service.MockEmitter{})

	p1, _ := svc.CreatePage("u1", "one")
	p2, _ := svc.CreatePage("u1", "two")
	svc.CreatePage("other-user", "not mine")

	bs := service.NewBackupService(store, backups, "u1", zerolog.Nop())
	bs.Run()

	for _, p := range []*domain.Page{p1, p2} {
		got, _ := backups.ListBackups(p.ID)
		if len(got) != 1 {
			t.Fatalf("page %s: expected 1 snapshot, got %d", p.Title, len(got))
		}
		var decoded domain.Page
		if err := json.Unmarshal([]byte(got[0].SnapshotJSON), &decoded); err != nil {
			t.Fatalf("snapshot is not a page document: %v", err)
		}
		if decoded.Title != p.Title {
			t.Errorf("expected snapshot of %q, got %q", p.Title, decoded.Title)
		}
	}
}

func TestBackupService_StartRejectsBadSpec(t *testing.T) {
	bs := service.NewBackupService(newMemStore(), newMemBackups(), "u1", zerolog.Nop())
	if err := bs.Start("not a cron spec"); err == nil {
		t.Fatal("expected an invalid cron spec to be rejected")
	}
	if err := bs.Start("@every 1h"); err != nil {
		t.Fatalf("expected a valid spec to start: %v", err)
	}
	bs.Stop()
}
