package service

import (
	"encoding/json"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"dayflow/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Backup Service — periodic full-page snapshots on a cron schedule
// ─────────────────────────────────────────────────────────────

// BackupService snapshots every page of a user on a schedule. Snapshots
// are whole-page JSON documents, pruned per page by the backup store.
// Backup failures are logged and skipped; they never interrupt editing.
type BackupService struct {
	pages   domain.PageStore
	backups domain.BackupStore
	userID  string
	log     zerolog.Logger

	sched *cron.Cron
}

// NewBackupService creates a BackupService.
func NewBackupService(pages domain.PageStore, backups domain.BackupStore, userID string, log zerolog.Logger) *BackupService {
	return &BackupService{pages: pages, backups: backups, userID: userID, log: log}
}

// Start begins the schedule (cron spec, e.g. "@every 15m"). Restarting
// replaces the previous schedule.
func (s *BackupService) Start(spec string) error {
	s.Stop()
	s.sched = cron.New()
	if _, err := s.sched.AddFunc(spec, s.Run); err != nil {
		return fmt.Errorf("backup schedule %q: %w", spec, err)
	}
	s.sched.Start()
	return nil
}

// Stop halts the schedule.
func (s *BackupService) Stop() {
	if s.sched != nil {
		s.sched.Stop()
		s.sched = nil
	}
}

// Run snapshots every page once. Exposed for manual triggering.
func (s *BackupService) Run() {
	pages, err := s.pages.ListPages(s.userID)
	if err != nil {
		s.log.Error().Err(err).Msg("backup: list pages")
		return
	}
	for _, p := range pages {
		doc, err := json.Marshal(p)
		if err != nil {
			s.log.Error().Err(err).Str("pageId", p.ID).Msg("backup: marshal page")
			continue
		}
		if err := s.backups.CreateBackup(p.ID, string(doc)); err != nil {
			s.log.Error().Err(err).Str("pageId", p.ID).Msg("backup: store snapshot")
		}
	}
	s.log.Debug().Int("pages", len(pages)).Msg("backup pass complete")
}
