package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog"

	"dayflow/internal/config"
	"dayflow/internal/dbclient"
	"dayflow/internal/domain"
	"dayflow/internal/editor"
	"dayflow/internal/markdown"
	mcpserver "dayflow/internal/mcp"
	"dayflow/internal/service"
	"dayflow/internal/storage"
	"dayflow/internal/vault"
)

func main() {
	// MCP speaks JSON-RPC on stdout, so all logging goes to stderr.
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	var (
		pageStore domain.PageStore
		backups   *service.BackupService
	)

	emitter := service.NoopEmitter{}

	switch cfg.StorageDriver {
	case "sqlite":
		db, err := storage.New(filepath.Join(cfg.DataDir, "dayflow.db"), cfg.DataDir)
		if err != nil {
			return err
		}
		defer db.Close()
		pageStore = storage.NewPageStore(db)
		backupStore := storage.NewBackupStore(db, cfg.BackupKeep)
		backups = service.NewBackupService(pageStore, backupStore, cfg.UserID, log)
	default:
		backend, err := dbclient.Open(cfg.StorageDriver, cfg.StorageDSN)
		if err != nil {
			return err
		}
		defer backend.Close()
		if err := backend.Ping(ctx); err != nil {
			return err
		}
		pageStore = backend
	}

	session := editor.NewSession(ctx, pageStore, emitter, cfg.AutosaveDelay, log)
	pages := service.NewPageService(pageStore, emitter)
	uploads := service.NewUploadService(cfg.DataDir)
	importer := markdown.NewImporter()

	// External edits to exported files flow back into the open session.
	bridge, err := vault.New(func(pageID string, content []byte) {
		if pageID != session.PageID() {
			return
		}
		title, blocks := importer.Import(content)
		if session.ReplaceBlocks(blocks) {
			log.Info().Str("pageId", pageID).Msg("vault: page refreshed from disk")
		}
		if title != "" {
			session.SetTitle(title)
		}
	}, log)
	if err != nil {
		return err
	}
	defer bridge.Close()

	if backups != nil && cfg.BackupCron != "" {
		if err := backups.Start(cfg.BackupCron); err != nil {
			return err
		}
		defer backups.Stop()
	}

	srv := mcpserver.New(mcpserver.Deps{
		Emitter:   emitter,
		Pages:     pages,
		Session:   session,
		Uploads:   uploads,
		Backups:   backups,
		Bridge:    bridge,
		ExportDir: filepath.Join(cfg.DataDir, "vault"),
		UserID:    cfg.UserID,
		Log:       log,
	})

	// Flush any pending autosave on shutdown.
	go func() {
		<-ctx.Done()
		if session.Dirty() {
			if err := session.Save(); err != nil {
				log.Error().Err(err).Msg("final save failed")
			}
		}
	}()

	log.Info().
		Str("driver", cfg.StorageDriver).
		Str("dataDir", cfg.DataDir).
		Msg("dayflow starting")

	return srv.ServeStdio()
}
