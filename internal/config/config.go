package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	DataDir       string        // uploads, vault exports, sqlite file
	StorageDriver string        // sqlite | postgres | mysql | mongo
	StorageDSN    string        // ignored for sqlite
	UserID        string        // owner of this workspace
	AutosaveDelay time.Duration // debounce quiet period
	BackupCron    string        // cron spec, "" disables backups
	BackupKeep    int           // snapshots kept per page
}

// Load reads configuration from environment variables, applying defaults
// for everything. A .env file in the working directory is loaded first;
// variables already set in the environment take precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	homeDir, _ := os.UserHomeDir()
	defaultData := filepath.Join(homeDir, ".local", "share", "dayflow")

	cfg := &Config{
		DataDir:       getEnv("DAYFLOW_DATA_DIR", defaultData),
		StorageDriver: getEnv("DAYFLOW_STORAGE_DRIVER", "sqlite"),
		StorageDSN:    getEnv("DAYFLOW_STORAGE_DSN", ""),
		UserID:        getEnv("DAYFLOW_USER_ID", "local"),
		BackupCron:    getEnv("DAYFLOW_BACKUP_CRON", "@every 15m"),
	}

	delayMS, err := getEnvInt("DAYFLOW_AUTOSAVE_MS", 2000)
	if err != nil {
		return nil, err
	}
	cfg.AutosaveDelay = time.Duration(delayMS) * time.Millisecond

	cfg.BackupKeep, err = getEnvInt("DAYFLOW_BACKUP_KEEP", 20)
	if err != nil {
		return nil, err
	}

	switch cfg.StorageDriver {
	case "sqlite":
	case "postgres", "mysql", "mongo":
		if cfg.StorageDSN == "" {
			return nil, fmt.Errorf("DAYFLOW_STORAGE_DSN is required for driver %s", cfg.StorageDriver)
		}
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", cfg.StorageDriver)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
