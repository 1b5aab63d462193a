package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/vytor/wordflash/internal/logger"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

type Config struct {
	Addr                  string
	DataDir               string
	StorageBackend        string
	ProgressPath          string
	DBPath                string
	LastDeckPath          string
	DefaultDeckPath       string
	LogLevel              string
	LearnCount            int
	ReviewCount           int
	TestCount             int
	ImportWorkerCount     int
	ImportQueueSize       int
	BackupIntervalMinutes int
	BackupKeep            int
}

// Paths lists every file the application persists to.
type Paths struct {
	Progress    string
	Database    string
	LastDeck    string
	DefaultDeck string
	Backups     string
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	dataDir := envOr("DATA_DIR", "data")
	return Config{
		Addr:                  envOr("ADDR", ":8080"),
		DataDir:               dataDir,
		StorageBackend:        strings.ToLower(envOr("STORAGE_BACKEND", BackendFile)),
		ProgressPath:          envOr("PROGRESS_PATH", filepath.Join(dataDir, "progress.json")),
		DBPath:                envOr("DB_PATH", filepath.Join(dataDir, "wordflash.db")),
		LastDeckPath:          envOr("LAST_DECK_PATH", filepath.Join(dataDir, "last_words")),
		DefaultDeckPath:       os.Getenv("DEFAULT_DECK_PATH"),
		LogLevel:              envOr("LOG_LEVEL", "INFO"),
		LearnCount:            envIntOr("LEARN_COUNT", 10),
		ReviewCount:           envIntOr("REVIEW_COUNT", 15),
		TestCount:             envIntOr("TEST_COUNT", 20),
		ImportWorkerCount:     envIntOr("IMPORT_WORKER_COUNT", 1),
		ImportQueueSize:       envIntOr("IMPORT_QUEUE_SIZE", 8),
		BackupIntervalMinutes: envIntOr("BACKUP_INTERVAL_MINUTES", 0),
		BackupKeep:            envIntOr("BACKUP_KEEP", 5),
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, errors.New("ADDR cannot be empty"))
	}
	if strings.TrimSpace(c.DataDir) == "" {
		errs = append(errs, errors.New("DATA_DIR cannot be empty"))
	}

	switch c.StorageBackend {
	case BackendFile:
		if strings.TrimSpace(c.ProgressPath) == "" {
			errs = append(errs, errors.New("PROGRESS_PATH cannot be empty"))
		}
	case BackendSQLite:
		if strings.TrimSpace(c.DBPath) == "" {
			errs = append(errs, errors.New("DB_PATH cannot be empty"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORAGE_BACKEND must be %q or %q, got %q", BackendFile, BackendSQLite, c.StorageBackend))
	}

	if _, ok := logger.LookupLevel(c.LogLevel); !ok {
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR, got %q", c.LogLevel))
	}

	positive := []struct {
		name  string
		value int
	}{
		{"LEARN_COUNT", c.LearnCount},
		{"REVIEW_COUNT", c.ReviewCount},
		{"TEST_COUNT", c.TestCount},
		{"IMPORT_WORKER_COUNT", c.ImportWorkerCount},
		{"IMPORT_QUEUE_SIZE", c.ImportQueueSize},
	}
	for _, p := range positive {
		if p.value <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", p.name, p.value))
		}
	}

	if c.BackupIntervalMinutes < 0 {
		errs = append(errs, fmt.Errorf("BACKUP_INTERVAL_MINUTES cannot be negative, got %d", c.BackupIntervalMinutes))
	}
	if c.BackupKeep < 0 {
		errs = append(errs, fmt.Errorf("BACKUP_KEEP cannot be negative, got %d", c.BackupKeep))
	}

	return errors.Join(errs...)
}

// Paths derives the persistence locations from the configuration.
func (c Config) Paths() Paths {
	return Paths{
		Progress:    c.ProgressPath,
		Database:    c.DBPath,
		LastDeck:    c.LastDeckPath,
		DefaultDeck: c.DefaultDeckPath,
		Backups:     filepath.Join(c.DataDir, "backups"),
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
