// Package config loads prizegrid settings from the environment and builds
// the logger and storage they describe.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"
	"github.com/they4kman/prizegrid/storage"
	"github.com/they4kman/prizegrid/storage/bolt"
	"github.com/they4kman/prizegrid/storage/file"
	"github.com/they4kman/prizegrid/storage/memory"
	"github.com/they4kman/prizegrid/storage/sqlite"
)

// Storage backends
const (
	StorageFile   = "file"
	StorageSQLite = "sqlite"
	StorageBolt   = "bolt"
	StorageMemory = "memory"
)

type Config struct {
	Storage string `env:"PRIZEGRID_STORAGE" envDefault:"file"`
	// Data directory for every on-disk backend
	Path string `env:"PRIZEGRID_PATH" envDefault:"prizegrid-data"`

	// Overrides the saved language when set
	Locale string `env:"PRIZEGRID_LOCALE"`
	// Zero draws a fresh seed
	Seed int64 `env:"PRIZEGRID_SEED"`

	LogLevel  string `env:"PRIZEGRID_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"PRIZEGRID_LOG_FORMAT" envDefault:"text"`

	Addr string `env:"PRIZEGRID_ADDR" envDefault:"127.0.0.1:8080"`
}

// Parse loads configuration from environment variables.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Logger builds a logrus logger writing to out at the configured level.
func (cfg Config) Logger(out io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	log := logrus.New()
	log.SetOutput(out)
	log.SetLevel(level)

	switch strings.ToLower(strings.TrimSpace(cfg.LogFormat)) {
	case "", "text":
		log.SetFormatter(&logrus.TextFormatter{})
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.LogFormat)
	}

	return log, nil
}

// OpenSlot opens the configured storage backend. The returned closer must be
// closed once the slot is no longer used.
func (cfg Config) OpenSlot() (storage.Slot, io.Closer, error) {
	kind := strings.ToLower(strings.TrimSpace(cfg.Storage))
	if kind == StorageMemory {
		store := memory.New()
		return store, store, nil
	}

	if strings.TrimSpace(cfg.Path) == "" {
		return nil, nil, fmt.Errorf("storage path is required")
	}

	switch kind {
	case StorageFile:
		store, err := file.Open(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	case StorageSQLite:
		if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create storage dir: %w", err)
		}
		store, err := sqlite.Open(filepath.Join(cfg.Path, "prizegrid.db"))
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	case StorageBolt:
		if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create storage dir: %w", err)
		}
		store, err := bolt.Open(filepath.Join(cfg.Path, "prizegrid.bolt"))
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}
}
