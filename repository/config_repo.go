package repository

import (
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/David-Van-Dyne/pickup-scheduler/errors"
	"github.com/David-Van-Dyne/pickup-scheduler/models"
)

// ConfigRepository handles the singleton business configuration file
type ConfigRepository struct {
	mu   sync.Mutex
	path string
}

// NewConfigRepository creates a new repository backed by dataDir/config.json
func NewConfigRepository(dataDir string) *ConfigRepository {
	return &ConfigRepository{path: filepath.Join(dataDir, configFile)}
}

// Load returns the persisted business configuration. A missing or unreadable
// file yields the default configuration, which is written back so the admin
// has a file to edit.
func (r *ConfigRepository) Load() (*models.BusinessConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var cfg models.BusinessConfig
	if readJSONFile(r.path, &cfg) {
		return &cfg, nil
	}

	defaults := models.DefaultBusinessConfig()
	if err := writeJSONFile(r.path, defaults); err != nil {
		// Defaults still serve the request even if the write fails.
		slog.Error("Failed to write default business config", "path", r.path, "error", err)
	}
	return defaults, nil
}

// Save rewrites the business configuration file
func (r *ConfigRepository) Save(cfg *models.BusinessConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := writeJSONFile(r.path, cfg); err != nil {
		slog.Error("Failed to write business config", "path", r.path, "error", err)
		return errors.NewStorageError("failed to persist business config", err)
	}
	return nil
}
