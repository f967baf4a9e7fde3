package service

import (
	"github.com/David-Van-Dyne/pickup-scheduler/models"
)

// ConfigService serves the business configuration used by appointment validation
type ConfigService struct {
	repo ConfigRepositoryInterface
}

// NewConfigService creates a new config service
func NewConfigService(repo ConfigRepositoryInterface) *ConfigService {
	return &ConfigService{repo: repo}
}

// Get returns the current business configuration, creating the default on first read
func (s *ConfigService) Get() (*models.BusinessConfig, error) {
	return s.repo.Load()
}
