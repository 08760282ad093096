package ports

import "go.trai.ch/twin/internal/core/domain"

// ConfigLoader defines the interface for loading the override file.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load parses the override file at path and resolves any recipe it extends.
	Load(path string) (domain.CacheConfig, error)
}
