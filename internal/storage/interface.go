package storage

import (
	"context"
	"fmt"

	"github.com/brandscope/visibility-bot/internal/config"
)

// Interface defines the contract for result storage backends
type Interface interface {
	Store(ctx context.Context, name string, data []byte) error
	Retrieve(ctx context.Context, name string) ([]byte, error)
	List(ctx context.Context, prefix string) ([]string, error)
	Delete(ctx context.Context, name string) error
}

// New builds the storage backend selected by STORAGE_BACKEND
func New(cfg *config.Config) (Interface, error) {
	switch cfg.StorageBackend {
	case "azure":
		return NewAzureStorage(cfg.StorageAccount, cfg.StorageContainer)
	case "local":
		return NewLocalStorage(cfg.LocalStorageDir)
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", cfg.StorageBackend)
	}
}
