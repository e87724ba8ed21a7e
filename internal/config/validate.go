package config

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownStoreDriver = errors.New("unknown STORE_DRIVER")
	ErrMissingDBHost      = errors.New("DB_HOST is required for the postgres store")
	ErrMissingStoreFile   = errors.New("STORE_FILE is required for the file store")
	ErrMissingCatalog     = errors.New("CATALOG_URL or CATALOG_FILE must be set")
)

// Validate reports configuration combinations the server cannot start with.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StoreMemory, StoreRedis:
	case StoreFile:
		if c.StoreFile == "" {
			return ErrMissingStoreFile
		}
	case StorePostgres:
		if c.DBHost == "" {
			return ErrMissingDBHost
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStoreDriver, c.StoreDriver)
	}

	if c.CatalogURL == "" && c.CatalogFile == "" {
		return ErrMissingCatalog
	}

	return nil
}
