package db

import (
	"fmt"

	"snipbox/config"
)

// Store is what every backend provides.
type Store interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Close() error
}

// Open returns the backend selected by cfg.Backend.
func Open(cfg *config.Config) (Store, error) {
	var (
		s   Store
		err error
	)
	switch cfg.Backend {
	case config.BackendSQLite:
		s, err = New(cfg.DatabasePath())
	case config.BackendDisk:
		s, err = NewDisk(cfg.DiskPath())
	case config.BackendMemory:
		s = NewMemory()
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}
