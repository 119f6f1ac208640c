// Package store keeps the command collection, the copy log and the theme
// preference in memory and writes each one back as a single blob after
// every change.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Keys under which each collection is persisted.
const (
	CommandsKey = "commands"
	CopyLogsKey = "copyLogs"
	ThemeKey    = "theme"
)

var ErrNotFound = errors.New("not found")

// Backend reads and replaces whole blobs. Get returns nil for a key that has
// never been written.
type Backend interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
}

// Clock returns the current time. Tests swap it for a fixed sequence.
type Clock func() time.Time

// IDFunc returns a fresh unique identifier.
type IDFunc func() string

func defaultID() string {
	return uuid.NewString()
}

func loadJSON(b Backend, key string, v any) error {
	data, err := b.Get(key)
	if err != nil {
		return fmt.Errorf("read %s: %w", key, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func saveJSON(b Backend, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := b.Put(key, data); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
