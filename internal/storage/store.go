// Package storage persists the roulette state as independently-keyed JSON
// values. The SQLite store is the durable backend; the memory store serves
// tests and degraded mode when the database cannot be opened.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("storage: not found")

// Keys for the persisted values. Each holds one JSON document.
const (
	KeyTasks      = "tasks"       // []string, insertion order
	KeyHistory    = "history"     // []string, most-recent-first
	KeyCredits    = "credits"     // int
	KeyStreak     = "streak"      // int
	KeyActiveTask = "active_task" // string, pending revealed winner
)

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

func PutJSON(ctx context.Context, s Store, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Set(ctx, key, raw)
}

// GetJSON decodes the value at key into out. A missing key returns
// ErrNotFound with out untouched, so callers can fall back to defaults.
func GetJSON(ctx context.Context, s Store, key string, out any) error {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}
