// Package storage provides the durable key-value layer used by the stores.
// Values are JSON-encoded documents under fixed namespace keys.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Fixed namespace keys. These match the keys the mobile app has always used,
// so an exported state file remains readable across ports.
const (
	KeyConversations = "glass-ai-conversations"
	KeySettings      = "glass-ai-settings"
)

// ErrNotFound is returned by Get when a key has never been written.
var ErrNotFound = errors.New("key not found")

// KV is a namespaced string-keyed store of JSON-encoded values.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

// GetJSON reads key and unmarshals it into v. It returns false with a nil
// error when the key is absent.
func GetJSON(ctx context.Context, kv KV, key string, v any) (bool, error) {
	data, err := kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return true, nil
}

// SetJSON marshals v and writes it under key.
func SetJSON(ctx context.Context, kv KV, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	return kv.Set(ctx, key, data)
}
