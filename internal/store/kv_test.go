package store

import (
	"context"
	"errors"

	"github.com/diogo/glassai/internal/storage"
)

// failingKV rejects every write, for exercising the
// persistence-failure-is-not-fatal contract.
type failingKV struct{}

var errDiskFull = errors.New("disk full")

func (failingKV) Get(context.Context, string) ([]byte, error) {
	return nil, storage.ErrNotFound
}

func (failingKV) Set(context.Context, string, []byte) error {
	return errDiskFull
}

func (failingKV) Remove(context.Context, string) error {
	return errDiskFull
}

func (failingKV) Clear(context.Context) error {
	return errDiskFull
}
