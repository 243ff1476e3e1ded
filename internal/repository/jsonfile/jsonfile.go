// Package jsonfile keeps the ledger in three JSON files inside one directory.
// Each save rewrites the files in place: a crash mid-write can leave a
// truncated file, and nothing stops two processes writing at once.
package jsonfile

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
)

type Store struct {
	dataDir string
}

// NewStore creates dataDir if needed and returns a store rooted there
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, errors.Wrapf(err, "create data directory %s", dataDir)
	}
	return &Store{dataDir: dataDir}, nil
}

var _ repository.Store = (*Store)(nil)

func (s *Store) Load(ctx context.Context) (*domain.Snapshot, error) {
	return repository.LoadSnapshot(ctx, s)
}

func (s *Store) SaveAll(ctx context.Context, snapshot *domain.Snapshot) error {
	return repository.SaveSnapshot(ctx, s, snapshot)
}

// Path returns the file backing collection c
func (s *Store) Path(c repository.Collection) string {
	return filepath.Join(s.dataDir, c.FileName())
}

func (s *Store) ReadDocument(ctx context.Context, c repository.Collection) ([]byte, error) {
	data, err := os.ReadFile(s.Path(c))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", s.Path(c))
	}
	return data, nil
}

func (s *Store) WriteDocument(ctx context.Context, c repository.Collection, payload []byte) error {
	if err := os.WriteFile(s.Path(c), payload, 0644); err != nil {
		return errors.Wrapf(err, "write %s", s.Path(c))
	}
	return nil
}
