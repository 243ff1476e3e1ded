package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository"

	_ "github.com/lib/pq"
)

// Schema creates the table holding one JSON document per collection.
const Schema = `CREATE TABLE IF NOT EXISTS ledger_collections (
	name       TEXT PRIMARY KEY,
	payload    JSONB NOT NULL,
	updated_on TIMESTAMPTZ NOT NULL
)`

// Store keeps each collection as a single JSON document, so a save replaces
// the whole collection exactly like the file store does.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

var _ repository.Store = (*Store)(nil)

// Migrate creates the collections table if it does not exist
func (s *Store) Migrate(ctx context.Context) error {
	logger.DatabaseCall("migrate", Schema)
	_, err := s.db.ExecContext(ctx, Schema)
	logger.DatabaseResult("migrate", 0, err)
	return errors.Wrap(err, "migrate ledger_collections")
}

func (s *Store) Load(ctx context.Context) (*domain.Snapshot, error) {
	return repository.LoadSnapshot(ctx, s)
}

// SaveAll writes the three collections inside one transaction.
func (s *Store) SaveAll(ctx context.Context, snapshot *domain.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.DatabaseError("Failed to begin save transaction", errors.Wrap(err, "begin"))
	}
	if err := repository.SaveSnapshot(ctx, txWriter{tx: tx}, snapshot); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error("Failed to roll back save transaction", "error", rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return domain.DatabaseError("Failed to commit save transaction", errors.Wrap(err, "commit"))
	}
	return nil
}

func (s *Store) ReadDocument(ctx context.Context, c repository.Collection) ([]byte, error) {
	query := `SELECT payload FROM ledger_collections WHERE name = $1`
	logger.DatabaseCall("select", query, "collection", c)

	var payload []byte
	err := s.db.QueryRowContext(ctx, query, string(c)).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		logger.DatabaseResult("select", 0, nil, "collection", c)
		return nil, nil
	}
	logger.DatabaseResult("select", 1, err, "collection", c)
	if err != nil {
		return nil, errors.Wrapf(err, "select %s", c)
	}
	return payload, nil
}

type txWriter struct {
	tx *sql.Tx
}

func (w txWriter) WriteDocument(ctx context.Context, c repository.Collection, payload []byte) error {
	query := `INSERT INTO ledger_collections (name, payload, updated_on) VALUES ($1, $2, $3)
	          ON CONFLICT (name) DO UPDATE SET payload = EXCLUDED.payload, updated_on = EXCLUDED.updated_on`
	logger.DatabaseCall("upsert", query, "collection", c)

	res, err := w.tx.ExecContext(ctx, query, string(c), payload, time.Now().UTC())
	var rows int64
	if err == nil {
		rows, _ = res.RowsAffected()
	}
	logger.DatabaseResult("upsert", rows, err, "collection", c)
	return errors.Wrapf(err, "upsert %s", c)
}
