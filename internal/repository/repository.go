package repository

import (
	"context"

	"carrental-backend/internal/domain"
)

// Store persists the whole ledger. Every save replaces all three collections;
// there are no incremental writes and no protection against concurrent writers.
type Store interface {
	Load(ctx context.Context) (*domain.Snapshot, error)
	SaveAll(ctx context.Context, snapshot *domain.Snapshot) error
}

// Collection names one of the persisted entity lists.
type Collection string

const (
	CollectionUsers    Collection = "users"
	CollectionVehicles Collection = "vehicles"
	CollectionRentals  Collection = "rentals"
)

// Collections lists collections in load order. Rentals reference users and
// vehicles, so they must come last.
var Collections = []Collection{CollectionUsers, CollectionVehicles, CollectionRentals}

// FileName is the document name used for the collection
func (c Collection) FileName() string {
	return string(c) + ".json"
}

// DocumentReader returns the raw JSON array stored for a collection.
// A nil slice with a nil error means the collection does not exist yet.
type DocumentReader interface {
	ReadDocument(ctx context.Context, c Collection) ([]byte, error)
}

// DocumentWriter replaces the raw JSON array stored for a collection.
type DocumentWriter interface {
	WriteDocument(ctx context.Context, c Collection, payload []byte) error
}
