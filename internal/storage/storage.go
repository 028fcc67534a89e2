// Package storage persists encrypted envelopes. It never sees plaintext or
// keys: everything it indexes (id, type, timestamps) is deliberately public.
package storage

import (
	"context"

	"github.com/dmitrijs2005/journly/internal/models"
)

// Page bounds a list operation. A zero Limit means the default page size;
// a negative Limit means no limit.
type Page struct {
	Offset int
	Limit  int
}

// All lists without pagination.
var All = Page{Limit: -1}

// Storage is the envelope persistence capability consumed by repositories
// and the backup merge service.
//
// Pagination and type filtering happen here, on ciphertext metadata, before
// any decryption takes place — decryption is the expensive step.
type Storage interface {
	// Put stores or overwrites an envelope, keyed by id.
	Put(ctx context.Context, e *models.Envelope) error

	// Get returns the envelope with the given id, or nil when absent.
	// Absence is not an error.
	Get(ctx context.Context, id string) (*models.Envelope, error)

	// ListByType returns envelopes of the given type ordered by updatedAt
	// descending, with offset/limit applied in the query.
	ListByType(ctx context.Context, t models.EnvelopeType, page Page) ([]models.Envelope, error)

	// Delete removes an envelope permanently. Deleting an unknown id is a no-op.
	Delete(ctx context.Context, id string) error

	// Count returns the number of envelopes of the given type.
	Count(ctx context.Context, t models.EnvelopeType) (int, error)

	// ExportAll returns every envelope, for backup.
	ExportAll(ctx context.Context) ([]models.Envelope, error)

	// ImportAll upserts the given envelopes by id in a single transaction.
	ImportAll(ctx context.Context, envelopes []models.Envelope) error

	// Clear removes all envelopes of every type.
	Clear(ctx context.Context) error
}
