// Package entries maps journal entries to encrypted envelopes and back.
package entries

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/journly/internal/common"
	"github.com/dmitrijs2005/journly/internal/cryptox"
	"github.com/dmitrijs2005/journly/internal/models"
	"github.com/dmitrijs2005/journly/internal/repositories"
	"github.com/dmitrijs2005/journly/internal/storage"
)

type Repository struct {
	storage storage.Storage
	keys    repositories.KeyProvider
}

func NewRepository(st storage.Storage, keys repositories.KeyProvider) *Repository {
	return &Repository{storage: st, keys: keys}
}

// requireKey is the single access-control gate: every operation calls it
// first and fails with ErrVaultLocked when no session key is held.
func (r *Repository) requireKey() ([]byte, error) {
	key := r.keys.Key()
	if key == nil {
		return nil, common.ErrVaultLocked
	}
	return key, nil
}

func (r *Repository) toEnvelope(e *models.JournalEntry, key []byte) (*models.Envelope, error) {
	ct, iv, err := cryptox.Encrypt(e, key)
	if err != nil {
		return nil, fmt.Errorf("encrypting entry: %w", err)
	}
	return &models.Envelope{
		Id:               e.Id,
		Type:             models.EnvelopeTypeEntry,
		CiphertextBase64: ct,
		IvBase64:         iv,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}, nil
}

func (r *Repository) fromEnvelope(env *models.Envelope, key []byte) (*models.JournalEntry, error) {
	var e models.JournalEntry
	if err := cryptox.Decrypt(env.CiphertextBase64, env.IvBase64, key, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Save encrypts the entry and upserts its envelope, keyed by the entry id.
func (r *Repository) Save(ctx context.Context, e *models.JournalEntry) error {
	key, err := r.requireKey()
	if err != nil {
		return err
	}
	env, err := r.toEnvelope(e, key)
	if err != nil {
		return err
	}
	return r.storage.Put(ctx, env)
}

// FindByID returns the decrypted entry, or nil when the id is unknown.
// Absence is not an error; callers interpret.
func (r *Repository) FindByID(ctx context.Context, id string) (*models.JournalEntry, error) {
	key, err := r.requireKey()
	if err != nil {
		return nil, err
	}
	env, err := r.storage.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if env == nil {
		return nil, nil
	}
	return r.fromEnvelope(env, key)
}

// FindAll returns non-deleted entries, newest first. Pagination is applied
// by the storage layer on ciphertext metadata before anything is decrypted.
func (r *Repository) FindAll(ctx context.Context, page storage.Page) ([]models.JournalEntry, error) {
	key, err := r.requireKey()
	if err != nil {
		return nil, err
	}
	envelopes, err := r.storage.ListByType(ctx, models.EnvelopeTypeEntry, page)
	if err != nil {
		return nil, err
	}
	return r.decryptLive(envelopes, key)
}

// FindByDateRange returns non-deleted entries whose createdAt falls within
// [start, end]. Envelopes outside the range are excluded on their plaintext
// timestamp and never decrypted.
func (r *Repository) FindByDateRange(ctx context.Context, start, end string) ([]models.JournalEntry, error) {
	key, err := r.requireKey()
	if err != nil {
		return nil, err
	}
	envelopes, err := r.storage.ListByType(ctx, models.EnvelopeTypeEntry, storage.All)
	if err != nil {
		return nil, err
	}

	inRange := envelopes[:0]
	for _, env := range envelopes {
		if env.CreatedAt >= start && env.CreatedAt <= end {
			inRange = append(inRange, env)
		}
	}
	return r.decryptLive(inRange, key)
}

// FindByTag returns non-deleted entries carrying the tag. Tags live inside
// the ciphertext, so this is a full decrypt scan of the entry type.
func (r *Repository) FindByTag(ctx context.Context, tagId string) ([]models.JournalEntry, error) {
	key, err := r.requireKey()
	if err != nil {
		return nil, err
	}
	envelopes, err := r.storage.ListByType(ctx, models.EnvelopeTypeEntry, storage.All)
	if err != nil {
		return nil, err
	}

	live, err := r.decryptLive(envelopes, key)
	if err != nil {
		return nil, err
	}
	tagged := live[:0]
	for _, e := range live {
		if e.HasTag(tagId) {
			tagged = append(tagged, e)
		}
	}
	return tagged, nil
}

// SoftDelete flags the entry as deleted, bumps updatedAt and re-saves,
// re-encrypting the whole record. The envelope stays in storage so the
// deletion propagates through backup merges.
func (r *Repository) SoftDelete(ctx context.Context, id string) error {
	e, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if e == nil {
		return fmt.Errorf("%w: %s", common.ErrEntryNotFound, id)
	}
	e.IsDeleted = true
	e.Touch()
	return r.Save(ctx, e)
}

// HardDelete removes the envelope entirely, bypassing decryption.
func (r *Repository) HardDelete(ctx context.Context, id string) error {
	if _, err := r.requireKey(); err != nil {
		return err
	}
	return r.storage.Delete(ctx, id)
}

// Count returns the number of stored entry envelopes, including
// soft-deleted ones.
func (r *Repository) Count(ctx context.Context) (int, error) {
	return r.storage.Count(ctx, models.EnvelopeTypeEntry)
}

func (r *Repository) decryptLive(envelopes []models.Envelope, key []byte) ([]models.JournalEntry, error) {
	result := make([]models.JournalEntry, 0, len(envelopes))
	for i := range envelopes {
		e, err := r.fromEnvelope(&envelopes[i], key)
		if err != nil {
			return nil, err
		}
		if e.IsDeleted {
			continue
		}
		result = append(result, *e)
	}
	return result, nil
}
