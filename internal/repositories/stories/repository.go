// Package stories maps generated stories to encrypted envelopes and back.
// Stories are immutable, so the surface is narrower than for entries:
// no update, no soft delete.
package stories

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

func (r *Repository) requireKey() ([]byte, error) {
	key := r.keys.Key()
	if key == nil {
		return nil, common.ErrVaultLocked
	}
	return key, nil
}

// Save encrypts the story and upserts its envelope. A story's UpdatedAt
// mirrors CreatedAt; it never changes afterwards.
func (r *Repository) Save(ctx context.Context, s *models.Story) error {
	key, err := r.requireKey()
	if err != nil {
		return err
	}
	ct, iv, err := cryptox.Encrypt(s, key)
	if err != nil {
		return fmt.Errorf("encrypting story: %w", err)
	}
	return r.storage.Put(ctx, &models.Envelope{
		Id:               s.Id,
		Type:             models.EnvelopeTypeStory,
		CiphertextBase64: ct,
		IvBase64:         iv,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.CreatedAt,
	})
}

// FindByID returns the decrypted story, or nil when the id is unknown.
func (r *Repository) FindByID(ctx context.Context, id string) (*models.Story, error) {
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
	var s models.Story
	if err := cryptox.Decrypt(env.CiphertextBase64, env.IvBase64, key, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// FindAll returns stories, newest first.
func (r *Repository) FindAll(ctx context.Context, page storage.Page) ([]models.Story, error) {
	key, err := r.requireKey()
	if err != nil {
		return nil, err
	}
	envelopes, err := r.storage.ListByType(ctx, models.EnvelopeTypeStory, page)
	if err != nil {
		return nil, err
	}
	result := make([]models.Story, 0, len(envelopes))
	for i := range envelopes {
		var s models.Story
		if err := cryptox.Decrypt(envelopes[i].CiphertextBase64, envelopes[i].IvBase64, key, &s); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, nil
}

// Delete removes the story envelope. Deleting an unknown id is a no-op.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if _, err := r.requireKey(); err != nil {
		return err
	}
	return r.storage.Delete(ctx, id)
}

// Count returns the number of stored story envelopes.
func (r *Repository) Count(ctx context.Context) (int, error) {
	return r.storage.Count(ctx, models.EnvelopeTypeStory)
}
