// Package prefs persists the plaintext preferences blob in the metadata
// table. The blob contains the vault's public key material (salt,
// iterations, sentinel) and the AI config; secrets inside it are stored
// only as ciphertext encrypted under the vault key.
package prefs

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/journly/internal/dbx"
	"github.com/dmitrijs2005/journly/internal/models"
)

const preferencesKey = "preferences"

type Repository struct {
	db dbx.DBTX
}

func NewRepository(db dbx.DBTX) *Repository {
	return &Repository{db: db}
}

// Load returns the stored preferences, or defaults on first launch.
func (r *Repository) Load(ctx context.Context) (models.UserPreferences, error) {
	value, err := r.get(ctx, preferencesKey)
	if err != nil {
		return models.UserPreferences{}, err
	}
	if value == nil {
		return models.DefaultPreferences(), nil
	}

	var p models.UserPreferences
	if err := json.Unmarshal(value, &p); err != nil {
		return models.UserPreferences{}, fmt.Errorf("failed to decode preferences: %w", err)
	}
	return p, nil
}

// Save persists the preferences blob. The in-memory AI API key is excluded
// from serialization; only its ciphertext form is ever written.
func (r *Repository) Save(ctx context.Context, p models.UserPreferences) error {
	value, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}
	return r.set(ctx, preferencesKey, value)
}

func (r *Repository) get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata[%s]: %w", key, err)
	}
	return value, nil
}

func (r *Repository) set(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set metadata[%s]: %w", key, err)
	}
	return nil
}
