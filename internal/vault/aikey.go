package vault

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/dmitrijs2005/journly/internal/common"
	"github.com/dmitrijs2005/journly/internal/cryptox"
	"github.com/dmitrijs2005/journly/internal/models"
)

func encodeBase64(b []byte) string { return base64.StdEncoding.EncodeToString(b) }

func decodeBase64(s string) ([]byte, error) { return base64.StdEncoding.DecodeString(s) }

// DecryptAPIKey recovers the plaintext AI API key from its persisted
// ciphertext. Any failure returns "" — a stale or corrupt encrypted key is
// treated as "not configured", never surfaced as an error.
func DecryptAPIKey(p models.UserPreferences, key []byte) string {
	if p.AI.RemoteApiKeyCiphertext == "" || p.AI.RemoteApiKeyIv == "" {
		return ""
	}
	var apiKey string
	if err := cryptox.Decrypt(p.AI.RemoteApiKeyCiphertext, p.AI.RemoteApiKeyIv, key, &apiKey); err != nil {
		return ""
	}
	return apiKey
}

// MigrateLegacyAPIKey re-encrypts a legacy plaintext API key under the vault
// key and overwrites the persisted plaintext copy. It reports whether a
// migration happened and returns the legacy key so the caller can keep it
// in memory for the session even when persisting fails.
func (s *Session) MigrateLegacyAPIKey(ctx context.Context, p *models.UserPreferences, key []byte) (migrated bool, legacyKey string, err error) {
	legacyKey = p.AI.LegacyRemoteApiKey
	if legacyKey == "" {
		return false, "", nil
	}

	ct, iv, err := cryptox.Encrypt(legacyKey, key)
	if err != nil {
		return false, legacyKey, fmt.Errorf("encrypting legacy api key: %w", err)
	}

	p.AI.RemoteApiKeyCiphertext = ct
	p.AI.RemoteApiKeyIv = iv
	p.AI.LegacyRemoteApiKey = ""

	if err := s.prefs.Save(ctx, *p); err != nil {
		return false, legacyKey, fmt.Errorf("persisting migrated api key: %w", err)
	}
	return true, legacyKey, nil
}

// SetAPIKey encrypts and persists a new AI API key under the active vault
// key and updates the in-memory copy. The vault must be unlocked.
func (s *Session) SetAPIKey(ctx context.Context, p *models.UserPreferences, apiKey string) error {
	key := s.Key()
	if key == nil {
		return common.ErrVaultLocked
	}

	ct, iv, err := cryptox.Encrypt(apiKey, key)
	if err != nil {
		return fmt.Errorf("encrypting api key: %w", err)
	}
	p.AI.RemoteApiKeyCiphertext = ct
	p.AI.RemoteApiKeyIv = iv
	p.AI.LegacyRemoteApiKey = ""

	if err := s.prefs.Save(ctx, *p); err != nil {
		return err
	}

	s.mu.Lock()
	s.apiKey = apiKey
	s.mu.Unlock()
	return nil
}
