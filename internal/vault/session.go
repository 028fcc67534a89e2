// Package vault manages the lifetime of the unlocked symmetric key.
//
// A Session is owned by the application's composition root and passed to
// whatever needs the key (repositories, the CLI). The key is written exactly
// once per unlock and cleared exactly once per lock; it is never persisted.
package vault

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/journly/internal/common"
	"github.com/dmitrijs2005/journly/internal/cryptox"
	"github.com/dmitrijs2005/journly/internal/logging"
	"github.com/dmitrijs2005/journly/internal/prefs"
)

// sentinelPlaintext is the known value encrypted at setup and test-decrypted
// on every unlock attempt. Its content is irrelevant; only whether it
// decrypts matters.
const sentinelPlaintext = "journly-vault-sentinel"

var (
	// ErrAlreadyConfigured is returned by Setup when a salt already exists.
	ErrAlreadyConfigured = errors.New("vault already configured")

	// ErrNotConfigured is returned by Unlock before any Setup has run.
	ErrNotConfigured = errors.New("vault not configured")
)

// Session holds the unlocked vault key in memory and mediates all
// lock/unlock transitions.
type Session struct {
	prefs *prefs.Repository
	log   logging.Logger

	mu     sync.Mutex
	key    []byte
	apiKey string // transient plaintext AI API key, set on unlock
}

func NewSession(prefsRepo *prefs.Repository, log logging.Logger) *Session {
	return &Session{prefs: prefsRepo, log: log}
}

// Configured reports whether a vault exists (a salt has been persisted).
func (s *Session) Configured(ctx context.Context) (bool, error) {
	p, err := s.prefs.Load(ctx)
	if err != nil {
		return false, err
	}
	return p.Encryption.SaltBase64 != "", nil
}

// Setup creates a new vault on first launch: generates a salt, derives the
// key, encrypts the sentinel, persists the public key material and leaves
// the session unlocked. Fails only on crypto/storage errors.
func (s *Session) Setup(ctx context.Context, passphrase string) error {
	if len(passphrase) < common.MinPassphraseLength {
		return fmt.Errorf("%w: passphrase must be at least %d characters",
			common.ErrValidation, common.MinPassphraseLength)
	}

	p, err := s.prefs.Load(ctx)
	if err != nil {
		return err
	}
	if p.Encryption.SaltBase64 != "" {
		return ErrAlreadyConfigured
	}
	if p.Encryption.Iterations == 0 {
		p.Encryption.Iterations = common.PBKDF2Iterations
	}

	salt := cryptox.GenerateSalt()
	key := cryptox.DeriveKey(passphrase, salt, p.Encryption.Iterations)

	sentinelCt, sentinelIv, err := cryptox.Encrypt(sentinelPlaintext, key)
	if err != nil {
		common.WipeByteArray(key)
		return fmt.Errorf("encrypting sentinel: %w", err)
	}

	p.Encryption.Enabled = true
	p.Encryption.KeyDerivation = "PBKDF2"
	p.Encryption.SaltBase64 = encodeBase64(salt)
	p.Encryption.TestCiphertextBase64 = sentinelCt
	p.Encryption.TestIvBase64 = sentinelIv

	if err := s.prefs.Save(ctx, p); err != nil {
		common.WipeByteArray(key)
		return fmt.Errorf("persisting vault key material: %w", err)
	}

	s.replaceKey(key, "")
	s.log.Info(ctx, "vault configured", "iterations", p.Encryption.Iterations)
	return nil
}

// Unlock verifies the passphrase against the stored sentinel. On success it
// derives and holds the key and returns true. A wrong passphrase returns
// (false, nil) and the session stays locked; the caller must present the
// same generic message for every authentication failure.
func (s *Session) Unlock(ctx context.Context, passphrase string) (bool, error) {
	p, err := s.prefs.Load(ctx)
	if err != nil {
		return false, err
	}
	if p.Encryption.SaltBase64 == "" {
		return false, ErrNotConfigured
	}

	salt, err := decodeBase64(p.Encryption.SaltBase64)
	if err != nil {
		return false, fmt.Errorf("decoding salt: %w", err)
	}

	ok, err := cryptox.VerifyPassphrase(passphrase, salt, p.Encryption.Iterations,
		p.Encryption.TestCiphertextBase64, p.Encryption.TestIvBase64)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	key := cryptox.DeriveKey(passphrase, salt, p.Encryption.Iterations)

	// Opportunistic: surface the AI API key for this session. A stale or
	// corrupt ciphertext degrades to "not configured", never an error.
	apiKey := DecryptAPIKey(p, key)

	// Best-effort legacy migration: an old plaintext API key is re-encrypted
	// under the fresh key and the persisted plaintext copy overwritten. On
	// failure the plaintext key is still used for this session only.
	if migrated, legacyKey, err := s.MigrateLegacyAPIKey(ctx, &p, key); err != nil {
		s.log.Warn(ctx, "legacy api key migration failed", "error", err)
		if apiKey == "" {
			apiKey = legacyKey
		}
	} else if migrated {
		s.log.Info(ctx, "legacy api key migrated to encrypted storage")
		if apiKey == "" {
			apiKey = legacyKey
		}
	}

	s.replaceKey(key, apiKey)
	return true, nil
}

// Lock discards the in-memory key and any transient plaintext derived from
// it. Subsequent repository reads fail with ErrVaultLocked until re-unlock.
func (s *Session) Lock() {
	s.mu.Lock()
	defer s.mu.Unlock()
	common.WipeByteArray(s.key)
	s.key = nil
	s.apiKey = ""
}

// Key returns the active vault key, or nil while locked.
func (s *Session) Key() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.key
}

// Unlocked reports whether a key is currently held.
func (s *Session) Unlocked() bool {
	return s.Key() != nil
}

// APIKey returns the plaintext AI API key for this session, or "" when not
// configured (or while locked).
func (s *Session) APIKey() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apiKey
}

// replaceKey installs new key material, wiping any previous key first.
func (s *Session) replaceKey(key []byte, apiKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	common.WipeByteArray(s.key)
	s.key = key
	s.apiKey = apiKey
}
