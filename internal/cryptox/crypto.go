// Package cryptox implements the vault's crypto engine: PBKDF2 key
// derivation and AES-256-GCM authenticated encryption of JSON payloads.
//
// Ciphertext and IV travel base64-encoded because they are stored next to
// plaintext metadata in the envelope table and in exported backup blobs.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/pbkdf2"

	"github.com/dmitrijs2005/journly/internal/common"
)

// DeriveKey derives a 256-bit AES key from a passphrase using PBKDF2-SHA256.
//
// Deterministic for a given (passphrase, salt, iterations) triple. The salt
// should be common.SaltLength random bytes; iterations should be at least
// common.PBKDF2Iterations. The returned key lives only in process memory —
// it is never persisted, and callers wipe it on lock.
func DeriveKey(passphrase string, salt []byte, iterations int) []byte {
	return pbkdf2.Key([]byte(passphrase), salt, iterations, common.KeyLength, sha256.New)
}

// GenerateSalt returns common.SaltLength fresh random bytes.
func GenerateSalt() []byte {
	return common.GenerateRandByteArray(common.SaltLength)
}

// Encrypt serializes v to JSON and encrypts it with AES-256-GCM under key.
//
// A fresh random 12-byte IV is generated on every call; an IV is never
// reused with the same key. Ciphertext and IV are returned base64-encoded.
func Encrypt(v any, key []byte) (ciphertextB64, ivB64 string, err error) {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return "", "", fmt.Errorf("marshaling payload: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", "", fmt.Errorf("creating cipher: %w", err)
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", "", fmt.Errorf("creating GCM: %w", err)
	}

	iv := common.GenerateRandByteArray(common.IVLength)
	ciphertext := aesgcm.Seal(nil, iv, plaintext, nil)

	return base64.StdEncoding.EncodeToString(ciphertext),
		base64.StdEncoding.EncodeToString(iv), nil
}

// Decrypt reverses Encrypt, unmarshaling the recovered JSON into out.
//
// Wrong key, corrupted or tampered ciphertext, and a wrong IV all surface as
// common.ErrDecryptionFailed — AES-GCM deliberately makes these cases
// indistinguishable. Platform failures (e.g. an invalid key length) are
// returned as-is so callers never mistake them for a wrong passphrase.
func Decrypt(ciphertextB64, ivB64 string, key []byte, out any) error {
	block, err := aes.NewCipher(key)
	if err != nil {
		return fmt.Errorf("creating cipher: %w", err)
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return fmt.Errorf("creating GCM: %w", err)
	}

	ciphertext, err := base64.StdEncoding.DecodeString(ciphertextB64)
	if err != nil {
		return fmt.Errorf("%w: bad ciphertext encoding", common.ErrDecryptionFailed)
	}
	iv, err := base64.StdEncoding.DecodeString(ivB64)
	if err != nil || len(iv) != common.IVLength {
		return fmt.Errorf("%w: bad iv", common.ErrDecryptionFailed)
	}

	plaintext, err := aesgcm.Open(nil, iv, ciphertext, nil)
	if err != nil {
		return common.ErrDecryptionFailed
	}

	if err := json.Unmarshal(plaintext, out); err != nil {
		return fmt.Errorf("%w: bad payload", common.ErrDecryptionFailed)
	}
	return nil
}

// VerifyPassphrase derives a candidate key and attempts to decrypt the
// sentinel ciphertext stored at vault setup.
//
// Returns false when the candidate key fails authentication (wrong
// passphrase). Any other error kind is propagated rather than conflated
// with "wrong passphrase".
func VerifyPassphrase(passphrase string, salt []byte, iterations int, sentinelB64, sentinelIvB64 string) (bool, error) {
	key := DeriveKey(passphrase, salt, iterations)
	defer common.WipeByteArray(key)

	var sentinel string
	if err := Decrypt(sentinelB64, sentinelIvB64, key, &sentinel); err != nil {
		if errors.Is(err, common.ErrDecryptionFailed) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
