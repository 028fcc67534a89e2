// Package common defines shared constants and sentinel errors used across
// Journly components. The error set is closed: every failure a caller is
// expected to distinguish maps onto exactly one of these values, matched
// with errors.Is.
package common

import "errors"

var (
	// Crypto errors.

	// ErrDecryptionFailed covers wrong key, corrupted ciphertext and tampered
	// ciphertext alike. AES-GCM makes these cases indistinguishable on purpose;
	// callers must not try to tell them apart.
	ErrDecryptionFailed = errors.New("decryption failed")

	// Vault / repository errors.

	// ErrVaultLocked is returned by any repository operation attempted without
	// an unlocked session key.
	ErrVaultLocked = errors.New("vault is locked")

	// ErrEntryNotFound marks a referenced id that is absent from storage.
	ErrEntryNotFound = errors.New("entry not found")

	// ErrValidation marks malformed input rejected at a domain constructor.
	ErrValidation = errors.New("validation failed")

	// AI adapter errors.

	// ErrAINotReady is returned when an adapter is used before Initialize.
	ErrAINotReady = errors.New("ai adapter is not ready")

	// Remote transport errors. Backup failures carry distinguishing messages
	// because they do not leak vault secrets.

	// ErrAuthInvalid marks a rejected bearer credential (HTTP 401/403).
	ErrAuthInvalid = errors.New("invalid credentials")

	// ErrRateLimited marks a throttled request (HTTP 429).
	ErrRateLimited = errors.New("rate limited")
)
