// Package repositories contains the plaintext-facing data access layer.
// Repositories translate between domain records and encrypted envelopes;
// they are the single access-control gate for plaintext data.
package repositories

// KeyProvider supplies the active vault key. *vault.Session satisfies it.
// A nil key means the vault is locked and every operation must refuse.
type KeyProvider interface {
	Key() []byte
}
