// Package models defines the journal domain objects and the encrypted
// envelope that wraps them at rest.
package models

import "time"

// EnvelopeType discriminates what kind of record an envelope wraps.
type EnvelopeType string

const (
	EnvelopeTypeEntry EnvelopeType = "entry"
	EnvelopeTypeStory EnvelopeType = "story"
)

// isoFormat is a fixed-width UTC timestamp layout. Fixed width matters:
// envelope timestamps are compared lexicographically by the storage index
// and the merge service, so every timestamp must serialize identically.
const isoFormat = "2006-01-02T15:04:05.000Z07:00"

// NowISO returns the current UTC time in the canonical envelope format.
func NowISO() string {
	return time.Now().UTC().Format(isoFormat)
}

// Envelope is the storage-level unit wrapping an encrypted domain record.
//
// Only id, type and the two timestamps are plaintext; they exist solely so
// the storage layer can index, sort and merge without decrypting. Ciphertext
// and IV together fully determine the wrapped payload under the vault key.
// No other field may leak content.
type Envelope struct {
	// Id is plaintext and matches the wrapped record's id.
	Id string `json:"id"`

	// Type is the record discriminator ("entry" or "story").
	Type EnvelopeType `json:"type"`

	// CiphertextBase64 holds the AES-256-GCM ciphertext, base64-encoded.
	CiphertextBase64 string `json:"ciphertextBase64"`

	// IvBase64 holds the 12-byte IV used for this ciphertext, base64-encoded.
	// A fresh IV is generated on every save.
	IvBase64 string `json:"ivBase64"`

	// CreatedAt/UpdatedAt are plaintext ISO-8601 timestamps copied from the
	// wrapped record. UpdatedAt drives sorting and last-write-wins merging.
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}
