package models

import "github.com/dmitrijs2005/journly/internal/common"

type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

type FontSize string

const (
	FontSizeSmall  FontSize = "small"
	FontSizeMedium FontSize = "medium"
	FontSizeLarge  FontSize = "large"
)

// AIProviderType selects the story-generation backend in preferences.
type AIProviderType string

const (
	AIProviderTypeNone   AIProviderType = "none"
	AIProviderTypeLocal  AIProviderType = "local"
	AIProviderTypeRemote AIProviderType = "remote"
)

// EncryptionConfig is the persisted, plaintext part of the vault key
// material. The salt is not secret; the derived key is never stored.
type EncryptionConfig struct {
	Enabled       bool   `json:"enabled"`
	KeyDerivation string `json:"keyDerivation"` // always "PBKDF2"
	Iterations    int    `json:"iterations"`

	// SaltBase64 is the 16-byte KDF salt.
	SaltBase64 string `json:"saltBase64,omitempty"`

	// TestCiphertextBase64/TestIvBase64 hold the encrypted sentinel used to
	// verify a candidate passphrase without touching real data.
	TestCiphertextBase64 string `json:"testCiphertextBase64,omitempty"`
	TestIvBase64         string `json:"testIvBase64,omitempty"`
}

// AIConfig configures the story-generation adapter.
//
// RemoteApiKey is in-memory only: it is populated by decrypting
// RemoteApiKeyCiphertext on unlock and must never be written to storage.
// The prefs repository strips it before persisting.
type AIConfig struct {
	Provider       AIProviderType `json:"provider"`
	RemoteEndpoint string         `json:"remoteEndpoint,omitempty"`

	RemoteApiKey string `json:"-"`

	// RemoteApiKeyCiphertext/RemoteApiKeyIv hold the API key encrypted under
	// the vault key; only this form may be persisted.
	RemoteApiKeyCiphertext string `json:"remoteApiKeyCiphertext,omitempty"`
	RemoteApiKeyIv         string `json:"remoteApiKeyIv,omitempty"`

	RemoteModel string `json:"remoteModel,omitempty"`

	// LegacyRemoteApiKey tolerates the old plaintext persisted form. It is
	// read once for migration and overwritten with the encrypted form.
	LegacyRemoteApiKey string `json:"remoteApiKey,omitempty"`
}

// UserPreferences is the plaintext preferences blob, stored as JSON under a
// single key in the metadata table.
type UserPreferences struct {
	Theme      Theme            `json:"theme"`
	FontSize   FontSize         `json:"fontSize"`
	Encryption EncryptionConfig `json:"encryption"`
	AI         AIConfig         `json:"ai"`
}

// DefaultPreferences returns the preferences of a fresh installation.
func DefaultPreferences() UserPreferences {
	return UserPreferences{
		Theme:    ThemeSystem,
		FontSize: FontSizeMedium,
		Encryption: EncryptionConfig{
			Enabled:       true,
			KeyDerivation: "PBKDF2",
			Iterations:    common.PBKDF2Iterations,
		},
		AI: AIConfig{Provider: AIProviderTypeNone},
	}
}
