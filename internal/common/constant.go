package common

const (
	// PBKDF2Iterations is the default iteration count for key derivation.
	// Large on purpose: the KDF is the only thing standing between a stolen
	// database file and an offline brute-force of the passphrase.
	PBKDF2Iterations = 600_000

	// SaltLength is the salt size in bytes.
	SaltLength = 16

	// IVLength is the AES-GCM nonce size in bytes.
	IVLength = 12

	// KeyLength is the derived key size in bytes (AES-256).
	KeyLength = 32

	// MinPassphraseLength is enforced at vault setup.
	MinPassphraseLength = 8
)

const (
	// MaxTitleLength and MaxContentLength bound entry fields at validation.
	MaxTitleLength   = 200
	MaxContentLength = 100_000

	// DefaultPageSize is applied when a list operation gives no limit.
	DefaultPageSize = 20
)

// BackupVersion tags exported/uploaded backup payloads.
const BackupVersion = "1.0.0"
