package config

import (
	"time"

	"github.com/dmitrijs2005/journly/internal/common"
)

// Transport names for Config.SyncTransport.
const (
	TransportDrive = "drive"
	TransportS3    = "s3"
)

// Config holds runtime settings for the Journly CLI.
//
// Fields:
//   - DatabasePath: location of the local SQLite vault file.
//   - KDFIterations: PBKDF2 iteration count used when a new vault is set up.
//   - AutoLockTimeout: how long a backgrounded session stays unlocked.
//   - SyncTransport: which backup transport push/pull uses ("drive" or "s3").
//   - DriveToken: bearer token for the drive transport.
//   - S3*: settings for the s3 transport; an empty S3Endpoint means AWS.
//   - ExportDir: directory local backup files are written to.
type Config struct {
	DatabasePath    string
	KDFIterations   int
	AutoLockTimeout time.Duration

	SyncTransport string
	DriveToken    string

	S3Region    string
	S3Endpoint  string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string

	ExportDir string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "journly.db"
	c.KDFIterations = common.PBKDF2Iterations
	c.AutoLockTimeout = 5 * time.Minute
	c.SyncTransport = TransportDrive
	c.S3Region = "us-east-1"
	c.ExportDir = "."
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
