package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/journly/internal/flagx"
	"github.com/dmitrijs2005/journly/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the auto-lock timeout either as a
// string like "5m" or as integer nanoseconds.
type JsonConfig struct {
	DatabasePath    string         `json:"database_path"`
	KDFIterations   int            `json:"kdf_iterations"`
	AutoLockTimeout timex.Duration `json:"auto_lock_timeout"`

	SyncTransport string `json:"sync_transport"`
	DriveToken    string `json:"drive_token"`

	S3Region    string `json:"s3_region"`
	S3Endpoint  string `json:"s3_endpoint"`
	S3Bucket    string `json:"s3_bucket"`
	S3AccessKey string `json:"s3_access_key"`
	S3SecretKey string `json:"s3_secret_key"`

	ExportDir string `json:"export_dir"`
}

// parseJson overlays Config with values loaded from a JSON file resolved
// through the -c/-config flags. Only fields present in the file override
// defaults. Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.KDFIterations != 0 {
		cfg.KDFIterations = jc.KDFIterations
	}
	if jc.AutoLockTimeout.Duration != 0 {
		cfg.AutoLockTimeout = time.Duration(jc.AutoLockTimeout.Duration)
	}
	if jc.SyncTransport != "" {
		cfg.SyncTransport = jc.SyncTransport
	}
	if jc.DriveToken != "" {
		cfg.DriveToken = jc.DriveToken
	}
	if jc.S3Region != "" {
		cfg.S3Region = jc.S3Region
	}
	if jc.S3Endpoint != "" {
		cfg.S3Endpoint = jc.S3Endpoint
	}
	if jc.S3Bucket != "" {
		cfg.S3Bucket = jc.S3Bucket
	}
	if jc.S3AccessKey != "" {
		cfg.S3AccessKey = jc.S3AccessKey
	}
	if jc.S3SecretKey != "" {
		cfg.S3SecretKey = jc.S3SecretKey
	}
	if jc.ExportDir != "" {
		cfg.ExportDir = jc.ExportDir
	}
}
