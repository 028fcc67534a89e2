// Package filex writes and reads local backup files. The file carries the
// same encrypted envelopes as the remote backup blob, so it is safe to
// store or share anywhere.
package filex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/journly/internal/common"
	"github.com/dmitrijs2005/journly/internal/models"
	"github.com/dmitrijs2005/journly/internal/storage"
)

// ErrInvalidBackup is returned by Import for files that are not backups.
var ErrInvalidBackup = errors.New("invalid backup file")

// Backup is the on-disk export format.
type Backup struct {
	Version    string            `json:"version"`
	ExportedAt string            `json:"exportedAt"`
	Envelopes  []models.Envelope `json:"envelopes"`
}

// Export writes every stored envelope to a dated JSON file in dir and
// returns the file path and envelope count.
func Export(ctx context.Context, st storage.Storage, dir string) (string, int, error) {
	envelopes, err := st.ExportAll(ctx)
	if err != nil {
		return "", 0, fmt.Errorf("exporting envelopes: %w", err)
	}
	if envelopes == nil {
		envelopes = []models.Envelope{}
	}

	now := models.NowISO()
	data, err := json.MarshalIndent(Backup{
		Version:    common.BackupVersion,
		ExportedAt: now,
		Envelopes:  envelopes,
	}, "", "  ")
	if err != nil {
		return "", 0, err
	}

	path := filepath.Join(dir, fmt.Sprintf("journly-backup-%s.json", now[:10]))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", 0, fmt.Errorf("writing backup file: %w", err)
	}
	return path, len(envelopes), nil
}

// Import reads a backup file and merges its envelopes into storage,
// upserting by id. It returns the number of envelopes in the file.
func Import(ctx context.Context, st storage.Storage, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading backup file: %w", err)
	}

	var b Backup
	if err := json.Unmarshal(data, &b); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	if b.Envelopes == nil {
		return 0, fmt.Errorf("%w: no envelopes field", ErrInvalidBackup)
	}

	if err := st.ImportAll(ctx, b.Envelopes); err != nil {
		return 0, fmt.Errorf("importing envelopes: %w", err)
	}
	return len(b.Envelopes), nil
}
