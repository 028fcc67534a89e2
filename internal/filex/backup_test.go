package filex

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/journly/internal/models"
	"github.com/dmitrijs2005/journly/internal/storage"
)

func newTestStorage(t *testing.T) storage.Storage {
	t.Helper()
	db, err := storage.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return storage.NewSQLiteStorage(db)
}

func envelope(id, updatedAt string) *models.Envelope {
	return &models.Envelope{
		Id:               id,
		Type:             models.EnvelopeTypeEntry,
		CiphertextBase64: "Y2lwaGVydGV4dA==",
		IvBase64:         "aXZpdml2aXZpdg==",
		CreatedAt:        "2025-01-01T00:00:00.000Z",
		UpdatedAt:        updatedAt,
	}
}

func TestExportImport_RoundTrip(t *testing.T) {
	src := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, src.Put(ctx, envelope("e1", "2025-01-02T00:00:00.000Z")))
	require.NoError(t, src.Put(ctx, envelope("e2", "2025-01-03T00:00:00.000Z")))

	dir := t.TempDir()
	path, count, err := Export(ctx, src, dir)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Contains(t, filepath.Base(path), "journly-backup-")

	var b Backup
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &b))
	assert.NotEmpty(t, b.Version)
	assert.NotEmpty(t, b.ExportedAt)

	dst := newTestStorage(t)
	imported, err := Import(ctx, dst, path)
	require.NoError(t, err)
	assert.Equal(t, 2, imported)

	got, err := dst.Get(ctx, "e1")
	require.NoError(t, err)
	require.NotNil(t, got)
}

func TestExport_EmptyVault(t *testing.T) {
	ctx := context.Background()
	path, count, err := Export(ctx, newTestStorage(t), t.TempDir())
	require.NoError(t, err)
	assert.Zero(t, count)

	// the file is still a valid backup
	_, err = Import(ctx, newTestStorage(t), path)
	require.NoError(t, err)
}

func TestImport_UpsertsById(t *testing.T) {
	st := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, st.Put(ctx, envelope("e1", "2025-01-01T00:00:00.000Z")))

	path := filepath.Join(t.TempDir(), "backup.json")
	data, err := json.Marshal(Backup{
		Version:    "1.0.0",
		ExportedAt: "2025-06-01T00:00:00.000Z",
		Envelopes:  []models.Envelope{*envelope("e1", "2025-05-01T00:00:00.000Z")},
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	_, err = Import(ctx, st, path)
	require.NoError(t, err)

	got, err := st.Get(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, "2025-05-01T00:00:00.000Z", got.UpdatedAt)
}

func TestImport_RejectsInvalidFiles(t *testing.T) {
	st := newTestStorage(t)
	ctx := context.Background()
	dir := t.TempDir()

	notJSON := filepath.Join(dir, "garbage.json")
	require.NoError(t, os.WriteFile(notJSON, []byte("not json"), 0o600))
	_, err := Import(ctx, st, notJSON)
	assert.ErrorIs(t, err, ErrInvalidBackup)

	noEnvelopes := filepath.Join(dir, "other.json")
	require.NoError(t, os.WriteFile(noEnvelopes, []byte(`{"version":"1.0.0"}`), 0o600))
	_, err = Import(ctx, st, noEnvelopes)
	assert.ErrorIs(t, err, ErrInvalidBackup)

	_, err = Import(ctx, st, filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidBackup)
}
