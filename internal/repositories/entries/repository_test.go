package entries

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/journly/internal/common"
	"github.com/dmitrijs2005/journly/internal/cryptox"
	"github.com/dmitrijs2005/journly/internal/models"
	"github.com/dmitrijs2005/journly/internal/storage"
)

type fixedKey struct{ key []byte }

func (f *fixedKey) Key() []byte { return f.key }

func newTestRepo(t *testing.T) (*Repository, *fixedKey, storage.Storage) {
	t.Helper()
	db, err := storage.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	keys := &fixedKey{key: cryptox.DeriveKey("test-passphrase", []byte("0123456789abcdef"), 1000)}
	st := storage.NewSQLiteStorage(db)
	return NewRepository(st, keys), keys, st
}

func mustEntry(t *testing.T, title, content string) *models.JournalEntry {
	t.Helper()
	e, err := models.NewJournalEntry(title, content, models.MoodNeutral, nil)
	require.NoError(t, err)
	return e
}

func TestSaveAndFindByID_RoundTrip(t *testing.T) {
	r, _, st := newTestRepo(t)
	ctx := context.Background()

	e := mustEntry(t, "First day", "Went for a long walk in the rain.")
	e.AddTag("tag-weather")
	require.NoError(t, r.Save(ctx, e))

	got, err := r.FindByID(ctx, e.Id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, e.Title, got.Title)
	assert.Equal(t, e.Content, got.Content)
	assert.Equal(t, e.Tags, got.Tags)
	assert.Equal(t, e.WordCount, got.WordCount)

	// the stored envelope carries only metadata in the clear
	env, err := st.Get(ctx, e.Id)
	require.NoError(t, err)
	assert.NotContains(t, env.CiphertextBase64, "long walk")
	assert.Equal(t, models.EnvelopeTypeEntry, env.Type)
	assert.Equal(t, e.CreatedAt, env.CreatedAt)
}

func TestFindByID_UnknownReturnsNil(t *testing.T) {
	r, _, _ := newTestRepo(t)

	got, err := r.FindByID(context.Background(), "no-such-id")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestOperations_RequireUnlockedVault(t *testing.T) {
	r, keys, _ := newTestRepo(t)
	ctx := context.Background()
	keys.key = nil

	_, err := r.FindByID(ctx, "any")
	assert.ErrorIs(t, err, common.ErrVaultLocked)

	_, err = r.FindAll(ctx, storage.All)
	assert.ErrorIs(t, err, common.ErrVaultLocked)

	err = r.Save(ctx, mustEntry(t, "t", "c"))
	assert.ErrorIs(t, err, common.ErrVaultLocked)

	err = r.SoftDelete(ctx, "any")
	assert.ErrorIs(t, err, common.ErrVaultLocked)

	err = r.HardDelete(ctx, "any")
	assert.ErrorIs(t, err, common.ErrVaultLocked)
}

func TestFindAll_ExcludesSoftDeleted(t *testing.T) {
	r, _, _ := newTestRepo(t)
	ctx := context.Background()

	keep := mustEntry(t, "keep", "still here")
	gone := mustEntry(t, "gone", "to be removed")
	require.NoError(t, r.Save(ctx, keep))
	require.NoError(t, r.Save(ctx, gone))

	require.NoError(t, r.SoftDelete(ctx, gone.Id))

	all, err := r.FindAll(ctx, storage.All)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, keep.Id, all[0].Id)

	// the envelope survives for backup merge purposes
	n, err := r.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestSoftDelete_UnknownID(t *testing.T) {
	r, _, _ := newTestRepo(t)

	err := r.SoftDelete(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrEntryNotFound)
}

func TestSoftDelete_BumpsUpdatedAt(t *testing.T) {
	r, _, st := newTestRepo(t)
	ctx := context.Background()

	e := mustEntry(t, "t", "c")
	require.NoError(t, r.Save(ctx, e))
	before := e.UpdatedAt

	require.NoError(t, r.SoftDelete(ctx, e.Id))

	env, err := st.Get(ctx, e.Id)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, env.UpdatedAt, before)
}

func TestHardDelete_RemovesEnvelope(t *testing.T) {
	r, _, st := newTestRepo(t)
	ctx := context.Background()

	e := mustEntry(t, "t", "c")
	require.NoError(t, r.Save(ctx, e))
	require.NoError(t, r.HardDelete(ctx, e.Id))

	env, err := st.Get(ctx, e.Id)
	require.NoError(t, err)
	assert.Nil(t, env)
}

func TestFindByDateRange(t *testing.T) {
	r, _, _ := newTestRepo(t)
	ctx := context.Background()

	mk := func(title, createdAt string) *models.JournalEntry {
		e := mustEntry(t, title, "content")
		e.CreatedAt = createdAt
		return e
	}
	require.NoError(t, r.Save(ctx, mk("jan", "2025-01-15T10:00:00.000Z")))
	require.NoError(t, r.Save(ctx, mk("feb", "2025-02-15T10:00:00.000Z")))
	require.NoError(t, r.Save(ctx, mk("mar", "2025-03-15T10:00:00.000Z")))

	got, err := r.FindByDateRange(ctx, "2025-02-01T00:00:00.000Z", "2025-02-28T23:59:59.999Z")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "feb", got[0].Title)

	// bounds are inclusive
	got, err = r.FindByDateRange(ctx, "2025-01-15T10:00:00.000Z", "2025-03-15T10:00:00.000Z")
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestFindByTag(t *testing.T) {
	r, _, _ := newTestRepo(t)
	ctx := context.Background()

	tagged := mustEntry(t, "tagged", "c")
	tagged.AddTag("tag-work")
	plain := mustEntry(t, "plain", "c")
	deleted := mustEntry(t, "deleted", "c")
	deleted.AddTag("tag-work")

	require.NoError(t, r.Save(ctx, tagged))
	require.NoError(t, r.Save(ctx, plain))
	require.NoError(t, r.Save(ctx, deleted))
	require.NoError(t, r.SoftDelete(ctx, deleted.Id))

	got, err := r.FindByTag(ctx, "tag-work")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, tagged.Id, got[0].Id)
}

func TestUpdate_ReencryptsInPlace(t *testing.T) {
	r, _, st := newTestRepo(t)
	ctx := context.Background()

	e := mustEntry(t, "t", "first version")
	require.NoError(t, r.Save(ctx, e))
	env1, err := st.Get(ctx, e.Id)
	require.NoError(t, err)

	require.NoError(t, e.SetContent("second version"))
	require.NoError(t, r.Save(ctx, e))
	env2, err := st.Get(ctx, e.Id)
	require.NoError(t, err)

	// fresh IV on every save, same id
	assert.NotEqual(t, env1.IvBase64, env2.IvBase64)
	assert.Equal(t, env1.Id, env2.Id)

	got, err := r.FindByID(ctx, e.Id)
	require.NoError(t, err)
	assert.Equal(t, "second version", got.Content)
	assert.Equal(t, 2, got.WordCount)
}

func TestFindAll_WrongKeyFailsClosed(t *testing.T) {
	r, keys, _ := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, mustEntry(t, "t", "c")))

	keys.key = cryptox.DeriveKey("other-passphrase", []byte("0123456789abcdef"), 1000)
	_, err := r.FindAll(ctx, storage.All)
	assert.ErrorIs(t, err, common.ErrDecryptionFailed)
}
