package storage

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/journly/internal/models"
)

func setupStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	db, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLiteStorage(db)
}

func makeEnvelope(id string, typ models.EnvelopeType, updatedAt string) models.Envelope {
	return models.Envelope{
		Id:               id,
		Type:             typ,
		CiphertextBase64: "Y2lwaGVydGV4dA==",
		IvBase64:         "aXZpdml2aXZpdg==",
		CreatedAt:        "2024-01-01T00:00:00.000Z",
		UpdatedAt:        updatedAt,
	}
}

func TestSQLiteStorage_PutGetRoundTrip(t *testing.T) {
	s := setupStorage(t)
	ctx := context.Background()

	e := makeEnvelope("id1", models.EnvelopeTypeEntry, "2024-01-02T00:00:00.000Z")
	require.NoError(t, s.Put(ctx, &e))

	got, err := s.Get(ctx, "id1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, e, *got)
}

func TestSQLiteStorage_GetUnknownIdReturnsNil(t *testing.T) {
	s := setupStorage(t)

	got, err := s.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLiteStorage_PutOverwritesById(t *testing.T) {
	s := setupStorage(t)
	ctx := context.Background()

	e := makeEnvelope("id1", models.EnvelopeTypeEntry, "2024-01-02T00:00:00.000Z")
	require.NoError(t, s.Put(ctx, &e))

	e.CiphertextBase64 = "bmV3Y2lwaGVy"
	e.UpdatedAt = "2024-01-03T00:00:00.000Z"
	require.NoError(t, s.Put(ctx, &e))

	got, err := s.Get(ctx, "id1")
	require.NoError(t, err)
	assert.Equal(t, "bmV3Y2lwaGVy", got.CiphertextBase64)
	assert.Equal(t, "2024-01-03T00:00:00.000Z", got.UpdatedAt)

	n, err := s.Count(ctx, models.EnvelopeTypeEntry)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSQLiteStorage_ListByType_OrderAndFilter(t *testing.T) {
	s := setupStorage(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		e := makeEnvelope(fmt.Sprintf("e%d", i), models.EnvelopeTypeEntry,
			fmt.Sprintf("2024-01-0%dT00:00:00.000Z", i))
		require.NoError(t, s.Put(ctx, &e))
	}
	st := makeEnvelope("s1", models.EnvelopeTypeStory, "2024-01-09T00:00:00.000Z")
	require.NoError(t, s.Put(ctx, &st))

	got, err := s.ListByType(ctx, models.EnvelopeTypeEntry, All)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "e3", got[0].Id)
	assert.Equal(t, "e2", got[1].Id)
	assert.Equal(t, "e1", got[2].Id)
}

func TestSQLiteStorage_ListByType_Pagination(t *testing.T) {
	s := setupStorage(t)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		e := makeEnvelope(fmt.Sprintf("e%d", i), models.EnvelopeTypeEntry,
			fmt.Sprintf("2024-01-0%dT00:00:00.000Z", i))
		require.NoError(t, s.Put(ctx, &e))
	}

	got, err := s.ListByType(ctx, models.EnvelopeTypeEntry, Page{Offset: 1, Limit: 2})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "e4", got[0].Id)
	assert.Equal(t, "e3", got[1].Id)
}

func TestSQLiteStorage_CountPerType(t *testing.T) {
	s := setupStorage(t)
	ctx := context.Background()

	e := makeEnvelope("e1", models.EnvelopeTypeEntry, "2024-01-01T00:00:00.000Z")
	st := makeEnvelope("s1", models.EnvelopeTypeStory, "2024-01-01T00:00:00.000Z")
	require.NoError(t, s.Put(ctx, &e))
	require.NoError(t, s.Put(ctx, &st))

	n, err := s.Count(ctx, models.EnvelopeTypeEntry)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = s.Count(ctx, models.EnvelopeTypeStory)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSQLiteStorage_DeleteIsIdempotent(t *testing.T) {
	s := setupStorage(t)
	ctx := context.Background()

	e := makeEnvelope("e1", models.EnvelopeTypeEntry, "2024-01-01T00:00:00.000Z")
	require.NoError(t, s.Put(ctx, &e))

	require.NoError(t, s.Delete(ctx, "e1"))
	got, err := s.Get(ctx, "e1")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, s.Delete(ctx, "e1"))
}

func TestSQLiteStorage_ExportImportAll(t *testing.T) {
	s := setupStorage(t)
	ctx := context.Background()

	e1 := makeEnvelope("e1", models.EnvelopeTypeEntry, "2024-01-01T00:00:00.000Z")
	e2 := makeEnvelope("s1", models.EnvelopeTypeStory, "2024-01-02T00:00:00.000Z")
	require.NoError(t, s.Put(ctx, &e1))
	require.NoError(t, s.Put(ctx, &e2))

	exported, err := s.ExportAll(ctx)
	require.NoError(t, err)
	require.Len(t, exported, 2)

	// import into a second store
	s2 := setupStorage(t)
	require.NoError(t, s2.ImportAll(ctx, exported))

	got, err := s2.Get(ctx, "e1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, e1, *got)

	// re-import upserts, no duplicates
	require.NoError(t, s2.ImportAll(ctx, exported))
	n, err := s2.Count(ctx, models.EnvelopeTypeEntry)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSQLiteStorage_Clear(t *testing.T) {
	s := setupStorage(t)
	ctx := context.Background()

	e1 := makeEnvelope("e1", models.EnvelopeTypeEntry, "2024-01-01T00:00:00.000Z")
	e2 := makeEnvelope("s1", models.EnvelopeTypeStory, "2024-01-02T00:00:00.000Z")
	require.NoError(t, s.Put(ctx, &e1))
	require.NoError(t, s.Put(ctx, &e2))

	require.NoError(t, s.Clear(ctx))

	for _, typ := range []models.EnvelopeType{models.EnvelopeTypeEntry, models.EnvelopeTypeStory} {
		n, err := s.Count(ctx, typ)
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	}
}

var _ Storage = (*SQLiteStorage)(nil)
