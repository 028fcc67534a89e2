package textutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/journly/internal/models"
)

var statsNow = time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC)

func entryOn(day string, words int, deleted bool) models.JournalEntry {
	return models.JournalEntry{
		Id:        "e-" + day,
		CreatedAt: day + "T10:00:00.000Z",
		UpdatedAt: day + "T10:00:00.000Z",
		WordCount: words,
		IsDeleted: deleted,
	}
}

func TestComputeStreak_Empty(t *testing.T) {
	assert.Equal(t, StreakResult{}, ComputeStreak(nil, statsNow))
}

func TestComputeStreak_CurrentEndingToday(t *testing.T) {
	entries := []models.JournalEntry{
		entryOn("2025-06-08", 10, false),
		entryOn("2025-06-09", 10, false),
		entryOn("2025-06-10", 10, false),
	}
	got := ComputeStreak(entries, statsNow)
	assert.Equal(t, StreakResult{Current: 3, Longest: 3, TodayDone: true}, got)
}

func TestComputeStreak_SurvivesMissingToday(t *testing.T) {
	entries := []models.JournalEntry{
		entryOn("2025-06-08", 10, false),
		entryOn("2025-06-09", 10, false),
	}
	got := ComputeStreak(entries, statsNow)
	assert.Equal(t, StreakResult{Current: 2, Longest: 2, TodayDone: false}, got)
}

func TestComputeStreak_BrokenStreak(t *testing.T) {
	entries := []models.JournalEntry{
		entryOn("2025-06-01", 10, false),
		entryOn("2025-06-02", 10, false),
		entryOn("2025-06-03", 10, false),
		entryOn("2025-06-07", 10, false), // gap before this
	}
	got := ComputeStreak(entries, statsNow)
	assert.Equal(t, 0, got.Current)
	assert.Equal(t, 3, got.Longest)
}

func TestComputeStreak_IgnoresDeleted(t *testing.T) {
	entries := []models.JournalEntry{
		entryOn("2025-06-10", 10, true),
	}
	assert.Equal(t, StreakResult{}, ComputeStreak(entries, statsNow))
}

func TestComputeWeeklyWords(t *testing.T) {
	entries := []models.JournalEntry{
		entryOn("2025-06-10", 100, false),
		entryOn("2025-06-10", 50, false), // same day accumulates
		entryOn("2025-06-08", 30, false),
		entryOn("2025-06-01", 999, false), // outside the window
		entryOn("2025-06-09", 20, true),   // deleted
	}
	got := ComputeWeeklyWords(entries, statsNow)
	require.Len(t, got, 7)

	assert.True(t, got[6].IsToday)
	assert.Equal(t, "Tue", got[6].Day)
	assert.Equal(t, 150, got[6].Words)
	assert.Equal(t, 30, got[4].Words) // June 8
	assert.Equal(t, 0, got[5].Words)  // June 9: only a deleted entry
}

func TestComputeTotalStats(t *testing.T) {
	entries := []models.JournalEntry{
		entryOn("2025-06-08", 100, false),
		entryOn("2025-06-09", 50, false),
		entryOn("2025-06-10", 999, true),
	}
	got := ComputeTotalStats(entries)
	assert.Equal(t, TotalStats{TotalEntries: 2, TotalWords: 150}, got)
}
