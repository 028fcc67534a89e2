package textutil

import (
	"sort"
	"time"

	"github.com/dmitrijs2005/journly/internal/models"
)

// StreakResult describes writing streaks. A day counts when at least one
// non-deleted entry was created on that UTC calendar date.
type StreakResult struct {
	Current   int
	Longest   int
	TodayDone bool
}

// DayWords is one bar of the weekly word chart.
type DayWords struct {
	Day     string // "Mon"
	Words   int
	IsToday bool
}

type TotalStats struct {
	TotalEntries int
	TotalWords   int
}

const dayKeyFormat = "2006-01-02"

// dateKey reduces a stored timestamp to its UTC calendar date. The stored
// format is fixed-width ISO, so the date is simply its prefix.
func dateKey(iso string) string {
	if len(iso) < len(dayKeyFormat) {
		return iso
	}
	return iso[:len(dayKeyFormat)]
}

func activeDays(entries []models.JournalEntry) map[string]struct{} {
	days := map[string]struct{}{}
	for _, e := range entries {
		if e.IsDeleted {
			continue
		}
		days[dateKey(e.CreatedAt)] = struct{}{}
	}
	return days
}

// ComputeStreak returns the current and longest consecutive-day writing
// streaks as of now. The current streak survives a missing today: it is
// counted from yesterday until today's entry is written.
func ComputeStreak(entries []models.JournalEntry, now time.Time) StreakResult {
	days := activeDays(entries)
	if len(days) == 0 {
		return StreakResult{}
	}

	today := now.UTC()
	todayDone := has(days, today)

	sorted := make([]string, 0, len(days))
	for d := range days {
		sorted = append(sorted, d)
	}
	sort.Strings(sorted)

	longest, run := 1, 1
	for i := 1; i < len(sorted); i++ {
		prev, errPrev := time.Parse(dayKeyFormat, sorted[i-1])
		curr, errCurr := time.Parse(dayKeyFormat, sorted[i])
		if errPrev == nil && errCurr == nil && curr.Sub(prev) == 24*time.Hour {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 1
		}
	}

	start := today
	if !todayDone {
		start = start.AddDate(0, 0, -1)
	}
	if !has(days, start) {
		return StreakResult{Longest: longest, TodayDone: todayDone}
	}

	current := 0
	for cursor := start; has(days, cursor); cursor = cursor.AddDate(0, 0, -1) {
		current++
	}
	return StreakResult{Current: current, Longest: longest, TodayDone: todayDone}
}

func has(days map[string]struct{}, t time.Time) bool {
	_, ok := days[t.Format(dayKeyFormat)]
	return ok
}

// ComputeWeeklyWords returns per-day word totals for the seven days ending
// today.
func ComputeWeeklyWords(entries []models.JournalEntry, now time.Time) []DayWords {
	today := now.UTC()

	words := map[string]int{}
	for _, e := range entries {
		if e.IsDeleted {
			continue
		}
		words[dateKey(e.CreatedAt)] += e.WordCount
	}

	result := make([]DayWords, 0, 7)
	for i := 6; i >= 0; i-- {
		d := today.AddDate(0, 0, -i)
		result = append(result, DayWords{
			Day:     d.Format("Mon"),
			Words:   words[d.Format(dayKeyFormat)],
			IsToday: i == 0,
		})
	}
	return result
}

// ComputeTotalStats counts non-deleted entries and their words.
func ComputeTotalStats(entries []models.JournalEntry) TotalStats {
	var s TotalStats
	for _, e := range entries {
		if e.IsDeleted {
			continue
		}
		s.TotalEntries++
		s.TotalWords += e.WordCount
	}
	return s
}
