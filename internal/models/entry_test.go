package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/journly/internal/common"
)

func TestCountWords(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{name: "empty", in: "", want: 0},
		{name: "whitespace only", in: "   \n\t ", want: 0},
		{name: "two words", in: "hello world", want: 2},
		{name: "collapsed whitespace", in: "  hello \n\n world\t again ", want: 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CountWords(tc.in))
		})
	}
}

func TestNewJournalEntry(t *testing.T) {
	e, err := NewJournalEntry("T", "hello world", MoodGood, []string{"tag1"})
	require.NoError(t, err)

	assert.NotEmpty(t, e.Id)
	assert.Equal(t, e.CreatedAt, e.UpdatedAt)
	assert.Equal(t, 2, e.WordCount)
	assert.False(t, e.IsDeleted)
	assert.Equal(t, []string{"tag1"}, e.Tags)
}

func TestNewJournalEntry_Validation(t *testing.T) {
	_, err := NewJournalEntry("", "content", "", nil)
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = NewJournalEntry(strings.Repeat("x", common.MaxTitleLength+1), "content", "", nil)
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = NewJournalEntry("T", "content", "ecstatic", nil)
	assert.ErrorIs(t, err, common.ErrValidation)

	e, err := NewJournalEntry("T", "", "", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, e.WordCount)
}

func TestJournalEntry_SetContent_RecomputesWordCount(t *testing.T) {
	e, err := NewJournalEntry("T", "one", "", nil)
	require.NoError(t, err)
	require.Equal(t, 1, e.WordCount)

	require.NoError(t, e.SetContent("one two three"))
	assert.Equal(t, 3, e.WordCount)
	assert.GreaterOrEqual(t, e.UpdatedAt, e.CreatedAt)
}

func TestJournalEntry_Tags(t *testing.T) {
	e, err := NewJournalEntry("T", "c", "", nil)
	require.NoError(t, err)

	e.AddTag("a")
	e.AddTag("b")
	e.AddTag("a") // duplicate ignored
	assert.Equal(t, []string{"a", "b"}, e.Tags)
	assert.True(t, e.HasTag("b"))
	assert.False(t, e.HasTag("c"))
}

func TestNewStory(t *testing.T) {
	s, err := NewStory("Title", "Once upon a time", []string{"e1", "e2"}, "a hopeful theme", AIProviderRemote)
	require.NoError(t, err)
	assert.NotEmpty(t, s.Id)
	assert.Equal(t, []string{"e1", "e2"}, s.SourceEntryIds)

	_, err = NewStory("", "content", nil, "", AIProviderLocal)
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = NewStory("Title", "content", nil, "", "cloud")
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestNowISO_FixedWidthSortable(t *testing.T) {
	a := NowISO()
	b := NowISO()
	assert.Len(t, a, len("2006-01-02T15:04:05.000Z"))
	assert.True(t, strings.HasSuffix(a, "Z"))
	assert.LessOrEqual(t, a, b)
}
