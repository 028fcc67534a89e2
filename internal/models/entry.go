package models

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/journly/internal/common"
)

// Mood is a five-point self-assessment attached to an entry.
type Mood string

const (
	MoodGreat   Mood = "great"
	MoodGood    Mood = "good"
	MoodNeutral Mood = "neutral"
	MoodBad     Mood = "bad"
	MoodAwful   Mood = "awful"
)

var moods = []any{MoodGreat, MoodGood, MoodNeutral, MoodBad, MoodAwful}

// JournalEntry is the plaintext journal record. It only ever exists decrypted
// in memory; at rest it lives inside an Envelope.
type JournalEntry struct {
	Id        string `json:"id"`
	CreatedAt string `json:"createdAt"` // immutable after creation
	UpdatedAt string `json:"updatedAt"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Mood      Mood   `json:"mood,omitempty"`

	// Tags keeps insertion order for display; matching ignores order.
	Tags []string `json:"tags"`

	// WordCount is derived from Content and recomputed on every change.
	WordCount int  `json:"wordCount"`
	IsDeleted bool `json:"isDeleted"`
}

// NewJournalEntry validates the input and builds an entry with a fresh id
// and timestamps. Validation failures wrap common.ErrValidation.
func NewJournalEntry(title, content string, mood Mood, tags []string) (*JournalEntry, error) {
	if err := validateEntryFields(title, content, mood); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrValidation, err)
	}

	now := NowISO()
	if tags == nil {
		tags = []string{}
	}
	return &JournalEntry{
		Id:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
		Title:     title,
		Content:   content,
		Mood:      mood,
		Tags:      tags,
		WordCount: CountWords(content),
	}, nil
}

func validateEntryFields(title, content string, mood Mood) error {
	if err := validation.Validate(title,
		validation.Required,
		validation.Length(1, common.MaxTitleLength),
	); err != nil {
		return fmt.Errorf("title: %v", err)
	}
	if err := validation.Validate(content,
		validation.Length(0, common.MaxContentLength),
	); err != nil {
		return fmt.Errorf("content: %v", err)
	}
	if mood != "" {
		if err := validation.Validate(mood, validation.In(moods...)); err != nil {
			return fmt.Errorf("mood: %v", err)
		}
	}
	return nil
}

// SetContent replaces the entry body, recomputing the word count and
// bumping UpdatedAt.
func (e *JournalEntry) SetContent(content string) error {
	if err := validation.Validate(content, validation.Length(0, common.MaxContentLength)); err != nil {
		return fmt.Errorf("%w: content: %v", common.ErrValidation, err)
	}
	e.Content = content
	e.WordCount = CountWords(content)
	e.Touch()
	return nil
}

// SetTitle replaces the title and bumps UpdatedAt.
func (e *JournalEntry) SetTitle(title string) error {
	if err := validation.Validate(title, validation.Required, validation.Length(1, common.MaxTitleLength)); err != nil {
		return fmt.Errorf("%w: title: %v", common.ErrValidation, err)
	}
	e.Title = title
	e.Touch()
	return nil
}

// HasTag reports whether the entry carries the given tag id. Order of the
// tag list is irrelevant for matching.
func (e *JournalEntry) HasTag(tagId string) bool {
	for _, t := range e.Tags {
		if t == tagId {
			return true
		}
	}
	return false
}

// AddTag appends a tag id unless it is already present.
func (e *JournalEntry) AddTag(tagId string) {
	if e.HasTag(tagId) {
		return
	}
	e.Tags = append(e.Tags, tagId)
	e.Touch()
}

// Touch bumps UpdatedAt to now.
func (e *JournalEntry) Touch() {
	e.UpdatedAt = NowISO()
}

// CountWords returns the whitespace-token count of text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}
