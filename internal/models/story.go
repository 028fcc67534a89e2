package models

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/journly/internal/common"
)

// AIProvider identifies which adapter produced a story.
type AIProvider string

const (
	AIProviderLocal  AIProvider = "local"
	AIProviderRemote AIProvider = "remote"
)

// Story is an immutable narrative generated from one or more entries.
// Stories have no update path: they are created once and only deletable.
type Story struct {
	Id        string `json:"id"`
	CreatedAt string `json:"createdAt"`
	Title     string `json:"title"`
	Content   string `json:"content"`

	// SourceEntryIds lists, in order, the entries the story was derived from.
	SourceEntryIds []string `json:"sourceEntryIds"`

	// Prompt is the theme/instruction the story was generated with.
	Prompt   string     `json:"prompt"`
	Provider AIProvider `json:"provider"`
}

// NewStory validates the input and builds a story with a fresh id.
func NewStory(title, content string, sourceEntryIds []string, prompt string, provider AIProvider) (*Story, error) {
	err := validation.Errors{
		"title":    validation.Validate(title, validation.Required, validation.Length(1, common.MaxTitleLength)),
		"content":  validation.Validate(content, validation.Required),
		"provider": validation.Validate(provider, validation.In(AIProviderLocal, AIProviderRemote)),
	}.Filter()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrValidation, err)
	}

	if sourceEntryIds == nil {
		sourceEntryIds = []string{}
	}
	return &Story{
		Id:             uuid.NewString(),
		CreatedAt:      NowISO(),
		Title:          title,
		Content:        content,
		SourceEntryIds: sourceEntryIds,
		Prompt:         prompt,
		Provider:       provider,
	}, nil
}
