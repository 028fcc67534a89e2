package ai

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/journly/internal/common"
	"github.com/dmitrijs2005/journly/internal/models"
)

// Mock is the offline local adapter. It produces a fixed reflective
// narrative shaped around the first line of the user prompt, so story
// generation keeps working with no endpoint configured.
type Mock struct {
	ready bool
}

func NewMock() *Mock { return &Mock{} }

func (m *Mock) Provider() models.AIProvider { return models.AIProviderLocal }

func (m *Mock) Ready() bool { return m.ready }

func (m *Mock) Initialize(_ models.AIConfig) error {
	m.ready = true
	return nil
}

func (m *Mock) Generate(_ context.Context, req *Request) (*Response, error) {
	if !m.ready {
		return nil, common.ErrAINotReady
	}

	theme := "my story"
	if first, _, _ := strings.Cut(req.UserPrompt, "\n"); strings.TrimSpace(first) != "" {
		theme = strings.TrimSpace(first)
	}

	paragraphs := []string{
		`There are seasons in life that quietly reshape who we are. This is one of those stories, a reflection on "` + theme + `".`,
		"It began in the way most meaningful things do: without fanfare, without a clear starting point. Just a series of ordinary days that, looking back, were anything but ordinary.",
		"The journal entries tell a story of someone in motion. There were mornings filled with intention and evenings heavy with reflection, and a thread of resilience runs quietly beneath the surface.",
		"What stands out most is the honesty. The willingness to sit with discomfort, to name feelings that are easier to ignore. That takes courage, even in a private journal.",
		"And then, gradually, something shifted. Not dramatically, but enough to notice. A lightness crept in. Old patterns were questioned, and some were gently released.",
		"Looking at this chapter as a whole, one thing is clear: you showed up. Day after day, you showed up. That matters more than any single moment.",
	}

	return &Response{
		Content:    strings.Join(paragraphs, "\n\n"),
		TokensUsed: 280,
		Provider:   models.AIProviderLocal,
		Model:      "mock-narrative-v1",
	}, nil
}

func (m *Mock) Dispose() {
	m.ready = false
}
